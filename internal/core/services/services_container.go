package services

import (
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	portsmsg "github.com/SscSPs/cashflow_app/internal/core/ports/messaging"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/SscSPs/cashflow_app/internal/platform/config"
	"github.com/SscSPs/cashflow_app/internal/utils/sequence"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher and renderer may be nil when events or export are disabled.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portsmsg.EventPublisher, renderer portsexport.ReportRenderer) *portssvc.ServiceContainer {
	// One engine so that every service agrees on "today"
	engine := reporting.NewEngine(reporting.WithLocation(cfg.ReportLocation))

	container := &portssvc.ServiceContainer{}

	container.Category = NewCategoryService(repos.CategoryRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		WithEventPublisher(publisher),
		WithTransactionEngine(engine),
	)

	container.Reporting = NewReportingService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		WithReportingEngine(engine),
		WithSequencer(sequence.NewSequencer()),
		WithReportRenderer(renderer),
		WithTopSpendingLimit(cfg.TopSpendingLimit),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
