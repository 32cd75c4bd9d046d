package services

import (
	"context"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// ReportingService builds dashboard figures from one snapshot per request.
// Overlapping requests from the same session and view follow
// last-write-wins by sequence: a superseded request fails with
// apperrors.ErrStaleRequest.
type ReportingService interface {
	// Summary assembles balance, monthly series, breakdown and top spending.
	Summary(ctx context.Context, userID string, req domain.ReportRequest) (*domain.Report, error)

	// Balance computes the balance of the requested range.
	Balance(ctx context.Context, userID string, req domain.ReportRequest) (*domain.BalanceSummary, error)

	// MonthlySeries computes the outcome series of the requested year.
	MonthlySeries(ctx context.Context, userID string, req domain.ReportRequest) ([]domain.BarChartEntry, error)

	// CategoryBreakdown computes the pie data of the requested range and type.
	CategoryBreakdown(ctx context.Context, userID string, req domain.ReportRequest) ([]domain.PieChartEntry, error)

	// TopSpending ranks outcome categories of the requested range.
	TopSpending(ctx context.Context, userID string, req domain.ReportRequest) ([]domain.CategorySummary, error)

	// CategoryTransactions lists the transactions behind one breakdown slice
	// in a range. A nil categoryID selects the "Other" bucket of t, and t is
	// then required. With a categoryID, a non-empty t narrows the rows to
	// that direction.
	CategoryTransactions(ctx context.Context, userID string, categoryID *int64, t domain.CategoryType, r domain.DateRange) ([]domain.Transaction, error)

	// ExportReport renders Summary as a document.
	ExportReport(ctx context.Context, userID string, req domain.ReportRequest) ([]byte, error)

	// MonthlyReport assembles the report of one calendar month.
	MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.Report, error)

	// YearOptions lists selectable years, newest first.
	YearOptions(n int) []int
}
