package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/SscSPs/cashflow_app/internal/utils/sequence"
	"golang.org/x/sync/errgroup"
)

// Views name the independently sequenced report widgets.
const (
	ViewSummary   = "summary"
	ViewBalance   = "balance"
	ViewMonthly   = "monthly"
	ViewBreakdown = "breakdown"
	ViewTop       = "top-spending"
	ViewExport    = "export"
)

const defaultTopSize = 5

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	txnRepo      portsrepo.TransactionReader
	categoryRepo portsrepo.CategoryReader
	engine       *reporting.Engine
	sequencer    *sequence.Sequencer
	renderer     portsexport.ReportRenderer
	topLimit     int
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingEngine sets the aggregation engine.
func WithReportingEngine(e *reporting.Engine) ReportingServiceOption {
	return func(s *reportingService) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithSequencer shares a sequencer between service instances.
func WithSequencer(seq *sequence.Sequencer) ReportingServiceOption {
	return func(s *reportingService) {
		if seq != nil {
			s.sequencer = seq
		}
	}
}

// WithReportRenderer sets the renderer used by ExportReport.
func WithReportRenderer(r portsexport.ReportRenderer) ReportingServiceOption {
	return func(s *reportingService) {
		s.renderer = r
	}
}

// WithTopSpendingLimit sets the cap used by MonthlyReport. Zero means no cap.
func WithTopSpendingLimit(limit int) ReportingServiceOption {
	return func(s *reportingService) {
		if limit >= 0 {
			s.topLimit = limit
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(txnRepo portsrepo.TransactionReader, categoryRepo portsrepo.CategoryReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		engine:       reporting.NewEngine(),
		sequencer:    sequence.NewSequencer(),
		topLimit:     defaultTopSize,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// snapshot is the data one report is computed from.
type snapshot struct {
	transactions []domain.Transaction
	categories   []domain.Category
}

// fetch loads the user's transactions matching q and the categories visible
// to them in parallel.
func (s *reportingService) fetch(ctx context.Context, userID string, q domain.TransactionQuery) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txns, err := s.txnRepo.FindTransactions(gctx, userID, q)
		if err != nil {
			return fmt.Errorf("failed to fetch transactions: %w", err)
		}
		snap.transactions = txns
		return nil
	})
	g.Go(func() error {
		categories, err := s.categoryRepo.ListCategories(gctx, userID, "")
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}
		snap.categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// sequenced runs fn under the last-write-wins discipline for one user,
// session and view. A request overtaken by a newer one, before or after fn
// completes, fails with ErrStaleRequest and its result is discarded.
func sequenced[T any](ctx context.Context, s *reportingService, userID, view string, req domain.ReportRequest, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	key := userID + ":" + req.Session + ":" + view

	reqCtx, ticket, err := s.sequencer.Begin(ctx, key, req.Seq)
	if err != nil {
		s.LogDebug(ctx, "Rejected out of order report request",
			slog.String("view", view),
			slog.Uint64("seq", req.Seq))
		return zero, err
	}
	defer s.sequencer.Done(ticket)

	result, err := fn(reqCtx)
	if !s.sequencer.Current(ticket) {
		s.LogDebug(ctx, "Discarded superseded report result",
			slog.String("view", view),
			slog.Uint64("seq", ticket.Seq))
		return zero, fmt.Errorf("report request %d was superseded: %w", ticket.Seq, apperrors.ErrStaleRequest)
	}
	if err != nil {
		return zero, err
	}
	return result, nil
}

func (s *reportingService) validate(req domain.ReportRequest) error {
	if err := req.Filter.Range.Validate(); err != nil {
		return err
	}
	if t := req.Filter.CategoryType; t != "" && !t.IsValid() {
		return apperrors.NewValidationFailedError("categoryType must be 'income' or 'outcome'")
	}
	return nil
}

func (s *reportingService) fail(ctx context.Context, err error, msg, userID string) error {
	if errors.Is(err, apperrors.ErrStaleRequest) || errors.Is(err, apperrors.ErrValidation) {
		return err
	}
	s.LogError(ctx, err, msg, slog.String("user_id", userID))
	return err
}

// Summary assembles the whole dashboard from one snapshot. The snapshot is
// the user's full live history because the balance is not bounded by date.
func (s *reportingService) Summary(ctx context.Context, userID string, req domain.ReportRequest) (*domain.Report, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	report, err := sequenced(ctx, s, userID, ViewSummary, req, func(ctx context.Context) (*domain.Report, error) {
		return s.assemble(ctx, userID, req.Filter)
	})
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to build report summary", userID)
	}
	return report, nil
}

func (s *reportingService) assemble(ctx context.Context, userID string, f domain.ReportFilter) (*domain.Report, error) {
	snap, err := s.fetch(ctx, userID, domain.TransactionQuery{})
	if err != nil {
		return nil, err
	}
	report := s.engine.Assemble(snap.transactions, snap.categories, f)
	return &report, nil
}

func (s *reportingService) Balance(ctx context.Context, userID string, req domain.ReportRequest) (*domain.BalanceSummary, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	summary, err := sequenced(ctx, s, userID, ViewBalance, req, func(ctx context.Context) (*domain.BalanceSummary, error) {
		txns, err := s.txnRepo.FindTransactions(ctx, userID, domain.TransactionQuery{})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch transactions: %w", err)
		}
		report := s.engine.Assemble(txns, nil, domain.ReportFilter{Range: req.Filter.Range})
		return &domain.BalanceSummary{
			Balance:    report.Balance,
			Flow:       report.Flow,
			PeriodFlow: report.PeriodFlow,
			Range:      report.Filter.Range,
		}, nil
	})
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to compute balance", userID)
	}
	return summary, nil
}

func (s *reportingService) MonthlySeries(ctx context.Context, userID string, req domain.ReportRequest) ([]domain.BarChartEntry, error) {
	year := req.Filter.Year
	if year == 0 {
		year = s.engine.Today().Year()
	}
	series, err := sequenced(ctx, s, userID, ViewMonthly, req, func(ctx context.Context) ([]domain.BarChartEntry, error) {
		txns, err := s.txnRepo.FindTransactions(ctx, userID, domain.TransactionQuery{
			Range:        domain.YearRange(year),
			CategoryType: domain.CategoryTypeOutcome,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch transactions: %w", err)
		}
		return s.engine.MonthlySeries(txns, year), nil
	})
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to compute monthly series", userID)
	}
	return series, nil
}

func (s *reportingService) CategoryBreakdown(ctx context.Context, userID string, req domain.ReportRequest) ([]domain.PieChartEntry, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	r := s.engine.NormalizeRange(req.Filter.Range)
	entries, err := sequenced(ctx, s, userID, ViewBreakdown, req, func(ctx context.Context) ([]domain.PieChartEntry, error) {
		snap, err := s.fetch(ctx, userID, domain.TransactionQuery{Range: r, CategoryType: req.Filter.CategoryType})
		if err != nil {
			return nil, err
		}
		return s.engine.CategoryBreakdown(snap.transactions, snap.categories, r, req.Filter.CategoryType), nil
	})
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to compute category breakdown", userID)
	}
	return entries, nil
}

func (s *reportingService) TopSpending(ctx context.Context, userID string, req domain.ReportRequest) ([]domain.CategorySummary, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	r := s.engine.NormalizeRange(req.Filter.Range)
	opts := reporting.TopSpendingOptions{Limit: req.Filter.TopLimit, WithTransactions: req.WithTransactions}
	top, err := sequenced(ctx, s, userID, ViewTop, req, func(ctx context.Context) ([]domain.CategorySummary, error) {
		snap, err := s.fetch(ctx, userID, domain.TransactionQuery{Range: r, CategoryType: domain.CategoryTypeOutcome})
		if err != nil {
			return nil, err
		}
		return s.engine.TopSpending(snap.transactions, snap.categories, r, opts), nil
	})
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to rank top spending", userID)
	}
	return top, nil
}

// CategoryTransactions lists the transactions that make up one slice of the
// breakdown, selected by the slice's display name so that a drill-down
// returns exactly what the slice sums.
func (s *reportingService) CategoryTransactions(ctx context.Context, userID string, categoryID *int64, t domain.CategoryType, r domain.DateRange) ([]domain.Transaction, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if t != "" && !t.IsValid() {
		return nil, apperrors.NewValidationFailedError("categoryType must be 'income' or 'outcome'")
	}
	r = s.engine.NormalizeRange(r)

	var title string
	if categoryID == nil {
		if t == "" {
			return nil, apperrors.NewValidationFailedError("categoryType is required for the other bucket")
		}
		title = reporting.DisplayName(reporting.OtherCategory, t)
	} else {
		category, err := s.categoryRepo.FindCategoryByID(ctx, userID, *categoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to get category %d: %w", *categoryID, err)
		}
		direction := t
		if direction == "" {
			direction = category.Type
		}
		title = reporting.DisplayName(category.Name, direction)
	}

	snap, err := s.fetch(ctx, userID, domain.TransactionQuery{Range: r, CategoryType: t})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch category transactions", slog.String("user_id", userID))
		return nil, err
	}
	return s.engine.SliceTransactions(snap.transactions, snap.categories, r, t, title), nil
}

func (s *reportingService) ExportReport(ctx context.Context, userID string, req domain.ReportRequest) ([]byte, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("report export is not configured: %w", apperrors.ErrUnavailable)
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	doc, err := sequenced(ctx, s, userID, ViewExport, req, func(ctx context.Context) ([]byte, error) {
		report, err := s.assemble(ctx, userID, req.Filter)
		if err != nil {
			return nil, err
		}
		out, err := s.renderer.Render(*report)
		if err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
		return out, nil
	})
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to export report", userID)
	}
	return doc, nil
}

// MonthlyReport is not sequenced; it serves background consumers.
func (s *reportingService) MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.Report, error) {
	if month < time.January || month > time.December {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid month %d", month))
	}
	report, err := s.assemble(ctx, userID, domain.ReportFilter{
		Range:    domain.MonthRange(year, month),
		Year:     year,
		TopLimit: s.topLimit,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build monthly report",
			slog.String("user_id", userID),
			slog.Int("year", year),
			slog.Int("month", int(month)))
		return nil, err
	}
	return report, nil
}

func (s *reportingService) YearOptions(n int) []int {
	return s.engine.YearOptions(n)
}
