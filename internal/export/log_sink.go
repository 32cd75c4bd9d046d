package export

import (
	"context"
	"log/slog"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
)

// LogSink writes a one-line digest of each monthly report to the logger.
// It stands in for the spreadsheet mirror when none is configured.
type LogSink struct {
	Logger *slog.Logger
}

var _ portsexport.ReportSink = LogSink{}

func (s LogSink) WriteMonthlyReport(ctx context.Context, userID string, r domain.Report) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Monthly report refreshed",
		slog.String("user_id", userID),
		slog.String("start_date", r.Filter.Range.StartDate.Format(domain.DateLayout)),
		slog.String("balance", r.Balance.String()),
		slog.String("period_inflow", r.PeriodFlow.Inflow.String()),
		slog.String("period_outflow", r.PeriodFlow.Outflow.String()),
		slog.Int("categories", len(r.PieSeries)))
	return nil
}
