// Package worker refreshes derived report copies when transactions change.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
)

// MonthlyReporter is the part of the reporting service the worker needs.
type MonthlyReporter interface {
	MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.Report, error)
}

// ReportWorker rebuilds the month touched by a change event and hands it to a sink.
type ReportWorker struct {
	reports MonthlyReporter
	sink    portsexport.ReportSink
}

func NewReportWorker(reports MonthlyReporter, sink portsexport.ReportSink) *ReportWorker {
	return &ReportWorker{reports: reports, sink: sink}
}

// HandleChange processes a single change event. Events without a usable
// date are dropped since there is no month to rebuild.
func (w *ReportWorker) HandleChange(ctx context.Context, event domain.ChangeEvent) error {
	day, ok := domain.ParseDay(event.Date)
	if !ok {
		slog.WarnContext(ctx, "Skipping change event without a valid date",
			slog.String("event_id", event.ID),
			slog.String("date", event.Date))
		return nil
	}

	slog.InfoContext(ctx, "Processing change event",
		slog.String("event_id", event.ID),
		slog.String("user_id", event.UserID),
		slog.String("action", string(event.Action)),
		slog.String("month", day.Format("2006-01")))

	report, err := w.reports.MonthlyReport(ctx, event.UserID, day.Year(), day.Month())
	if err != nil {
		return fmt.Errorf("build monthly report: %w", err)
	}

	if err := w.sink.WriteMonthlyReport(ctx, event.UserID, *report); err != nil {
		return fmt.Errorf("write monthly report: %w", err)
	}
	return nil
}
