package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	"github.com/SscSPs/cashflow_app/internal/core/services"
	"github.com/SscSPs/cashflow_app/internal/export"
	"github.com/SscSPs/cashflow_app/internal/export/sheets"
	"github.com/SscSPs/cashflow_app/internal/messaging/amqp"
	"github.com/SscSPs/cashflow_app/internal/platform/config"
	"github.com/SscSPs/cashflow_app/internal/repositories"
	"github.com/SscSPs/cashflow_app/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("Starting cashflow_worker")

	if !cfg.EventsEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := repositories.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize database", slog.String("driver", cfg.DBDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	// The worker never writes transactions, so nothing is published from here
	container := services.NewServiceContainer(cfg, repos, amqp.NoopPublisher{}, nil)

	var sink portsexport.ReportSink = export.LogSink{Logger: logger}
	if cfg.SheetsEnabled() {
		sheetsSink, err := sheets.NewSink(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets sink", slog.String("error", err.Error()))
			os.Exit(1)
		}
		sink = sheetsSink
		logger.Info("Google Sheets sink initialized", slog.String("spreadsheet_id", cfg.SheetsSpreadsheetID))
	} else {
		logger.Info("Google Sheets disabled - monthly reports are only logged")
	}

	reportWorker := worker.NewReportWorker(container.Reporting, sink)

	if err := consume(ctx, cfg, reportWorker, logger); err != nil {
		logger.Error("Message consumption failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

// consume keeps a consumer attached to the queue, reconnecting with backoff
// while the broker is unreachable. It returns nil once ctx is cancelled.
func consume(ctx context.Context, cfg *config.Config, w *worker.ReportWorker, logger *slog.Logger) error {
	attempt := 0
	for {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err == nil {
			attempt = 0
			logger.Info("AMQP consumer connected", slog.String("queue", cfg.AMQPQueue))
			err = client.ConsumeChanges(ctx, w.HandleChange)
			client.Close()
		}

		if ctx.Err() != nil {
			return nil
		}
		if err != nil && !amqp.IsConnectionError(err) {
			return err
		}

		wait := amqp.Backoff(attempt)
		attempt++
		logger.Warn("AMQP connection lost, reconnecting",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", wait),
			slog.Any("error", err))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}
