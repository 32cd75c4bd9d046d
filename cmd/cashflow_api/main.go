package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsmsg "github.com/SscSPs/cashflow_app/internal/core/ports/messaging"
	"github.com/SscSPs/cashflow_app/internal/core/services"
	"github.com/SscSPs/cashflow_app/internal/export/xlsx"
	"github.com/SscSPs/cashflow_app/internal/handlers"
	"github.com/SscSPs/cashflow_app/internal/messaging/amqp"
	"github.com/SscSPs/cashflow_app/internal/middleware"
	"github.com/SscSPs/cashflow_app/internal/platform/config"
	"github.com/SscSPs/cashflow_app/internal/repositories"
	"github.com/gin-gonic/gin"
)

// @title Cashflow API
// @version 1.0
// @description Personal cash flow tracker: transactions, categories and dashboard reports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := repositories.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize database", slog.String("driver", cfg.DBDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()
	logger.Info("Database ready", slog.String("driver", cfg.DBDriver))

	var publisher portsmsg.EventPublisher = amqp.NoopPublisher{}
	if cfg.EventsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// writes still succeed without events; the sheet mirror just lags
			logger.Warn("Failed to initialize AMQP client, change events disabled", slog.String("error", err.Error()))
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP client initialized", slog.String("exchange", cfg.AMQPExchange), slog.String("queue", cfg.AMQPQueue))
		}
	}

	renderer := xlsx.Renderer{}
	serviceContainer := services.NewServiceContainer(cfg, repos, publisher, renderer)

	writeLimiter, err := middleware.NewLimiter(cfg.WriteRateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, writeLimiter, renderer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server exited")
}
