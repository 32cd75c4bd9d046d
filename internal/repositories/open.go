// Package repositories opens the configured storage backend and returns the
// Data Access Boundary implementations over it.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashflow_app/internal/platform/config"
	"github.com/SscSPs/cashflow_app/internal/repositories/database/migrations"
	"github.com/SscSPs/cashflow_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/cashflow_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/cashflow_app/pkg/database"
)

// Open connects to the database selected by cfg.DBDriver, applies
// migrations when enabled and returns the repositories with a close func.
func Open(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if cfg.RunMigrations {
			slog.Info("Running database migrations...", slog.String("driver", cfg.DBDriver))
			if err := migrations.RunPostgres(pool); err != nil {
				database.ClosePgxPool(pool)
				return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if cfg.RunMigrations {
			slog.Info("Running database migrations...", slog.String("driver", cfg.DBDriver))
			if err := migrations.RunSQLite(cfg.SQLitePath); err != nil {
				db.Close()
				return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		return sqlite.NewRepositoryProvider(db), func() {
			if err := db.Close(); err != nil {
				slog.Error("Error closing sqlite database", slog.String("error", err.Error()))
			}
		}, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}
