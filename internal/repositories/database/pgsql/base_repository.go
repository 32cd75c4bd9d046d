package pgsql

import (
	"context"
	"net/http"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// execOne runs a statement that must affect exactly one row. Zero affected
// rows maps to apperrors.ErrNotFound.
func (r *BaseRepository) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to execute statement", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
