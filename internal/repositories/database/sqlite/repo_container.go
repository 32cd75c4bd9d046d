// Package sqlite stores transactions and categories in a single SQLite file
// for self-hosted and local use.
package sqlite

import (
	"database/sql"
	"time"

	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the SQLite repositories.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: &TransactionRepository{db: db},
		CategoryRepo:    &CategoryRepository{db: db},
	}
}

// Timestamps are stored as RFC 3339 text in UTC.
const timeLayout = time.RFC3339Nano
