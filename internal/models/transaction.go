package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted form of a transaction row.
type Transaction struct {
	ID           int64               `db:"id"`
	Total        decimal.NullDecimal `db:"total"`
	CategoryID   *int64              `db:"category_id"`
	CategoryType string              `db:"category_type"`
	Notes        string              `db:"notes"`
	Date         string              `db:"date"` // YYYY-MM-DD
	UserID       string              `db:"user_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
