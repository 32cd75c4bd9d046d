package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day layout used for transaction dates and
// date range bounds.
const DateLayout = "2006-01-02"

// CategoryType says whether money came in or went out.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeOutcome CategoryType = "outcome"
)

// IsValid reports whether t is one of the two known types.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeOutcome
}

// ParseCategoryType parses an optional type filter. The empty string means
// "all types" and is returned unchanged.
func ParseCategoryType(s string) (CategoryType, error) {
	t := CategoryType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" || t.IsValid() {
		return t, nil
	}
	return "", apperrors.NewValidationFailedError("categoryType must be 'income' or 'outcome'")
}

// Transaction is a single income or outcome record owned by one user.
type Transaction struct {
	ID           int64               `json:"id"`
	Total        decimal.NullDecimal `json:"total"`      // null is treated as zero by every aggregate
	CategoryID   *int64              `json:"categoryId"` // nil when uncategorized
	CategoryType CategoryType        `json:"categoryType"`
	Notes        string              `json:"notes"`
	Date         string              `json:"date"` // calendar day, YYYY-MM-DD
	UserID       string              `json:"userId"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	DeletedAt    *time.Time          `json:"deletedAt,omitempty"`
}

// Amount returns the total, or zero for a null total.
func (t Transaction) Amount() decimal.Decimal {
	if !t.Total.Valid {
		return decimal.Zero
	}
	return t.Total.Decimal
}

// IsDeleted reports whether the transaction carries a deletion timestamp.
func (t Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// Day parses the transaction date as a calendar day in UTC. Longer ISO
// timestamps are truncated to their date part. The second result is false
// when the date cannot be parsed.
func (t Transaction) Day() (time.Time, bool) {
	return ParseDay(t.Date)
}

// ParseDay parses s as a calendar day, accepting YYYY-MM-DD or any string
// starting with it (e.g. "2024-03-05T00:00:00.000Z").
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Validate checks the fields a stored transaction must carry.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.UserID) == "" {
		return apperrors.NewValidationFailedError("transaction owner is required")
	}
	if !t.CategoryType.IsValid() {
		return apperrors.NewValidationFailedError("categoryType must be 'income' or 'outcome'")
	}
	if !t.Total.Valid {
		return apperrors.NewValidationFailedError("total is required")
	}
	if t.Total.Decimal.IsNegative() {
		return apperrors.NewValidationFailedError("total must not be negative")
	}
	if _, ok := t.Day(); !ok {
		return apperrors.NewValidationFailedError("date must be formatted as YYYY-MM-DD")
	}
	return nil
}
