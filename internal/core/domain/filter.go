package domain

import (
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
)

// DateRange is an inclusive range of calendar days. A zero Start or End
// means the bound was not supplied.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// IsZero reports whether neither bound was supplied.
func (r DateRange) IsZero() bool {
	return r.StartDate.IsZero() && r.EndDate.IsZero()
}

// Contains reports whether day falls inside the range, bounds included.
// Both bounds must be set.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}

// Validate rejects ranges that end before they start.
func (r DateRange) Validate() error {
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return apperrors.NewValidationFailedError("endDate must not be before startDate")
	}
	return nil
}

// MonthRange returns the range covering the whole calendar month of t.
func MonthRange(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{StartDate: start, EndDate: start.AddDate(0, 1, -1)}
}

// YearRange returns the range covering the whole calendar year.
func YearRange(year int) DateRange {
	return DateRange{
		StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Span returns the smallest range covering both r and other.
func (r DateRange) Span(other DateRange) DateRange {
	out := r
	if out.StartDate.IsZero() || (!other.StartDate.IsZero() && other.StartDate.Before(out.StartDate)) {
		out.StartDate = other.StartDate
	}
	if out.EndDate.IsZero() || other.EndDate.After(out.EndDate) {
		out.EndDate = other.EndDate
	}
	return out
}

// TransactionQuery narrows a fetch at the data access boundary.
type TransactionQuery struct {
	Range         DateRange
	CategoryType  CategoryType // empty for all
	CategoryID    *int64
	Uncategorized bool // only rows with no category; wins over CategoryID
}

// ReportFilter drives the report assembler.
type ReportFilter struct {
	Range        DateRange    `json:"range"`
	CategoryType CategoryType `json:"categoryType"` // pie breakdown type; empty for all
	Year         int          `json:"year"`         // bar chart year; zero means the current year
	TopLimit     int          `json:"topLimit"`     // top spending cap; zero or less means no cap
}

// ReportRequest is one report fetch. Seq orders overlapping requests from the
// same client session and view; zero lets the server number it.
type ReportRequest struct {
	Filter           ReportFilter
	Seq              uint64
	Session          string
	WithTransactions bool
}
