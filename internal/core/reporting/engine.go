// Package reporting turns a snapshot of transactions and categories into the
// balance, monthly series, category breakdown and top spending figures shown
// on the dashboard. Everything here is pure: no I/O, no shared state, and
// malformed records degrade to fallback values instead of errors.
package reporting

import (
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// Engine carries the clock and display table the aggregations depend on.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	now      func() time.Time
	location *time.Location
	resolver *Resolver
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of "now" used for default ranges and for
// deciding how many months of the current year to report.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLocation sets the time zone in which "today" is evaluated.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithResolver replaces the category display table.
func WithResolver(r *Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// NewEngine builds an Engine using the wall clock in UTC unless told otherwise.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		now:      time.Now,
		location: time.UTC,
		resolver: builtinResolver,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Today returns the current calendar day as a UTC midnight value, evaluated
// in the engine's location.
func (e *Engine) Today() time.Time {
	now := e.now().In(e.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentMonth returns the range of the current calendar month.
func (e *Engine) CurrentMonth() domain.DateRange {
	today := e.Today()
	return domain.MonthRange(today.Year(), today.Month())
}

// NormalizeRange fills missing bounds with the first or last day of the
// current month.
func (e *Engine) NormalizeRange(r domain.DateRange) domain.DateRange {
	month := e.CurrentMonth()
	if r.StartDate.IsZero() {
		r.StartDate = month.StartDate
	}
	if r.EndDate.IsZero() {
		r.EndDate = month.EndDate
	}
	return r
}

// Resolver exposes the display table in use.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// YearOptions lists the last n years, newest first, for a year selector.
func (e *Engine) YearOptions(n int) []int {
	if n <= 0 {
		return []int{}
	}
	current := e.Today().Year()
	years := make([]int, n)
	for i := range years {
		years[i] = current - i
	}
	return years
}
