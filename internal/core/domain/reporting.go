package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is the aggregate of one display group (a category name or
// an "Other" bucket) within a filtered transaction set.
type CategorySummary struct {
	CategoryID   *int64          `json:"categoryId"`
	Title        string          `json:"title"`
	Total        decimal.Decimal `json:"total"`
	Percentage   float64         `json:"percentage"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
	Transactions []Transaction   `json:"transactions,omitempty"`
}

// PieChartEntry is one slice of the category breakdown.
type PieChartEntry struct {
	Title      string          `json:"title"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
}

// BarChartEntry is the outcome total for one month.
type BarChartEntry struct {
	Label string          `json:"label"`
	Month time.Month      `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// FlowTotals is the income and outcome sum of a transaction set.
type FlowTotals struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// DayGroup holds the transactions sharing one calendar day.
type DayGroup struct {
	Date         string          `json:"date"`
	OutcomeTotal decimal.Decimal `json:"outcomeTotal"`
	Transactions []Transaction   `json:"transactions"`
}

// Report is everything the dashboard needs, built from one snapshot.
// Balance and Flow are lifetime figures; PeriodFlow is limited to
// Filter.Range.
type Report struct {
	Balance     decimal.Decimal   `json:"balance"`
	Flow        FlowTotals        `json:"flow"`
	PeriodFlow  FlowTotals        `json:"periodFlow"`
	Year        int               `json:"year"`
	BarSeries   []BarChartEntry   `json:"barSeries"`
	PieSeries   []PieChartEntry   `json:"pieSeries"`
	TopSpending []CategorySummary `json:"topSpending"`
	Filter      ReportFilter      `json:"filter"`
}

// BalanceSummary is the lifetime balance and flow, plus the flow of Range.
type BalanceSummary struct {
	Balance    decimal.Decimal `json:"balance"`
	Flow       FlowTotals      `json:"flow"`
	PeriodFlow FlowTotals      `json:"periodFlow"`
	Range      DateRange       `json:"range"`
}

// TransactionListing is the transaction page: the matching rows, the same
// rows grouped by day, and their flow totals.
type TransactionListing struct {
	Transactions []Transaction `json:"transactions"`
	Days         []DayGroup    `json:"days"`
	Flow         FlowTotals    `json:"flow"`
	Range        DateRange     `json:"range"`
}
