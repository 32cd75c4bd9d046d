package reporting

import (
	"sort"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Flow sums positive income and positive outcome totals. Zero, negative and
// null totals are ignored. Dates are not looked at.
func Flow(txns []domain.Transaction) domain.FlowTotals {
	flow := domain.FlowTotals{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, tx := range txns {
		if tx.IsDeleted() {
			continue
		}
		amount := tx.Amount()
		if !amount.IsPositive() {
			continue
		}
		switch tx.CategoryType {
		case domain.CategoryTypeIncome:
			flow.Inflow = flow.Inflow.Add(amount)
		case domain.CategoryTypeOutcome:
			flow.Outflow = flow.Outflow.Add(amount)
		}
	}
	return flow
}

// Balance is inflow minus the magnitude of outflow.
func Balance(txns []domain.Transaction) decimal.Decimal {
	flow := Flow(txns)
	return flow.Inflow.Sub(flow.Outflow.Abs())
}

// MonthlySeries returns the outcome total of every month of year, January
// first. For the current year only months up to and including the current
// one are produced; other years get all twelve. Empty months are reported
// as zero.
func (e *Engine) MonthlySeries(txns []domain.Transaction, year int) []domain.BarChartEntry {
	today := e.Today()
	monthsToShow := 12
	if year == today.Year() {
		monthsToShow = int(today.Month())
	}

	totals := make([]decimal.Decimal, monthsToShow)
	for i := range totals {
		totals[i] = decimal.Zero
	}

	for _, tx := range txns {
		if tx.IsDeleted() || tx.CategoryType != domain.CategoryTypeOutcome {
			continue
		}
		amount := tx.Amount()
		if amount.IsNegative() {
			continue
		}
		day, ok := tx.Day()
		if !ok {
			continue
		}
		for i := 0; i < monthsToShow; i++ {
			monthStart := time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
			nextMonthStart := monthStart.AddDate(0, 1, 0)
			if !day.Before(monthStart) && day.Before(nextMonthStart) {
				totals[i] = totals[i].Add(amount)
				break
			}
		}
	}

	series := make([]domain.BarChartEntry, monthsToShow)
	for i, total := range totals {
		month := time.Month(i + 1)
		series[i] = domain.BarChartEntry{Label: month.String(), Month: month, Total: total}
	}
	return series
}

// CategoryBreakdown groups the transactions matching r and t by display
// name. Groups keep the order in which they are first seen.
func (e *Engine) CategoryBreakdown(txns []domain.Transaction, categories []domain.Category, r domain.DateRange, t domain.CategoryType) []domain.PieChartEntry {
	groups := e.summarize(e.FilterByDateAndType(txns, r, t), categories, false)
	entries := make([]domain.PieChartEntry, len(groups))
	for i, g := range groups {
		entries[i] = domain.PieChartEntry{
			Title:      g.Title,
			Total:      g.Total,
			Percentage: g.Percentage,
			Color:      g.Color,
			Icon:       g.Icon,
		}
	}
	return entries
}

// TopSpendingOptions tunes TopSpending.
type TopSpendingOptions struct {
	// Limit caps the number of entries. Zero or less returns every group.
	Limit int
	// WithTransactions attaches each group's transactions to its summary.
	WithTransactions bool
}

// TopSpending ranks outcome groups inside r by total, largest first. Equal
// totals keep first-seen order.
func (e *Engine) TopSpending(txns []domain.Transaction, categories []domain.Category, r domain.DateRange, opts TopSpendingOptions) []domain.CategorySummary {
	groups := e.summarize(e.FilterByDateAndType(txns, r, domain.CategoryTypeOutcome), categories, opts.WithTransactions)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})
	if opts.Limit > 0 && len(groups) > opts.Limit {
		groups = groups[:opts.Limit]
	}
	return groups
}

// CategoryName resolves the display name of tx, falling back to the
// direction specific "Other" bucket.
func CategoryName(tx domain.Transaction, byID map[int64]domain.Category) string {
	name := OtherCategory
	if tx.CategoryID != nil {
		if c, ok := byID[*tx.CategoryID]; ok && c.Name != "" {
			name = c.Name
		}
	}
	return DisplayName(name, tx.CategoryType)
}

// SliceTransactions returns the transactions that CategoryBreakdown and
// TopSpending place in the group called title, for the same range and type.
func (e *Engine) SliceTransactions(txns []domain.Transaction, categories []domain.Category, r domain.DateRange, t domain.CategoryType, title string) []domain.Transaction {
	byID := IndexCategories(categories)
	out := make([]domain.Transaction, 0)
	for _, tx := range e.FilterByDateAndType(txns, r, t) {
		if tx.Amount().IsNegative() {
			continue
		}
		if CategoryName(tx, byID) == title {
			out = append(out, tx)
		}
	}
	return out
}

// IndexCategories maps categories by id.
func IndexCategories(categories []domain.Category) map[int64]domain.Category {
	byID := make(map[int64]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return byID
}

// summarize groups already filtered transactions by display name and fills
// in totals, percentages and styles. Negative totals are legacy signed rows
// and are left out of every group.
func (e *Engine) summarize(txns []domain.Transaction, categories []domain.Category, withTxns bool) []domain.CategorySummary {
	byID := IndexCategories(categories)
	index := make(map[string]int)
	groups := make([]domain.CategorySummary, 0)
	grand := decimal.Zero

	for _, tx := range txns {
		amount := tx.Amount()
		if amount.IsNegative() {
			continue
		}
		name := CategoryName(tx, byID)
		i, ok := index[name]
		if !ok {
			style := e.resolver.Resolve(name)
			summary := domain.CategorySummary{
				Title: name,
				Total: decimal.Zero,
				Color: style.Color,
				Icon:  style.Icon,
			}
			if tx.CategoryID != nil && !IsOtherBucket(name) {
				if _, known := byID[*tx.CategoryID]; known {
					id := *tx.CategoryID
					summary.CategoryID = &id
				}
			}
			if withTxns {
				summary.Transactions = make([]domain.Transaction, 0)
			}
			groups = append(groups, summary)
			i = len(groups) - 1
			index[name] = i
		}
		groups[i].Total = groups[i].Total.Add(amount)
		if withTxns {
			groups[i].Transactions = append(groups[i].Transactions, tx)
		}
		grand = grand.Add(amount)
	}

	for i := range groups {
		groups[i].Percentage = Percentage(groups[i].Total, grand)
	}
	return groups
}

// Percentage returns part/whole*100, or 0 when whole is zero.
func Percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Mul(hundred).Div(whole).InexactFloat64()
}
