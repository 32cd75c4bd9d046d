package reporting

import "github.com/SscSPs/cashflow_app/internal/core/domain"

// Assemble builds every dashboard figure from one snapshot and one filter.
// Balance and Flow cover every live transaction in txns regardless of date,
// undated rows included. PeriodFlow covers the filter's date range. The bar
// series covers f.Year (the current year when zero). The pie covers the
// range restricted to f.CategoryType. Top spending covers the range capped
// at f.TopLimit.
func (e *Engine) Assemble(txns []domain.Transaction, categories []domain.Category, f domain.ReportFilter) domain.Report {
	f.Range = e.NormalizeRange(f.Range)
	if f.Year == 0 {
		f.Year = e.Today().Year()
	}

	live := Live(txns)
	inRange := e.FilterByDateAndType(live, f.Range, "")
	flow := Flow(live)

	return domain.Report{
		Balance:     flow.Inflow.Sub(flow.Outflow.Abs()),
		Flow:        flow,
		PeriodFlow:  Flow(inRange),
		Year:        f.Year,
		BarSeries:   e.MonthlySeries(txns, f.Year),
		PieSeries:   e.CategoryBreakdown(inRange, categories, f.Range, f.CategoryType),
		TopSpending: e.TopSpending(inRange, categories, f.Range, TopSpendingOptions{Limit: f.TopLimit}),
		Filter:      f,
	}
}

// GroupByDay buckets transactions by calendar day in first-seen order and
// sums each day's outcome. Transactions with an unparsable date share a
// bucket keyed by their raw date string.
func GroupByDay(txns []domain.Transaction) []domain.DayGroup {
	index := make(map[string]int)
	groups := make([]domain.DayGroup, 0)
	for _, tx := range txns {
		if tx.IsDeleted() {
			continue
		}
		key := tx.Date
		if day, ok := tx.Day(); ok {
			key = day.Format(domain.DateLayout)
		}
		i, ok := index[key]
		if !ok {
			groups = append(groups, domain.DayGroup{Date: key, Transactions: make([]domain.Transaction, 0)})
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}
	for i := range groups {
		groups[i].OutcomeTotal = Flow(groups[i].Transactions).Outflow
	}
	return groups
}
