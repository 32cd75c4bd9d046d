// Package export turns an assembled report into tabular rows shared by the
// spreadsheet renderers and sinks.
package export

import (
	"fmt"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// Section is a titled block of a report sheet.
type Section struct {
	Title  string
	Header []string
	Rows   [][]any
}

// Sections lays out a report as summary, breakdown, top spending and monthly
// series blocks. Inflow and outflow are those of the period; the balance is
// the lifetime one. Money cells are float64 so spreadsheets treat them as
// numbers.
func Sections(r domain.Report) []Section {
	summary := Section{
		Title:  "Summary",
		Header: []string{"Item", "Amount"},
		Rows: [][]any{
			{"Period", fmt.Sprintf("%s to %s", r.Filter.Range.StartDate.Format(domain.DateLayout), r.Filter.Range.EndDate.Format(domain.DateLayout))},
			{"Inflow", r.PeriodFlow.Inflow.InexactFloat64()},
			{"Outflow", r.PeriodFlow.Outflow.InexactFloat64()},
			{"Balance", r.Balance.InexactFloat64()},
		},
	}

	breakdownTitle := "Breakdown"
	if r.Filter.CategoryType != "" {
		breakdownTitle = fmt.Sprintf("Breakdown (%s)", r.Filter.CategoryType)
	}
	breakdown := Section{Title: breakdownTitle, Header: []string{"Category", "Total", "Percentage"}}
	for _, e := range r.PieSeries {
		breakdown.Rows = append(breakdown.Rows, []any{e.Title, e.Total.InexactFloat64(), e.Percentage})
	}

	top := Section{Title: "Top spending", Header: []string{"Category", "Total", "Percentage"}}
	for _, s := range r.TopSpending {
		top.Rows = append(top.Rows, []any{s.Title, s.Total.InexactFloat64(), s.Percentage})
	}

	monthly := Section{Title: fmt.Sprintf("Monthly spending %d", r.Year), Header: []string{"Month", "Outcome"}}
	for _, b := range r.BarSeries {
		monthly.Rows = append(monthly.Rows, []any{b.Label, b.Total.InexactFloat64()})
	}

	return []Section{summary, breakdown, top, monthly}
}

// Rows flattens Sections into plain rows with a blank row between blocks.
func Rows(r domain.Report) [][]any {
	out := make([][]any, 0)
	for i, s := range Sections(r) {
		if i > 0 {
			out = append(out, []any{})
		}
		out = append(out, []any{s.Title})
		header := make([]any, len(s.Header))
		for j, h := range s.Header {
			header[j] = h
		}
		out = append(out, header)
		out = append(out, s.Rows...)
	}
	return out
}
