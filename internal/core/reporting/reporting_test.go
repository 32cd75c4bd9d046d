package reporting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func newEngine() *reporting.Engine {
	return reporting.NewEngine(reporting.WithClock(func() time.Time { return fixedNow }))
}

func id(v int64) *int64 { return &v }

func tx(total string, t domain.CategoryType, categoryID *int64, date string) domain.Transaction {
	return domain.Transaction{
		Total:        decimal.NewNullDecimal(decimal.RequireFromString(total)),
		CategoryType: t,
		CategoryID:   categoryID,
		Date:         date,
		UserID:       "user-1",
	}
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

var categories = []domain.Category{
	{ID: 1, Name: "Salary", Type: domain.CategoryTypeIncome},
	{ID: 5, Name: "Other", Type: domain.CategoryTypeIncome},
	{ID: 7, Name: "Groceries", Type: domain.CategoryTypeOutcome},
	{ID: 8, Name: "Dining", Type: domain.CategoryTypeOutcome},
	{ID: 9, Name: "Rent", Type: domain.CategoryTypeOutcome},
}

func TestResolveDisplay(t *testing.T) {
	assert.Equal(t, domain.CategoryStyle{Icon: "shopping_cart", Color: "#ADDDD0"}, reporting.ResolveDisplay("Groceries"))
	assert.Equal(t, "#E55604", reporting.ResolveDisplay("Outcome Other").Color)
	assert.Equal(t, domain.CategoryStyle{Icon: reporting.DefaultIcon, Color: reporting.DefaultColor}, reporting.ResolveDisplay("Crypto"))
	assert.Equal(t, reporting.DefaultColor, reporting.ResolveDisplay("").Color)
	assert.Equal(t, reporting.DefaultColor, reporting.ResolveDisplay("Other").Color, "the bare fallback name is always renamed first")

	custom := reporting.NewResolver(map[string]domain.CategoryStyle{"Crypto": {Icon: "currency_bitcoin", Color: "#F7931A"}})
	assert.Equal(t, "#F7931A", custom.Resolve("Crypto").Color)
	assert.Equal(t, "#15F5BA", custom.Resolve("Salary").Color)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Income Other", reporting.DisplayName("Other", domain.CategoryTypeIncome))
	assert.Equal(t, "Outcome Other", reporting.DisplayName("Other", domain.CategoryTypeOutcome))
	assert.Equal(t, "Dining", reporting.DisplayName("Dining", domain.CategoryTypeIncome))
}

func TestFilterByDateAndType(t *testing.T) {
	e := newEngine()
	deletedAt := fixedNow
	deleted := tx("5", domain.CategoryTypeOutcome, id(7), "2024-03-12")
	deleted.DeletedAt = &deletedAt

	input := []domain.Transaction{
		tx("1", domain.CategoryTypeOutcome, id(7), "2024-03-01"),
		tx("2", domain.CategoryTypeIncome, id(1), "2024-03-31"),
		tx("3", domain.CategoryTypeOutcome, id(7), "2024-04-01"),
		tx("4", domain.CategoryTypeOutcome, id(7), "garbage"),
		deleted,
		tx("6", domain.CategoryTypeOutcome, id(8), "2024-02-29"),
	}
	snapshot := append([]domain.Transaction(nil), input...)
	march := domain.MonthRange(2024, time.March)

	all := e.FilterByDateAndType(input, march, "")
	require.Len(t, all, 2)
	assertDecimal(t, "1", all[0].Amount())
	assertDecimal(t, "2", all[1].Amount())

	outcome := e.FilterByDateAndType(input, march, domain.CategoryTypeOutcome)
	require.Len(t, outcome, 1)
	assertDecimal(t, "1", outcome[0].Amount())

	assert.Equal(t, snapshot, input, "input must not be mutated")
}

func TestFilterByDateAndType_DefaultsToCurrentMonth(t *testing.T) {
	e := newEngine()
	input := []domain.Transaction{
		tx("1", domain.CategoryTypeOutcome, id(7), "2024-05-31"),
		tx("2", domain.CategoryTypeOutcome, id(7), "2024-06-01"),
		tx("3", domain.CategoryTypeOutcome, id(7), "2024-06-30"),
		tx("4", domain.CategoryTypeOutcome, id(7), "2024-07-01"),
	}

	got := e.FilterByDateAndType(input, domain.DateRange{}, "")
	require.Len(t, got, 2)
	assert.Equal(t, "2024-06-01", got[0].Date)
	assert.Equal(t, "2024-06-30", got[1].Date)
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name string
		txns []domain.Transaction
		want string
	}{
		{name: "empty", txns: nil, want: "0"},
		{
			name: "income minus outcome",
			txns: []domain.Transaction{
				tx("100", domain.CategoryTypeIncome, id(1), "2024-03-05"),
				tx("40", domain.CategoryTypeOutcome, id(7), "2024-03-10"),
			},
			want: "60",
		},
		{
			name: "non positive totals are ignored",
			txns: []domain.Transaction{
				tx("100", domain.CategoryTypeIncome, id(1), "2024-03-05"),
				tx("-50", domain.CategoryTypeOutcome, id(7), "2024-03-10"),
				tx("0", domain.CategoryTypeOutcome, id(7), "2024-03-10"),
				tx("-20", domain.CategoryTypeIncome, id(1), "2024-03-10"),
			},
			want: "100",
		},
		{
			name: "null total and unparsable date",
			txns: []domain.Transaction{
				{CategoryType: domain.CategoryTypeIncome, Date: "2024-03-01"},
				tx("30", domain.CategoryTypeOutcome, nil, "???"),
			},
			want: "-30",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, reporting.Balance(tt.txns))
		})
	}
}

func TestMonthlySeries_CurrentYearStopsAtCurrentMonth(t *testing.T) {
	e := newEngine()
	input := []domain.Transaction{
		tx("10", domain.CategoryTypeOutcome, id(7), "2024-01-01"),
		tx("20", domain.CategoryTypeOutcome, id(7), "2024-01-31"),
		tx("30", domain.CategoryTypeOutcome, id(7), "2024-02-01"),
		tx("99", domain.CategoryTypeIncome, id(1), "2024-02-10"),
		tx("40", domain.CategoryTypeOutcome, id(7), "2024-06-15"),
		tx("50", domain.CategoryTypeOutcome, id(7), "2024-07-01"),
		tx("60", domain.CategoryTypeOutcome, id(7), "2023-12-31"),
		tx("70", domain.CategoryTypeOutcome, id(7), "bad"),
	}

	series := e.MonthlySeries(input, 2024)
	require.Len(t, series, 6)
	assert.Equal(t, "January", series[0].Label)
	assert.Equal(t, "June", series[5].Label)
	assertDecimal(t, "30", series[0].Total)
	assertDecimal(t, "30", series[1].Total)
	assertDecimal(t, "0", series[2].Total)
	assertDecimal(t, "0", series[3].Total)
	assertDecimal(t, "0", series[4].Total)
	assertDecimal(t, "40", series[5].Total)
}

func TestMonthlySeries_PastYearHasTwelveMonths(t *testing.T) {
	e := newEngine()
	series := e.MonthlySeries([]domain.Transaction{
		tx("60", domain.CategoryTypeOutcome, id(7), "2023-12-31"),
	}, 2023)
	require.Len(t, series, 12)
	for i, entry := range series {
		assert.Equal(t, time.Month(i+1), entry.Month)
	}
	assertDecimal(t, "60", series[11].Total)
	assertDecimal(t, "0", series[0].Total)
}

func TestCategoryBreakdown(t *testing.T) {
	e := newEngine()
	march := domain.MonthRange(2024, time.March)
	input := []domain.Transaction{
		tx("30", domain.CategoryTypeOutcome, id(8), "2024-03-02"),
		tx("10", domain.CategoryTypeOutcome, nil, "2024-03-03"),
		tx("20", domain.CategoryTypeIncome, nil, "2024-03-04"),
		tx("50", domain.CategoryTypeOutcome, id(7), "2024-03-05"),
		tx("10", domain.CategoryTypeOutcome, id(404), "2024-03-06"),
		tx("5", domain.CategoryTypeIncome, id(5), "2024-03-07"),
		tx("999", domain.CategoryTypeOutcome, id(7), "2024-04-01"),
	}

	pie := e.CategoryBreakdown(input, categories, march, "")
	require.Len(t, pie, 4)
	assert.Equal(t, "Dining", pie[0].Title)
	assert.Equal(t, "Outcome Other", pie[1].Title)
	assertDecimal(t, "20", pie[1].Total)
	assert.Equal(t, "#E55604", pie[1].Color)
	assert.Equal(t, "Income Other", pie[2].Title)
	assertDecimal(t, "25", pie[2].Total)
	assert.Equal(t, "Groceries", pie[3].Title)

	outcome := e.CategoryBreakdown(input, categories, march, domain.CategoryTypeOutcome)
	require.Len(t, outcome, 3)
	sumPct := 0.0
	sumTotal := decimal.Zero
	for _, entry := range outcome {
		sumPct += entry.Percentage
		sumTotal = sumTotal.Add(entry.Total)
	}
	assert.InDelta(t, 100.0, sumPct, 0.0001)
	assertDecimal(t, "100", sumTotal)
	assert.InDelta(t, 50.0, outcome[2].Percentage, 0.0001)
}

func TestCategoryBreakdown_ZeroGrandTotal(t *testing.T) {
	e := newEngine()
	pie := e.CategoryBreakdown([]domain.Transaction{
		tx("0", domain.CategoryTypeOutcome, id(7), "2024-03-05"),
		{CategoryType: domain.CategoryTypeOutcome, CategoryID: id(8), Date: "2024-03-06"},
	}, categories, domain.MonthRange(2024, time.March), "")
	require.Len(t, pie, 2)
	for _, entry := range pie {
		assert.Equal(t, 0.0, entry.Percentage)
	}
}

func TestCategoryBreakdown_SkipsNegativeTotals(t *testing.T) {
	e := newEngine()
	pie := e.CategoryBreakdown([]domain.Transaction{
		tx("-50", domain.CategoryTypeOutcome, id(7), "2024-03-05"),
		tx("25", domain.CategoryTypeOutcome, id(8), "2024-03-06"),
	}, categories, domain.MonthRange(2024, time.March), "")
	require.Len(t, pie, 1)
	assert.Equal(t, "Dining", pie[0].Title)
	assert.Equal(t, 100.0, pie[0].Percentage)
}

func TestTopSpending(t *testing.T) {
	e := newEngine()
	march := domain.MonthRange(2024, time.March)
	input := []domain.Transaction{
		tx("30", domain.CategoryTypeOutcome, id(8), "2024-03-02"),
		tx("500", domain.CategoryTypeIncome, id(1), "2024-03-02"),
		tx("30", domain.CategoryTypeOutcome, id(9), "2024-03-03"),
		tx("10", domain.CategoryTypeOutcome, id(7), "2024-03-04"),
		tx("70", domain.CategoryTypeOutcome, id(7), "2024-03-05"),
		tx("5", domain.CategoryTypeOutcome, nil, "2024-03-06"),
	}

	top := e.TopSpending(input, categories, march, reporting.TopSpendingOptions{})
	require.Len(t, top, 4)
	assert.Equal(t, []string{"Groceries", "Dining", "Rent", "Outcome Other"},
		[]string{top[0].Title, top[1].Title, top[2].Title, top[3].Title})
	assertDecimal(t, "80", top[0].Total)
	assert.InDelta(t, 80.0/145.0*100, top[0].Percentage, 0.0001)
	require.NotNil(t, top[0].CategoryID)
	assert.Equal(t, int64(7), *top[0].CategoryID)
	assert.Nil(t, top[3].CategoryID)
	assert.Nil(t, top[0].Transactions)

	for i := 1; i < len(top); i++ {
		assert.False(t, top[i].Total.GreaterThan(top[i-1].Total))
	}

	capped := e.TopSpending(input, categories, march, reporting.TopSpendingOptions{Limit: 2, WithTransactions: true})
	require.Len(t, capped, 2)
	assert.Equal(t, "Dining", capped[1].Title)
	require.Len(t, capped[0].Transactions, 2)
	assertDecimal(t, "10", capped[0].Transactions[0].Amount())
}

func TestAssemble_ExampleScenario(t *testing.T) {
	e := newEngine()
	input := []domain.Transaction{
		tx("100", domain.CategoryTypeIncome, id(1), "2024-03-05"),
		tx("40", domain.CategoryTypeOutcome, id(7), "2024-03-10"),
		tx("60", domain.CategoryTypeOutcome, id(7), "2024-03-15"),
	}

	report := e.Assemble(input, categories, domain.ReportFilter{
		Range:        domain.MonthRange(2024, time.March),
		CategoryType: domain.CategoryTypeOutcome,
		Year:         2024,
	})

	assertDecimal(t, "0", report.Balance)
	assertDecimal(t, "100", report.Flow.Inflow)
	assertDecimal(t, "100", report.Flow.Outflow)

	require.Len(t, report.PieSeries, 1)
	assert.Equal(t, "Groceries", report.PieSeries[0].Title)
	assertDecimal(t, "100", report.PieSeries[0].Total)
	assert.Equal(t, 100.0, report.PieSeries[0].Percentage)

	require.Len(t, report.TopSpending, 1)
	assert.Equal(t, "Groceries", report.TopSpending[0].Title)
	assert.Equal(t, 100.0, report.TopSpending[0].Percentage)

	require.Len(t, report.BarSeries, 6)
	assert.Equal(t, "March", report.BarSeries[2].Label)
	assertDecimal(t, "100", report.BarSeries[2].Total)
}

func TestAssemble_EmptyInput(t *testing.T) {
	e := newEngine()
	report := e.Assemble(nil, nil, domain.ReportFilter{})
	assertDecimal(t, "0", report.Balance)
	assert.Equal(t, 2024, report.Year)
	assert.Len(t, report.BarSeries, 6)
	assert.NotNil(t, report.PieSeries)
	assert.Empty(t, report.PieSeries)
	assert.NotNil(t, report.TopSpending)
	assert.Empty(t, report.TopSpending)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), report.Filter.Range.StartDate)
}

func TestAssemble_BalanceIgnoresDateRange(t *testing.T) {
	e := newEngine()
	input := []domain.Transaction{
		tx("500", domain.CategoryTypeIncome, id(1), "2024-01-05"),
		tx("100", domain.CategoryTypeOutcome, id(7), "2024-03-10"),
	}

	report := e.Assemble(input, categories, domain.ReportFilter{Range: domain.MonthRange(2024, time.March)})

	assertDecimal(t, "400", report.Balance)
	assert.True(t, reporting.Balance(input).Equal(report.Balance))
	assertDecimal(t, "500", report.Flow.Inflow)
	assertDecimal(t, "0", report.PeriodFlow.Inflow)
	assertDecimal(t, "100", report.PeriodFlow.Outflow)
}

func TestAssemble_UndatedAndDeletedRows(t *testing.T) {
	e := newEngine()
	deleted := tx("1000", domain.CategoryTypeIncome, id(1), "2024-06-02")
	deletedAt := fixedNow
	deleted.DeletedAt = &deletedAt

	report := e.Assemble([]domain.Transaction{
		tx("100", domain.CategoryTypeIncome, id(1), "2024-06-05"),
		tx("10", domain.CategoryTypeOutcome, id(7), "not a date"),
		tx("500", domain.CategoryTypeIncome, id(1), "2024-01-05"),
		deleted,
	}, categories, domain.ReportFilter{})

	assertDecimal(t, "590", report.Balance)
	assertDecimal(t, "100", report.PeriodFlow.Inflow)
	assertDecimal(t, "0", report.PeriodFlow.Outflow)
	assert.Empty(t, report.TopSpending)
}

func TestAssemble_RepeatedCallsAreEqual(t *testing.T) {
	e := newEngine()
	input := []domain.Transaction{
		tx("100", domain.CategoryTypeIncome, id(1), "2024-03-05"),
		tx("40", domain.CategoryTypeOutcome, id(7), "2024-03-10"),
		tx("60", domain.CategoryTypeOutcome, id(8), "2024-03-15"),
		tx("25", domain.CategoryTypeOutcome, nil, "2024-03-16"),
		tx("5", domain.CategoryTypeIncome, id(404), "2024-03-17"),
	}
	snapshot := append([]domain.Transaction(nil), input...)
	f := domain.ReportFilter{Range: domain.MonthRange(2024, time.March), Year: 2024, TopLimit: 2}
	march := domain.MonthRange(2024, time.March)
	opts := reporting.TopSpendingOptions{WithTransactions: true}

	first := e.Assemble(input, categories, f)
	second := e.Assemble(input, categories, f)
	assert.Equal(t, first, second)

	top1 := e.TopSpending(input, categories, march, opts)
	top1[0].Transactions[0].Notes = "edited by caller"
	top2 := e.TopSpending(input, categories, march, opts)
	assert.Equal(t, "", top2[0].Transactions[0].Notes)
	top1[0].Transactions[0].Notes = ""
	assert.Equal(t, top1, top2)

	assert.Equal(t, snapshot, input, "input must not be modified")
}

func TestGroupByDay(t *testing.T) {
	groups := reporting.GroupByDay([]domain.Transaction{
		tx("10", domain.CategoryTypeOutcome, id(7), "2024-03-05"),
		tx("100", domain.CategoryTypeIncome, id(1), "2024-03-05T08:00:00Z"),
		tx("15", domain.CategoryTypeOutcome, id(8), "2024-03-05"),
		tx("7", domain.CategoryTypeOutcome, id(8), "2024-03-04"),
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-03-05", groups[0].Date)
	assert.Len(t, groups[0].Transactions, 3)
	assertDecimal(t, "25", groups[0].OutcomeTotal)
	assertDecimal(t, "7", groups[1].OutcomeTotal)
}

func TestYearOptions(t *testing.T) {
	e := newEngine()
	assert.Equal(t, []int{2024, 2023, 2022}, e.YearOptions(3))
	assert.Empty(t, e.YearOptions(0))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Rp. 1,234,567", reporting.FormatRupiah(dec("1234567")))
	assert.Equal(t, "Rp. 999", reporting.FormatRupiah(dec("999")))
	assert.Equal(t, "Rp. 1,000.5", reporting.FormatRupiah(dec("1000.50")))
	assert.Equal(t, "Rp. -12,000", reporting.FormatRupiah(dec("-12000")))
	assert.Equal(t, "Rp. 0", reporting.FormatRupiah(decimal.Zero))

	assert.Equal(t, "2.0M", reporting.FormatCompact(dec("2000000")))
	assert.Equal(t, "1.5K", reporting.FormatCompact(dec("1500")))
	assert.Equal(t, "950", reporting.FormatCompact(dec("950")))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, reporting.Percentage(dec("5"), decimal.Zero))
	assert.InDelta(t, 25.0, reporting.Percentage(dec("5"), dec("20")), 1e-9)
}

func TestSliceTransactions_MatchesBreakdownGroups(t *testing.T) {
	e := newEngine()
	withSeeded := append(append([]domain.Category{}, categories...), domain.Category{ID: 17, Name: "Outcome Other", Type: domain.CategoryTypeOutcome})
	input := []domain.Transaction{
		tx("20", domain.CategoryTypeIncome, nil, "2024-06-02"),
		tx("10", domain.CategoryTypeOutcome, nil, "2024-06-03"),
		tx("30", domain.CategoryTypeOutcome, id(17), "2024-06-04"),
		tx("8", domain.CategoryTypeOutcome, id(5), "2024-06-05"),
		tx("-4", domain.CategoryTypeOutcome, nil, "2024-06-06"),
		tx("12", domain.CategoryTypeOutcome, id(7), "2024-06-07"),
	}

	pie := e.CategoryBreakdown(input, withSeeded, domain.DateRange{}, "")
	for _, slice := range pie {
		rows := e.SliceTransactions(input, withSeeded, domain.DateRange{}, "", slice.Title)
		sum := decimal.Zero
		for _, r := range rows {
			sum = sum.Add(r.Amount())
		}
		assert.True(t, slice.Total.Equal(sum), "%s: slice %s, rows %s", slice.Title, slice.Total, sum)
	}

	outcomeOther := e.SliceTransactions(input, withSeeded, domain.DateRange{}, domain.CategoryTypeOutcome, "Outcome Other")
	assert.Len(t, outcomeOther, 3)
	for _, r := range outcomeOther {
		assert.Equal(t, domain.CategoryTypeOutcome, r.CategoryType)
	}

	top := e.TopSpending(input, withSeeded, domain.DateRange{}, reporting.TopSpendingOptions{})
	require.Len(t, top, 2)
	assert.Equal(t, "Outcome Other", top[0].Title)
	assert.Nil(t, top[0].CategoryID, "other buckets are drilled into by direction, not by id")
	require.NotNil(t, top[1].CategoryID)
	assert.Equal(t, int64(7), *top[1].CategoryID)
}
