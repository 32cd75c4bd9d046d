package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/SscSPs/cashflow_app/internal/export/xlsx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRender(t *testing.T) {
	report := domain.Report{
		Balance:    decimal.RequireFromString("450"),
		Flow:       domain.FlowTotals{Inflow: decimal.RequireFromString("1000"), Outflow: decimal.RequireFromString("550")},
		PeriodFlow: domain.FlowTotals{Inflow: decimal.RequireFromString("300"), Outflow: decimal.RequireFromString("200")},
		Year:       2024,
		PieSeries: []domain.PieChartEntry{
			{Title: "Food", Total: decimal.RequireFromString("200"), Percentage: 40},
		},
		BarSeries: []domain.BarChartEntry{{Label: "January", Month: time.January, Total: decimal.RequireFromString("70")}},
		Filter:    domain.ReportFilter{Range: domain.MonthRange(2024, time.June)},
	}

	renderer := xlsx.Renderer{}
	out, err := renderer.Render(report)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", renderer.FileExtension())

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(xlsx.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cashflow report 2024-06-01 to 2024-06-30", title)

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)

	found := map[string]string{}
	for _, r := range rows {
		if len(r) >= 2 {
			found[r[0]] = r[1]
		}
	}
	assert.Contains(t, found, "Balance")
	assert.Contains(t, found, "Food")
	assert.Contains(t, found, "January")
}
