// Package xlsx renders reports as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	"github.com/SscSPs/cashflow_app/internal/export"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Report"
	colorHeader = "#15F5BA"
	colorTitle  = "#124076"
	moneyFormat = `#,##0.00`
)

// Renderer writes a single sheet workbook.
type Renderer struct{}

var _ portsexport.ReportRenderer = Renderer{}

func (Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (Renderer) FileExtension() string {
	return "xlsx"
}

type styles struct {
	title   int
	section int
	header  int
	money   int
	percent int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorTitle}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: colorTitle},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: colorTitle, Style: 1}},
	}); err != nil {
		return s, err
	}
	format := moneyFormat
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &format}); err != nil {
		return s, err
	}
	pct := `0.00"%"`
	if s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &pct}); err != nil {
		return s, err
	}
	return s, nil
}

// Render lays the report sections out top to bottom under a title row.
func (Renderer) Render(r domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("create styles: %w", err)
	}

	if err := f.MergeCell(SheetName, "A1", "C1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	title := fmt.Sprintf("Cashflow report %s to %s",
		r.Filter.Range.StartDate.Format(domain.DateLayout),
		r.Filter.Range.EndDate.Format(domain.DateLayout))
	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", st.title); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(SheetName, 1, 28); err != nil {
		return nil, err
	}

	row := 3
	for _, section := range export.Sections(r) {
		if row, err = writeSection(f, st, section, row); err != nil {
			return nil, fmt.Errorf("write %s: %w", section.Title, err)
		}
		row++
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "C", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSection writes one block starting at row and returns the next free row.
func writeSection(f *excelize.File, st styles, s export.Section, row int) (int, error) {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellValue(SheetName, cell, s.Title); err != nil {
		return row, err
	}
	if err := f.SetCellStyle(SheetName, cell, cell, st.section); err != nil {
		return row, err
	}
	row++

	start, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(SheetName, start, &s.Header); err != nil {
		return row, err
	}
	end, _ := excelize.CoordinatesToCellName(len(s.Header), row)
	if err := f.SetCellStyle(SheetName, start, end, st.header); err != nil {
		return row, err
	}
	row++

	for _, values := range s.Rows {
		start, _ := excelize.CoordinatesToCellName(1, row)
		values := values
		if err := f.SetSheetRow(SheetName, start, &values); err != nil {
			return row, err
		}
		for col := 2; col <= len(values); col++ {
			if _, ok := values[col-1].(float64); !ok {
				continue
			}
			c, _ := excelize.CoordinatesToCellName(col, row)
			style := st.money
			if col == 3 {
				style = st.percent
			}
			if err := f.SetCellStyle(SheetName, c, c, style); err != nil {
				return row, err
			}
		}
		row++
	}
	return row, nil
}
