// Package export serializes a day's dashboard state to a styled workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"delivery-dashboard-service/internal/domain"
)

const summarySheet = "Summary"

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

var exportColumns = []string{
	"Delivery Route", "Client ID", "Client Name", "Address", "Phone",
	"Quantity", "Service Type", "Diet Type", "Delivered",
}

var columnWidths = map[string]float64{
	"Delivery Route": 18,
	"Client ID":      14,
	"Client Name":    22,
	"Address":        34,
	"Phone":          16,
	"Quantity":       10,
	"Service Type":   14,
	"Diet Type":      16,
	"Delivered":      12,
}

var centeredColumns = map[string]bool{
	"Quantity":     true,
	"Service Type": true,
	"Diet Type":    true,
	"Delivered":    true,
}

type styleSet struct {
	header int
	left   int
	center int
	total  int
}

// WriteWorkbook renders a day as an .xlsx workbook: one sheet per route
// with a trailing TOTALS row, then a Summary sheet with per-route counts.
func WriteWorkbook(day *domain.Day, w io.Writer) error {
	if day == nil {
		return fmt.Errorf("write workbook: day is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	// Reserve the summary name so a route cannot claim it.
	used := map[string]bool{summarySheet: true}
	firstSheet := ""
	for _, rt := range day.Routes {
		name := sheetName(rt.Name, used)
		if firstSheet == "" {
			firstSheet = name
		}
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("write workbook: create sheet %q: %w", name, err)
		}
		if err := writeRouteSheet(f, name, rt, styles); err != nil {
			return fmt.Errorf("write workbook: sheet %q: %w", name, err)
		}
	}

	if err := writeSummarySheet(f, day, styles); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	// Drop the workbook's default sheet unless a route claimed the name.
	if !used["Sheet1"] {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("write workbook: delete default sheet: %w", err)
		}
	}
	if firstSheet != "" {
		idx, err := f.GetSheetIndex(firstSheet)
		if err == nil && idx >= 0 {
			f.SetActiveSheet(idx)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Border: borders,
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("new header style: %w", err)
	}

	left, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    borders,
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("new left style: %w", err)
	}

	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders,
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("new center style: %w", err)
	}

	total, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FCE4D6"}},
		Border: borders,
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("new total style: %w", err)
	}

	return styleSet{header: header, left: left, center: center, total: total}, nil
}

func writeRouteSheet(f *excelize.File, sheet string, rt *domain.Route, styles styleSet) error {
	header := make([]any, len(exportColumns))
	for i, c := range exportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rt.Rows {
		delivered := ""
		if row.Delivered {
			delivered = "X"
		}
		values := []any{
			rt.Name, row.ClientID, row.ClientName(), row.Address(), row.Phone(),
			row.Quantity, row.ServiceType, row.DietType, delivered,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportColumns))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", styles.header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, col := range exportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, columnWidths[col]); err != nil {
			return fmt.Errorf("set width %s: %w", name, err)
		}
		if len(rt.Rows) > 0 {
			style := styles.left
			if centeredColumns[col] {
				style = styles.center
			}
			top := name + "2"
			bottom := name + strconv.Itoa(len(rt.Rows)+1)
			if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
				return fmt.Errorf("style column %s: %w", name, err)
			}
		}
	}

	// TOTALS row: label plus a live count of delivered marks.
	totalRow := len(rt.Rows) + 2
	labelCell := "A" + strconv.Itoa(totalRow)
	if err := f.SetCellValue(sheet, labelCell, "TOTALS"); err != nil {
		return fmt.Errorf("write totals label: %w", err)
	}
	if err := f.SetCellStyle(sheet, labelCell, labelCell, styles.total); err != nil {
		return fmt.Errorf("style totals label: %w", err)
	}

	deliveredCol, err := excelize.ColumnNumberToName(len(exportColumns))
	if err != nil {
		return fmt.Errorf("delivered column name: %w", err)
	}
	countCell := deliveredCol + strconv.Itoa(totalRow)
	formula := fmt.Sprintf(`COUNTIF(%s2:%s%d,"X")`, deliveredCol, deliveredCol, len(rt.Rows)+1)
	if err := f.SetCellFormula(sheet, countCell, formula); err != nil {
		return fmt.Errorf("write totals formula: %w", err)
	}
	if err := f.SetCellStyle(sheet, countCell, countCell, styles.total); err != nil {
		return fmt.Errorf("style totals formula: %w", err)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, day *domain.Day, styles styleSet) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	header := []any{"Route", "Clients", "Delivered"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "C1", styles.header); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}

	for i, rt := range day.Routes {
		values := []any{rt.Name, rt.ClientCount(), rt.DeliveredCount()}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	if len(day.Routes) > 0 {
		last := strconv.Itoa(len(day.Routes) + 1)
		if err := f.SetCellStyle(summarySheet, "A2", "A"+last, styles.left); err != nil {
			return fmt.Errorf("style summary routes: %w", err)
		}
		if err := f.SetCellStyle(summarySheet, "B2", "C"+last, styles.center); err != nil {
			return fmt.Errorf("style summary counts: %w", err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set summary width: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "C", 12); err != nil {
		return fmt.Errorf("set summary width: %w", err)
	}

	return nil
}

// sheetName reduces a route name to the characters Excel accepts and
// dedupes collisions with a numeric suffix.
func sheetName(route string, used map[string]bool) string {
	var b strings.Builder
	for _, ch := range route {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			b.WriteRune(ch)
		}
	}

	name := b.String()
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	if name == "" {
		name = "Route"
	}

	base := name
	for n := 2; used[name]; n++ {
		suffix := strconv.Itoa(n)
		trimmed := []rune(base)
		if len(trimmed)+len(suffix) > maxSheetNameLen {
			trimmed = trimmed[:maxSheetNameLen-len(suffix)]
		}
		name = string(trimmed) + suffix
	}

	used[name] = true
	return name
}
