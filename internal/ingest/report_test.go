package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"delivery-dashboard-service/internal/domain"
)

var reportHeader = []any{
	"Delivery Route", "Client ID", "Last Name", "First Name",
	"Address Line 1", "Address Line 2", "Building",
	"Home Phone", "Mobile Phone", "Quantity",
	"Service Type", "Diet Type",
}

// buildReport writes a workbook whose "Report" sheet has banner rows,
// the header at headerRow (1-based), and the given data rows below it.
func buildReport(t *testing.T, headerRow int, dataRows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Report"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if headerRow > 1 {
		if err := f.SetCellValue("Report", "A1", "BHDML Weekday Report"); err != nil {
			t.Fatalf("set banner: %v", err)
		}
	}

	header := reportHeader
	if err := f.SetSheetRow("Report", fmt.Sprintf("A%d", headerRow), &header); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i, row := range dataRows {
		cell := fmt.Sprintf("A%d", headerRow+1+i)
		if err := f.SetSheetRow("Report", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestReadReportGroupsAndFilters(t *testing.T) {
	buf := buildReport(t, 4, [][]any{
		{"Route 1", "101", "Smith", "Mary", "12 Main St", "Apt 4B", "", "555-0202", "555-0101", 2, "HDM", "Regular"},
		{"COPO East", "900", "Pick", "Up", "", "", "", "", "", 1, "HDM", "Regular"},
		{"Route 2", "201", "Lopez", "Ana", "9 Oak Ave", "", "Tower A", "555-0303", "", 1, "HDM", "Diabetic"},
		{"Route 1", "102", "Doe", "John", "77 Pine Rd", "", "", "", "", 1, "Frozen", "Renal"},
		{"", "", "", "", "", "", "", "", "", "", "", ""},
	})

	routes, err := ReadReport(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].Name != "Route 1" || routes[1].Name != "Route 2" {
		t.Fatalf("expected appearance order, got %q, %q", routes[0].Name, routes[1].Name)
	}

	r1 := routes[0]
	if len(r1.Rows) != 2 {
		t.Fatalf("expected 2 clients on Route 1, got %d", len(r1.Rows))
	}
	first := r1.Rows[0]
	if first.ClientName() != "Mary Smith" {
		t.Fatalf("expected client name, got %q", first.ClientName())
	}
	if first.Address() != "12 Main St Apt 4B" {
		t.Fatalf("expected address join, got %q", first.Address())
	}
	if first.Phone() != "555-0101" {
		t.Fatalf("expected mobile preferred, got %q", first.Phone())
	}
	if first.Quantity != "2" {
		t.Fatalf("expected quantity kept as text, got %q", first.Quantity)
	}
	if !first.Delivered || !r1.Rows[1].Delivered {
		t.Fatalf("expected every ingested row marked delivered")
	}

	second := routes[1].Rows[0]
	if second.Phone() != "555-0303" {
		t.Fatalf("expected home phone fallback, got %q", second.Phone())
	}
	if second.Address() != "9 Oak Ave Tower A" {
		t.Fatalf("expected building appended, got %q", second.Address())
	}
}

func TestReadReportSkipsRowsWithoutRoute(t *testing.T) {
	buf := buildReport(t, 1, [][]any{
		{"Route 1", "101", "Smith", "Mary"},
		{"", "102", "Doe", "John"},
	})

	routes, err := ReadReport(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
	if len(routes[0].Rows) != 1 {
		t.Fatalf("expected routeless row skipped, got %d rows", len(routes[0].Rows))
	}
}

func TestReadReportHeaderNotFound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Report"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if err := f.SetCellValue("Report", "A1", "not a header"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	_, err = ReadReport(buf)
	if err == nil {
		t.Fatalf("expected error for missing header row")
	}
	if !strings.Contains(err.Error(), "could not find header row") {
		t.Fatalf("expected header-row message, got %v", err)
	}
}

func TestReadReportMissingReportSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	if _, err := ReadReport(buf); err == nil {
		t.Fatalf("expected error for workbook without a Report sheet")
	}
}

func TestReadReportCapsRouteCount(t *testing.T) {
	rows := make([][]any, 0, 16)
	for i := 1; i <= 16; i++ {
		rows = append(rows, []any{fmt.Sprintf("Route %d", i), fmt.Sprintf("%d", 100+i), "Smith", "Mary"})
	}
	buf := buildReport(t, 1, rows)

	routes, err := ReadReport(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != domain.MaxRoutesPerDay {
		t.Fatalf("expected %d routes, got %d", domain.MaxRoutesPerDay, len(routes))
	}
	if routes[0].Name != "Route 1" || routes[len(routes)-1].Name != "Route 14" {
		t.Fatalf("expected first 14 routes kept in order, got %q..%q", routes[0].Name, routes[len(routes)-1].Name)
	}
}
