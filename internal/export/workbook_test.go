package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"delivery-dashboard-service/internal/domain"
)

func exportDay(t *testing.T, day *domain.Day) *excelize.File {
	t.Helper()

	var buf bytes.Buffer
	if err := WriteWorkbook(day, &buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteWorkbookSheetsPerRoute(t *testing.T) {
	day := &domain.Day{
		Name: "Monday",
		Routes: []*domain.Route{
			{
				Name: "Route 1",
				Rows: []*domain.DeliveryRow{
					{ClientID: "101", FirstName: "Mary", LastName: "Smith", MobilePhone: "555-0101", Quantity: "2", ServiceType: "HDM", DietType: "Regular", Delivered: true},
					{ClientID: "102", FirstName: "John", LastName: "Doe", HomePhone: "555-0202", Quantity: "1", ServiceType: "HDM", DietType: "Renal", Delivered: false},
				},
			},
			{
				Name: "Route 2",
				Rows: []*domain.DeliveryRow{
					{ClientID: "201", FirstName: "Ana", LastName: "Lopez", Quantity: "1", Delivered: true},
				},
			},
		},
	}

	f := exportDay(t, day)

	sheets := f.GetSheetList()
	want := []string{"Route1", "Route2", "Summary"}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("expected sheets %v, got %v", want, sheets)
		}
	}

	rows, err := f.GetRows("Route1")
	if err != nil {
		t.Fatalf("read Route1: %v", err)
	}
	if rows[0][0] != "Delivery Route" || rows[0][8] != "Delivered" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][2] != "Mary Smith" {
		t.Fatalf("expected client name cell, got %q", rows[1][2])
	}
	if rows[1][4] != "555-0101" {
		t.Fatalf("expected mobile phone, got %q", rows[1][4])
	}
	if rows[2][4] != "555-0202" {
		t.Fatalf("expected home phone fallback, got %q", rows[2][4])
	}
	if rows[1][8] != "X" {
		t.Fatalf("expected delivered mark, got %q", rows[1][8])
	}
	if len(rows[2]) > 8 && rows[2][8] != "" {
		t.Fatalf("expected empty delivered cell, got %q", rows[2][8])
	}
	if rows[3][0] != "TOTALS" {
		t.Fatalf("expected TOTALS label, got %q", rows[3][0])
	}
}

func TestWriteWorkbookTotalsFormula(t *testing.T) {
	day := &domain.Day{
		Name: "Monday",
		Routes: []*domain.Route{
			{
				Name: "Route 1",
				Rows: []*domain.DeliveryRow{
					{ClientID: "101", Delivered: true},
					{ClientID: "102", Delivered: false},
					{ClientID: "103", Delivered: true},
				},
			},
		},
	}

	f := exportDay(t, day)

	formula, err := f.GetCellFormula("Route1", "I5")
	if err != nil {
		t.Fatalf("read formula: %v", err)
	}
	if formula != `COUNTIF(I2:I4,"X")` {
		t.Fatalf("unexpected totals formula %q", formula)
	}
}

func TestWriteWorkbookSummaryCounts(t *testing.T) {
	day := &domain.Day{
		Name: "Tuesday",
		Routes: []*domain.Route{
			{Name: "Route 1", Rows: []*domain.DeliveryRow{
				{ClientID: "101", Delivered: true},
				{ClientID: "102", Delivered: false},
			}},
			{Name: "Route 2", Rows: []*domain.DeliveryRow{
				{ClientID: "201", Delivered: true},
			}},
		},
	}

	f := exportDay(t, day)

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if rows[0][0] != "Route" || rows[0][1] != "Clients" || rows[0][2] != "Delivered" {
		t.Fatalf("unexpected summary header: %v", rows[0])
	}
	if rows[1][0] != "Route 1" || rows[1][1] != "2" || rows[1][2] != "1" {
		t.Fatalf("unexpected summary row: %v", rows[1])
	}
	if rows[2][0] != "Route 2" || rows[2][1] != "1" || rows[2][2] != "1" {
		t.Fatalf("unexpected summary row: %v", rows[2])
	}
}

func TestSheetNameSanitization(t *testing.T) {
	used := map[string]bool{}

	if got := sheetName("Route 1 - West & Central", used); got != "Route1WestCentral" {
		t.Fatalf("expected alphanumeric name, got %q", got)
	}
	if got := sheetName("!!!", used); got != "Route" {
		t.Fatalf("expected fallback name, got %q", got)
	}
	if got := sheetName(strings.Repeat("Long Route Name ", 5), used); len([]rune(got)) > maxSheetNameLen {
		t.Fatalf("expected name capped at %d chars, got %q", maxSheetNameLen, got)
	}

	used = map[string]bool{}
	first := sheetName("Route.1", used)
	second := sheetName("Route 1", used)
	if first != "Route1" {
		t.Fatalf("expected %q, got %q", "Route1", first)
	}
	if second == first {
		t.Fatalf("expected deduped sheet name, got %q twice", second)
	}
}

func TestWriteWorkbookEmptyDay(t *testing.T) {
	f := exportDay(t, &domain.Day{Name: "Friday"})

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Summary" {
		t.Fatalf("expected only the Summary sheet, got %v", sheets)
	}
}
