// Package ingest reads PeerPlace "Report" spreadsheet exports into routes.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"delivery-dashboard-service/internal/domain"
)

// Sheet the report lives on in every PeerPlace export.
const reportSheet = "Report"

// How many leading rows are searched for the header row. PeerPlace
// prepends a variable-height banner above the column headers.
const headerScanLimit = 25

// Column headers as PeerPlace writes them.
const (
	colRoute       = "Delivery Route"
	colClientID    = "Client ID"
	colLastName    = "Last Name"
	colFirstName   = "First Name"
	colAddress1    = "Address Line 1"
	colAddress2    = "Address Line 2"
	colBuilding    = "Building"
	colHomePhone   = "Home Phone"
	colMobilePhone = "Mobile Phone"
	colQuantity    = "Quantity"
	colServiceType = "Service Type"
	colDietType    = "Diet Type"
)

// ReadReport parses an .xlsx report into routes, already filtered
// (excluded routes dropped, list capped) and with every row marked
// delivered.
func ReadReport(r io.Reader) ([]*domain.Route, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read report: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("read report: read sheet %q: %w", reportSheet, err)
	}

	return routesFromGrid(rows)
}

// routesFromGrid converts a raw cell grid into filtered routes.
// Shared by the .xlsx and legacy .xls readers.
func routesFromGrid(grid [][]string) ([]*domain.Route, error) {
	headerIdx := -1
	limit := min(headerScanLimit, len(grid))
	for i := 0; i < limit; i++ {
		if len(grid[i]) > 0 && strings.TrimSpace(grid[i][0]) == colRoute {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("read report: could not find header row containing %q on the %q sheet", colRoute, reportSheet)
	}

	// First occurrence wins when a header repeats.
	cols := map[string]int{}
	for ci, name := range grid[headerIdx] {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := cols[name]; !ok {
			cols[name] = ci
		}
	}

	cell := func(row []string, name string) string {
		ci, ok := cols[name]
		if !ok || ci >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[ci])
	}

	var order []string
	byName := map[string]*domain.Route{}

	for _, row := range grid[headerIdx+1:] {
		route := cell(row, colRoute)
		clientID := cell(row, colClientID)
		lastName := cell(row, colLastName)
		firstName := cell(row, colFirstName)

		// Trailing banner/total rows come through with no identity at all.
		if route == "" && clientID == "" && lastName == "" && firstName == "" {
			continue
		}
		// A row without a route never appears on any tab.
		if route == "" {
			continue
		}

		dr := &domain.DeliveryRow{
			ClientID:     clientID,
			FirstName:    firstName,
			LastName:     lastName,
			AddressLine1: cell(row, colAddress1),
			AddressLine2: cell(row, colAddress2),
			Building:     cell(row, colBuilding),
			MobilePhone:  cell(row, colMobilePhone),
			HomePhone:    cell(row, colHomePhone),
			Quantity:     cell(row, colQuantity),
			ServiceType:  cell(row, colServiceType),
			DietType:     cell(row, colDietType),
			Delivered:    true,
		}

		rt, ok := byName[route]
		if !ok {
			rt = &domain.Route{Name: route}
			byName[route] = rt
			order = append(order, route)
		}
		rt.Rows = append(rt.Rows, dr)
	}

	routes := make([]*domain.Route, 0, len(order))
	for _, name := range order {
		routes = append(routes, byName[name])
	}

	return domain.FilterRoutes(routes), nil
}
