package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"

	"delivery-dashboard-service/internal/domain"
)

// Cell-read ceiling for legacy workbooks; a report is a few hundred rows.
const legacyMaxCells = 100000

// ReadLegacyReport parses the older binary .xls report format.
// Legacy exports carry a single worksheet, which must be the report.
func ReadLegacyReport(r io.ReadSeeker) ([]*domain.Route, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("read legacy report: open workbook: %w", err)
	}

	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("read legacy report: workbook has no sheets")
	}
	if wb.NumSheets() > 1 {
		return nil, fmt.Errorf("read legacy report: expected a single %q sheet, found %d sheets", reportSheet, wb.NumSheets())
	}
	if sheet := wb.GetSheet(0); sheet == nil || sheet.Name != reportSheet {
		return nil, fmt.Errorf("read legacy report: workbook sheet is not named %q", reportSheet)
	}

	return routesFromGrid(wb.ReadAllCells(legacyMaxCells))
}

// ReadReportFile opens a report from disk, choosing the reader by
// file extension (.xlsx or legacy .xls).
func ReadReportFile(path string) ([]*domain.Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return ReadLegacyReport(f)
	}
	return ReadReport(f)
}
