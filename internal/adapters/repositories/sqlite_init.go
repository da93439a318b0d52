package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite schema backing the dashboard state.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDaysQuery := `
	CREATE TABLE IF NOT EXISTS days (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	);
	`

	createRowsQuery := `
	CREATE TABLE IF NOT EXISTS delivery_rows (
		day TEXT NOT NULL,
		route TEXT NOT NULL,
		route_position INTEGER NOT NULL,
		row_position INTEGER NOT NULL,
		client_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		address_line1 TEXT NOT NULL,
		address_line2 TEXT NOT NULL,
		building TEXT NOT NULL,
		mobile_phone TEXT NOT NULL,
		home_phone TEXT NOT NULL,
		quantity TEXT NOT NULL,
		service_type TEXT NOT NULL,
		diet_type TEXT NOT NULL,
		delivered INTEGER NOT NULL,
		PRIMARY KEY (day, route_position, row_position)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_delivery_rows_day_route
	ON delivery_rows(day, route);
	`

	statements := []string{
		createDaysQuery,
		createRowsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
