package db

import (
	"database/sql"
	"fmt"
)

// Open returns the in-memory SQLite handle that backs dashboard state.
// Nothing is written to disk; state lasts for the process lifetime only.
func Open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("openDB: open in-memory sqlite database: %w", err)
	}

	// Each new connection to :memory: would see its own empty database,
	// so the pool is pinned to a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection: %w", err)
	}

	return db, nil
}
