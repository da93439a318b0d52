package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/obs"
	"delivery-dashboard-service/internal/ports"
)

// SQLite-backed implementation of the DayRepository port.
// The database is expected to be in-memory; the repository carries
// dashboard state only for the lifetime of the process.
type SqliteDayRepository struct{ DB *sql.DB }

func NewSqliteDayRepository(db *sql.DB) *SqliteDayRepository {
	return &SqliteDayRepository{DB: db}
}

// Replace any stored state for the day with the given routes.
func (s *SqliteDayRepository) SaveDay(ctx context.Context, day *domain.Day) (err error) {
	defer obs.Time(ctx, "days.repo.SaveDay")(&err)

	if s.DB == nil {
		return errors.New("sqlite day repository: DB is nil")
	}
	if day == nil {
		return errors.New("save day: day is nil")
	}

	position := domain.WeekdayIndex(day.Name)
	if position < 0 {
		return fmt.Errorf("save day: %q is not a weekday", day.Name)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save day: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM delivery_rows WHERE day = ?;`, day.Name); err != nil {
		return fmt.Errorf("save day: clear rows for %q: %w", day.Name, err)
	}

	insertDayQuery := `
	INSERT OR REPLACE INTO days (
		name,
		position
	)
	VALUES (?, ?);
	`
	if _, err := tx.ExecContext(ctx, insertDayQuery, day.Name, position); err != nil {
		return fmt.Errorf("save day: insert day %q: %w", day.Name, err)
	}

	insertRowQuery := `
	INSERT INTO delivery_rows (
		day,
		route,
		route_position,
		row_position,
		client_id,
		first_name,
		last_name,
		address_line1,
		address_line2,
		building,
		mobile_phone,
		home_phone,
		quantity,
		service_type,
		diet_type,
		delivered
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, insertRowQuery)
	if err != nil {
		return fmt.Errorf("save day: prepare insert: %w", err)
	}
	defer stmt.Close()

	for ri, rt := range day.Routes {
		for pi, row := range rt.Rows {
			_, err := stmt.ExecContext(ctx,
				day.Name, rt.Name, ri, pi,
				row.ClientID, row.FirstName, row.LastName,
				row.AddressLine1, row.AddressLine2, row.Building,
				row.MobilePhone, row.HomePhone,
				row.Quantity, row.ServiceType, row.DietType,
				boolToInt(row.Delivered),
			)
			if err != nil {
				return fmt.Errorf("save day: insert row day=%q route=%q pos=%d: %w", day.Name, rt.Name, pi, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save day: commit tx: %w", err)
	}

	return nil
}

// Retrieve a day with its routes and current delivered flags.
func (s *SqliteDayRepository) GetDay(ctx context.Context, name string) (_ *domain.Day, err error) {
	defer obs.Time(ctx, "days.repo.GetDay")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite day repository: DB is nil")
	}

	var stored string
	row := s.DB.QueryRowContext(ctx, `SELECT name FROM days WHERE name = ?;`, name)
	if err := row.Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrDayNotFound
		}
		return nil, fmt.Errorf("get day: lookup %q: %w", name, err)
	}

	query := `
	SELECT
		route,
		route_position,
		client_id,
		first_name,
		last_name,
		address_line1,
		address_line2,
		building,
		mobile_phone,
		home_phone,
		quantity,
		service_type,
		diet_type,
		delivered
	FROM delivery_rows
	WHERE day = ?
	ORDER BY route_position, row_position;
	`
	rows, err := s.DB.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get day: query rows for %q: %w", name, err)
	}
	defer rows.Close()

	day := &domain.Day{Name: stored}
	var current *domain.Route
	lastPos := -1

	for rows.Next() {
		var route string
		var routePos, delivered int
		dr := &domain.DeliveryRow{}
		err := rows.Scan(
			&route, &routePos,
			&dr.ClientID, &dr.FirstName, &dr.LastName,
			&dr.AddressLine1, &dr.AddressLine2, &dr.Building,
			&dr.MobilePhone, &dr.HomePhone,
			&dr.Quantity, &dr.ServiceType, &dr.DietType,
			&delivered,
		)
		if err != nil {
			return nil, fmt.Errorf("get day: scan row: %w", err)
		}
		dr.Delivered = delivered != 0

		if current == nil || routePos != lastPos {
			current = &domain.Route{Name: route}
			day.Routes = append(day.Routes, current)
			lastPos = routePos
		}
		current.Rows = append(current.Rows, dr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get day: row iteration: %w", err)
	}

	return day, nil
}

// List loaded day names in weekday order.
func (s *SqliteDayRepository) ListDays(ctx context.Context) (_ []string, err error) {
	defer obs.Time(ctx, "days.repo.ListDays")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite day repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT name, position FROM days;`)
	if err != nil {
		return nil, fmt.Errorf("list days: query days table: %w", err)
	}
	defer rows.Close()

	type loaded struct {
		name     string
		position int
	}
	days := make([]loaded, 0, len(domain.Weekdays))
	for rows.Next() {
		var d loaded
		if err := rows.Scan(&d.name, &d.position); err != nil {
			return nil, fmt.Errorf("list days: scan row: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list days: row iteration: %w", err)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].position < days[j].position })

	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.name)
	}
	return names, nil
}

// Apply operator checkbox state for one route.
func (s *SqliteDayRepository) UpdateDelivered(ctx context.Context, day, route string, delivered map[string]bool) (err error) {
	defer obs.Time(ctx, "days.repo.UpdateDelivered")(&err)

	if s.DB == nil {
		return errors.New("sqlite day repository: DB is nil")
	}
	if len(delivered) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update delivered: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	UPDATE delivery_rows
	SET delivered = ?
	WHERE day = ? AND route = ? AND client_id = ?;
	`)
	if err != nil {
		return fmt.Errorf("update delivered: prepare update: %w", err)
	}
	defer stmt.Close()

	for clientID, done := range delivered {
		if _, err := stmt.ExecContext(ctx, boolToInt(done), day, route, clientID); err != nil {
			return fmt.Errorf("update delivered: client_id=%q: %w", clientID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update delivered: commit tx: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
