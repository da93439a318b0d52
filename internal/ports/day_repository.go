package ports

import (
	"context"
	"errors"

	"delivery-dashboard-service/internal/domain"
)

// ErrDayNotFound is returned when no report has been uploaded for a day.
var ErrDayNotFound = errors.New("day not found")

// Port: a boundary for storing and retrieving per-day dashboard state.
// State lives only for the lifetime of the process.
type DayRepository interface {
	// Replace any stored state for the day with the given routes.
	SaveDay(ctx context.Context, day *domain.Day) error

	// Retrieve a day with its routes and current delivered flags.
	// Returns ErrDayNotFound when the day has no uploaded report.
	GetDay(ctx context.Context, name string) (*domain.Day, error)

	// List loaded day names in weekday order.
	ListDays(ctx context.Context) ([]string, error)

	// Apply operator checkbox state for one route. Keys are client IDs;
	// IDs absent from the map keep their stored flag.
	UpdateDelivered(ctx context.Context, day, route string, delivered map[string]bool) error
}
