package repositories

import (
	"context"
	"fmt"

	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/ports"
)

// In-memory implementation of the DayRepository port, used in tests.
type MemDayRepository struct {
	days map[string]*domain.Day
}

func NewMemDayRepository() *MemDayRepository {
	return &MemDayRepository{days: map[string]*domain.Day{}}
}

func (m *MemDayRepository) SaveDay(ctx context.Context, day *domain.Day) error {
	if day == nil || !domain.IsWeekday(day.Name) {
		return fmt.Errorf("save day: invalid day")
	}
	m.days[day.Name] = day
	return nil
}

func (m *MemDayRepository) GetDay(ctx context.Context, name string) (*domain.Day, error) {
	day, ok := m.days[name]
	if !ok {
		return nil, ports.ErrDayNotFound
	}
	return day, nil
}

func (m *MemDayRepository) ListDays(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.days))
	for _, d := range domain.Weekdays {
		if _, ok := m.days[d]; ok {
			names = append(names, d)
		}
	}
	return names, nil
}

func (m *MemDayRepository) UpdateDelivered(ctx context.Context, day, route string, delivered map[string]bool) error {
	stored, ok := m.days[day]
	if !ok {
		return ports.ErrDayNotFound
	}
	rt := stored.Route(route)
	if rt == nil {
		return fmt.Errorf("update delivered: route %q not found", route)
	}
	for _, row := range rt.Rows {
		if done, ok := delivered[row.ClientID]; ok {
			row.Delivered = done
		}
	}
	return nil
}
