package domain

// Weekdays lists the days the dashboard accepts, in tab order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Day holds every kept route parsed from one weekday report.
// A Day lives in memory only; nothing survives a restart unless the
// operator re-uploads the source file.
type Day struct {
	Name   string
	Routes []*Route
}

// IsWeekday reports whether name is one of the Monday-Friday tab names.
func IsWeekday(name string) bool {
	return WeekdayIndex(name) >= 0
}

// WeekdayIndex returns the tab position of a weekday name, or -1.
func WeekdayIndex(name string) int {
	for i, d := range Weekdays {
		if d == name {
			return i
		}
	}
	return -1
}

// Route returns the named route, or nil when the day does not have it.
func (d *Day) Route(name string) *Route {
	for _, rt := range d.Routes {
		if rt.Name == name {
			return rt
		}
	}
	return nil
}

// TotalClients returns the number of clients across all routes.
func (d *Day) TotalClients() int {
	n := 0
	for _, rt := range d.Routes {
		n += rt.ClientCount()
	}
	return n
}
