package domain

import "strings"

// MaxRoutesPerDay caps how many routes a single day renders and exports.
const MaxRoutesPerDay = 14

// Routes whose name contains this marker (any case) are never shown or
// exported.
const excludedRouteMarker = "COPO"

// Route is a named delivery grouping of clients for one day.
// Rows keep the order they had in the source report.
type Route struct {
	Name string
	Rows []*DeliveryRow
}

// ClientCount returns the number of clients on the route.
func (r *Route) ClientCount() int { return len(r.Rows) }

// DeliveredCount returns the number of clients currently marked delivered.
func (r *Route) DeliveredCount() int {
	n := 0
	for _, row := range r.Rows {
		if row.Delivered {
			n++
		}
	}
	return n
}

// RouteExcluded reports whether a route name is filtered from the dashboard.
func RouteExcluded(name string) bool {
	return strings.Contains(strings.ToUpper(name), excludedRouteMarker)
}

// FilterRoutes drops excluded routes and caps the result at MaxRoutesPerDay,
// preserving input order among the kept routes.
func FilterRoutes(routes []*Route) []*Route {
	kept := make([]*Route, 0, len(routes))
	for _, rt := range routes {
		if RouteExcluded(rt.Name) {
			continue
		}
		kept = append(kept, rt)
		if len(kept) == MaxRoutesPerDay {
			break
		}
	}
	return kept
}
