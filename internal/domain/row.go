package domain

import "strings"

// Represents a single client line from a weekday report.
// Field values are carried exactly as the spreadsheet provided them;
// presentation values (client name, address, phone) are derived on demand.
type DeliveryRow struct {
	ClientID     string
	FirstName    string
	LastName     string
	AddressLine1 string
	AddressLine2 string
	Building     string
	MobilePhone  string
	HomePhone    string
	Quantity     string
	ServiceType  string
	DietType     string
	Delivered    bool
}

// ClientName joins the first and last name into "First Last".
func (r *DeliveryRow) ClientName() string {
	first := strings.TrimSpace(r.FirstName)
	last := strings.TrimSpace(r.LastName)
	return strings.TrimSpace(first + " " + last)
}

// Address concatenates address line 1, line 2 and building, skipping blank parts.
func (r *DeliveryRow) Address() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.AddressLine1, r.AddressLine2, r.Building} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Phone prefers the mobile number and falls back to the home number.
// Returns the empty string when the client has neither.
func (r *DeliveryRow) Phone() string {
	if mobile := strings.TrimSpace(r.MobilePhone); mobile != "" {
		return mobile
	}
	return strings.TrimSpace(r.HomePhone)
}
