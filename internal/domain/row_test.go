package domain

import "testing"

func TestDeliveryRowClientName(t *testing.T) {
	row := &DeliveryRow{FirstName: " Mary ", LastName: " Smith "}
	if got := row.ClientName(); got != "Mary Smith" {
		t.Fatalf("expected %q, got %q", "Mary Smith", got)
	}

	row = &DeliveryRow{FirstName: "Mary"}
	if got := row.ClientName(); got != "Mary" {
		t.Fatalf("expected first name only, got %q", got)
	}

	row = &DeliveryRow{LastName: "Smith"}
	if got := row.ClientName(); got != "Smith" {
		t.Fatalf("expected last name only, got %q", got)
	}
}

func TestDeliveryRowAddress(t *testing.T) {
	row := &DeliveryRow{
		AddressLine1: "12 Main St",
		AddressLine2: "Apt 4B",
		Building:     "Tower A",
	}
	if got := row.Address(); got != "12 Main St Apt 4B Tower A" {
		t.Fatalf("expected full address, got %q", got)
	}

	row = &DeliveryRow{AddressLine1: "12 Main St", AddressLine2: "  ", Building: ""}
	if got := row.Address(); got != "12 Main St" {
		t.Fatalf("expected blank parts skipped, got %q", got)
	}

	row = &DeliveryRow{AddressLine1: "12 Main St", Building: "Tower A"}
	if got := row.Address(); got != "12 Main St Tower A" {
		t.Fatalf("expected line 2 skipped, got %q", got)
	}
}

func TestDeliveryRowPhone(t *testing.T) {
	row := &DeliveryRow{MobilePhone: "555-0101", HomePhone: "555-0202"}
	if got := row.Phone(); got != "555-0101" {
		t.Fatalf("expected mobile preferred, got %q", got)
	}

	row = &DeliveryRow{MobilePhone: "   ", HomePhone: "555-0202"}
	if got := row.Phone(); got != "555-0202" {
		t.Fatalf("expected home fallback when mobile blank, got %q", got)
	}

	row = &DeliveryRow{}
	if got := row.Phone(); got != "" {
		t.Fatalf("expected empty phone, got %q", got)
	}
}
