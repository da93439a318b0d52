package dto

type DeliveryRowResponse struct {
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Quantity    string `json:"quantity"`
	ServiceType string `json:"service_type"`
	DietType    string `json:"diet_type"`
	Delivered   bool   `json:"delivered"`
}

type RouteResponse struct {
	Name      string                `json:"name"`
	Clients   int                   `json:"clients"`
	Delivered int                   `json:"delivered"`
	Rows      []DeliveryRowResponse `json:"rows"`
}

type DayResponse struct {
	Day    string          `json:"day"`
	Routes []RouteResponse `json:"routes"`
}

type ListDaysResponse struct {
	Days []string `json:"days"`
}
