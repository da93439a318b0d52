package api

import (
	"fmt"
	"net/http"

	"delivery-dashboard-service/internal/api/handlers"
	"delivery-dashboard-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.DayRepository) (http.Handler, error) {
	tmpl, err := handlers.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("new router: parse templates: %w", err)
	}

	dayHandler := &handlers.DayHandler{Repo: repo, Tmpl: tmpl}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /{$}", dayHandler.Home)
	mux.HandleFunc("POST /days/{day}", dayHandler.Upload)
	mux.HandleFunc("GET /days/{day}", dayHandler.View)
	mux.HandleFunc("POST /days/{day}/delivered", dayHandler.SaveDelivered)
	mux.HandleFunc("GET /days/{day}/export", dayHandler.Export)
	mux.HandleFunc("GET /api/days", dayHandler.APIDays)
	mux.HandleFunc("GET /api/days/{day}", dayHandler.APIDay)

	return requestIDMiddleware(loggingMiddleware(mux)), nil
}
