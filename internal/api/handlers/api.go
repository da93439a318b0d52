package handlers

import (
	"errors"
	"log"
	"net/http"

	"delivery-dashboard-service/internal/api/dto"
	"delivery-dashboard-service/internal/ports"
)

// APIDays returns the loaded weekday names as JSON.
func (h *DayHandler) APIDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.Repo.ListDays(r.Context())
	if err != nil {
		log.Printf("list days failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListDaysResponse{Days: days})
}

// APIDay returns one day's routes and delivered state as JSON.
func (h *DayHandler) APIDay(w http.ResponseWriter, r *http.Request) {
	dayName := r.PathValue("day")

	day, err := h.Repo.GetDay(r.Context(), dayName)
	if errors.Is(err, ports.ErrDayNotFound) {
		writeError(w, r, http.StatusNotFound, "day not found")
		return
	}
	if err != nil {
		log.Printf("get day failed: day=%s err=%v", dayName, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.DayResponse{
		Day:    day.Name,
		Routes: make([]dto.RouteResponse, 0, len(day.Routes)),
	}
	for _, rt := range day.Routes {
		rr := dto.RouteResponse{
			Name:      rt.Name,
			Clients:   rt.ClientCount(),
			Delivered: rt.DeliveredCount(),
			Rows:      make([]dto.DeliveryRowResponse, 0, len(rt.Rows)),
		}
		for _, row := range rt.Rows {
			rr.Rows = append(rr.Rows, dto.DeliveryRowResponse{
				ClientID:    row.ClientID,
				ClientName:  row.ClientName(),
				Address:     row.Address(),
				Phone:       row.Phone(),
				Quantity:    row.Quantity,
				ServiceType: row.ServiceType,
				DietType:    row.DietType,
				Delivered:   row.Delivered,
			})
		}
		res.Routes = append(res.Routes, rr)
	}

	writeJSON(w, r, http.StatusOK, res)
}
