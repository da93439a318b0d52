package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/export"
	"delivery-dashboard-service/internal/ingest"
	"delivery-dashboard-service/internal/ports"
)

// Uploaded reports are small; 32 MB leaves plenty of headroom.
const maxUploadBytes = 32 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DayHandler serves the weekday dashboard: uploads, route tabs,
// delivered toggles and workbook export.
type DayHandler struct {
	Repo ports.DayRepository
	Tmpl *template.Template
}

type weekTab struct {
	Name   string
	Loaded bool
}

type homeData struct {
	Tabs  []weekTab
	Error string
}

type routeTab struct {
	Name     string
	Index    int
	Selected bool
}

type dayData struct {
	Day      *domain.Day
	Tabs     []routeTab
	Selected int
	Route    *domain.Route
}

// Home renders the week overview with one tab per weekday.
func (h *DayHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, http.StatusOK, "")
}

func (h *DayHandler) renderHome(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	loaded, err := h.Repo.ListDays(r.Context())
	if err != nil {
		log.Printf("list days failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	isLoaded := make(map[string]bool, len(loaded))
	for _, name := range loaded {
		isLoaded[name] = true
	}

	data := homeData{Error: errMsg}
	for _, name := range domain.Weekdays {
		data.Tabs = append(data.Tabs, weekTab{Name: name, Loaded: isLoaded[name]})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.Tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("render home failed: %v", err)
	}
}

// Upload ingests a report for one weekday and replaces that day's state.
func (h *DayHandler) Upload(w http.ResponseWriter, r *http.Request) {
	dayName := r.PathValue("day")
	if !domain.IsWeekday(dayName) {
		h.renderHome(w, r, http.StatusNotFound, fmt.Sprintf("%q is not a weekday tab", dayName))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderHome(w, r, http.StatusBadRequest, dayName+": upload is not a valid multipart form")
		return
	}
	file, header, err := r.FormFile("report")
	if err != nil {
		h.renderHome(w, r, http.StatusBadRequest, dayName+": choose a report file to upload")
		return
	}
	defer file.Close()

	var routes []*domain.Route
	if strings.EqualFold(filepath.Ext(header.Filename), ".xls") {
		routes, err = ingest.ReadLegacyReport(file)
	} else {
		routes, err = ingest.ReadReport(file)
	}
	if err != nil {
		log.Printf("upload failed: day=%s file=%q err=%v", dayName, header.Filename, err)
		h.renderHome(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("%s: %v", dayName, err))
		return
	}

	day := &domain.Day{Name: dayName, Routes: routes}
	if err := h.Repo.SaveDay(r.Context(), day); err != nil {
		log.Printf("save day failed: day=%s err=%v", dayName, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/days/"+url.PathEscape(dayName), http.StatusSeeOther)
}

// View renders one day: route tabs and the selected route's client table.
func (h *DayHandler) View(w http.ResponseWriter, r *http.Request) {
	dayName := r.PathValue("day")

	day, err := h.Repo.GetDay(r.Context(), dayName)
	if errors.Is(err, ports.ErrDayNotFound) {
		h.renderHome(w, r, http.StatusNotFound, fmt.Sprintf("no report uploaded for %s yet", dayName))
		return
	}
	if err != nil {
		log.Printf("get day failed: day=%s err=%v", dayName, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	selected := 0
	if v := r.URL.Query().Get("route"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			selected = n
		}
	}
	if selected < 0 || selected >= len(day.Routes) {
		selected = 0
	}

	data := dayData{Day: day, Selected: selected}
	for i, rt := range day.Routes {
		data.Tabs = append(data.Tabs, routeTab{Name: rt.Name, Index: i, Selected: i == selected})
	}
	if len(day.Routes) > 0 {
		data.Route = day.Routes[selected]
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Tmpl.ExecuteTemplate(w, "day.html", data); err != nil {
		log.Printf("render day failed: day=%s err=%v", dayName, err)
	}
}

// SaveDelivered applies the checkbox state posted for one route.
// Checkboxes absent from the form mean the operator unchecked them.
func (h *DayHandler) SaveDelivered(w http.ResponseWriter, r *http.Request) {
	dayName := r.PathValue("day")

	if err := r.ParseForm(); err != nil {
		h.renderHome(w, r, http.StatusBadRequest, dayName+": form could not be read")
		return
	}
	routeName := r.PostFormValue("route")

	day, err := h.Repo.GetDay(r.Context(), dayName)
	if errors.Is(err, ports.ErrDayNotFound) {
		h.renderHome(w, r, http.StatusNotFound, fmt.Sprintf("no report uploaded for %s yet", dayName))
		return
	}
	if err != nil {
		log.Printf("get day failed: day=%s err=%v", dayName, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	rt := day.Route(routeName)
	if rt == nil {
		h.renderHome(w, r, http.StatusNotFound, fmt.Sprintf("%s has no route %q", dayName, routeName))
		return
	}

	delivered := make(map[string]bool, len(rt.Rows))
	for _, row := range rt.Rows {
		delivered[row.ClientID] = false
	}
	for _, id := range r.PostForm["delivered"] {
		if _, ok := delivered[id]; ok {
			delivered[id] = true
		}
	}

	if err := h.Repo.UpdateDelivered(r.Context(), dayName, routeName, delivered); err != nil {
		log.Printf("update delivered failed: day=%s route=%q err=%v", dayName, routeName, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	tab := r.PostFormValue("tab")
	if _, err := strconv.Atoi(tab); err != nil {
		tab = "0"
	}
	http.Redirect(w, r, "/days/"+url.PathEscape(dayName)+"?route="+tab, http.StatusSeeOther)
}

// Export streams the day's delivery log workbook.
func (h *DayHandler) Export(w http.ResponseWriter, r *http.Request) {
	dayName := r.PathValue("day")

	day, err := h.Repo.GetDay(r.Context(), dayName)
	if errors.Is(err, ports.ErrDayNotFound) {
		h.renderHome(w, r, http.StatusNotFound, fmt.Sprintf("no report uploaded for %s yet", dayName))
		return
	}
	if err != nil {
		log.Printf("get day failed: day=%s err=%v", dayName, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Build the workbook before touching the response so a failure can
	// still produce an error status.
	var out bytes.Buffer
	if err := export.WriteWorkbook(day, &out); err != nil {
		log.Printf("export failed: day=%s err=%v", dayName, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	filename := day.Name + "_Delivery_Log.xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(out.Bytes()); err != nil {
		log.Printf("export write failed: day=%s err=%v", dayName, err)
	}
}
