package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler exposes reporting HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/dashboard-stats", h.dashboardStats) // GET  /api/v1/analytics/dashboard-stats
		r.Post("/export-daily", h.exportDaily)      // POST /api/v1/analytics/export-daily
	})
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	date := r.URL.Query().Get("date")

	stats, err := h.service.DashboardStats(r.Context(), period, date)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, stats)
}

func (h *Handler) exportDaily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}

	f, filename, err := h.service.ExportDaily(r.Context(), req.Date)
	if err != nil {
		respondError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := f.WriteTo(w); err != nil {
		// Headers are already out; nothing more to do than log via middleware.
		return
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), map[string]string{
		"error": err.Error(),
		"kind":  string(apperr.KindOf(err)),
	})
}
