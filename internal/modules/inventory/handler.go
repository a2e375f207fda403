package inventory

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Post("/", h.createRecord)              // POST   /api/v1/inventory
		r.Get("/", h.list)                       // GET    /api/v1/inventory?category=Breads
		r.Get("/low-stock", h.listLowStock)      // GET    /api/v1/inventory/low-stock
		r.Get("/stats", h.stats)                 // GET    /api/v1/inventory/stats
		r.Get("/product/{product_id}", h.getStock) // GET  /api/v1/inventory/product/{product_id}
		r.Put("/{id}/restock", h.restock)        // PUT    /api/v1/inventory/{id}/restock
		r.Post("/product/{product_id}/adjust", h.adjust) // POST /api/v1/inventory/product/{product_id}/adjust
		r.Delete("/{id}", h.deleteRecord)        // DELETE /api/v1/inventory/{id}
	})
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}
	rec, err := h.service.CreateRecord(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, rec)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, records)
}

func (h *Handler) listLowStock(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListLowStock(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, records)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetStock(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewStock int `json:"newStock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}
	rec, err := h.service.Restock(r.Context(), chi.URLParam(r, "id"), req.NewStock)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "inventory": rec})
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}
	if err := h.service.Adjust(r.Context(), chi.URLParam(r, "product_id"), req.Delta); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "inventory record deleted"})
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
