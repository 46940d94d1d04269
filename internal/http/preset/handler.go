package preset

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/preset"
)

type Handler struct {
	svc *preset.Service
}

func NewHandler(svc *preset.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createRequest struct {
	Name string `json:"name"`
	preset.Settings
}

type presetResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	preset.Settings
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), preset.CreateParams{Name: req.Name, Settings: req.Settings})
	if err != nil {
		render.Err(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	presets, err := h.svc.List(r.Context())
	if err != nil {
		render.Err(w, err)
		return
	}

	resp := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		resp = append(resp, toResponse(p))
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id", "")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Err(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id", "")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Err(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toResponse(p *preset.Preset) presetResponse {
	return presetResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		Settings:  p.Settings,
	}
}
