package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio-dev/portfolio-server/internal/model"
	"github.com/portfolio-dev/portfolio-server/internal/service"
)

type ProfileHandler struct {
	content   *service.ContentService
	writeGate func(http.Handler) http.Handler
}

func NewProfileHandler(content *service.ContentService, writeGate func(http.Handler) http.Handler) *ProfileHandler {
	return &ProfileHandler{content: content, writeGate: writeGate}
}

func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.With(h.writeGate).Post("/", h.Upsert)
	r.With(h.writeGate).Put("/", h.Upsert)
	return r
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.content.GetProfile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in model.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.content.UpsertProfile(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
