package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio-dev/portfolio-server/internal/model"
	"github.com/portfolio-dev/portfolio-server/internal/service"
)

type ContactHandler struct {
	contacts       *service.ContactService
	requireSession func(http.Handler) http.Handler
}

func NewContactHandler(contacts *service.ContactService, requireSession func(http.Handler) http.Handler) *ContactHandler {
	return &ContactHandler{contacts: contacts, requireSession: requireSession}
}

func (h *ContactHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Get("/messages", h.List)
		r.Delete("/messages/{id}", h.Delete)
	})
	return r
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.contacts.Submit(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent",
	})
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	page, err := h.contacts.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w)
}
