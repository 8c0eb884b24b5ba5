package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio-dev/portfolio-server/internal/model"
	"github.com/portfolio-dev/portfolio-server/internal/service"
)

type SkillHandler struct {
	content   *service.ContentService
	writeGate func(http.Handler) http.Handler
}

func NewSkillHandler(content *service.ContentService, writeGate func(http.Handler) http.Handler) *SkillHandler {
	return &SkillHandler{content: content, writeGate: writeGate}
}

func (h *SkillHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(h.writeGate)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.content.ListSkills(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) Get(w http.ResponseWriter, r *http.Request) {
	skill, err := h.content.GetSkill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.SkillInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	skill, err := h.content.CreateSkill(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.SkillInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	skill, err := h.content.UpdateSkill(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.content.DeleteSkill(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w)
}
