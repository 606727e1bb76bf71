package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// TemplatesHandler serves template CRUD endpoints.
type TemplatesHandler struct {
	deps Dependencies
}

// NewTemplatesHandler creates a new templates handler.
func NewTemplatesHandler(deps Dependencies) *TemplatesHandler {
	return &TemplatesHandler{deps: deps}
}

// HandleSave creates or replaces a template. A body with an id replaces
// that template; without one, a fresh id is minted.
func (h *TemplatesHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var t model.Template
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if t.Name == "" {
		writeError(w, http.StatusBadRequest, "validation", NewKind("template name is required", ErrBadRequest))
		return
	}
	saved, err := h.deps.SaveTemplate(r.Context(), t)
	if err != nil {
		writeDomainError(w, "save template", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleGet returns one template by id.
func (h *TemplatesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.deps.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "get template", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleList returns all templates.
func (h *TemplatesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.ListTemplates(r.Context())
	if err != nil {
		writeDomainError(w, "list templates", err)
		return
	}
	if list == nil {
		list = []model.Template{}
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleDelete removes a template by id.
func (h *TemplatesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "delete template", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
