package api

import (
	"net/http"

	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// MatrixHandler serves the judge comparison view.
type MatrixHandler struct {
	deps Dependencies
}

// NewMatrixHandler creates a new matrix handler.
func NewMatrixHandler(deps Dependencies) *MatrixHandler {
	return &MatrixHandler{deps: deps}
}

// HandleGet builds the field-by-judge matrix for events matching the
// query filters.
func (h *MatrixHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	f := model.Filter{
		Competition: r.URL.Query().Get("competition"),
		School:      r.URL.Query().Get("school"),
		EventType:   r.URL.Query().Get("event"),
	}
	m, err := h.deps.Matrix(r.Context(), f)
	if err != nil {
		writeDomainError(w, "build matrix", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
