package api

import "net/http"

// GenerateHandler serves AI-assisted template generation.
type GenerateHandler struct {
	deps Dependencies
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(deps Dependencies) *GenerateHandler {
	return &GenerateHandler{deps: deps}
}

type generateRequest struct {
	DocumentText string `json:"document_text"`
}

// HandleGenerate sends extracted document text to the generation
// collaborator and returns the validated candidate criteria. Remote
// refusals and invalid criteria come back as success=false bodies, not
// HTTP errors.
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if req.DocumentText == "" {
		writeError(w, http.StatusBadRequest, "validation", NewKind("document_text is required", ErrBadRequest))
		return
	}
	res, err := h.deps.GenerateTemplate(r.Context(), req.DocumentText)
	if err != nil {
		writeDomainError(w, "generate template", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
