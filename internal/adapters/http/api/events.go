package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// EventsHandler serves scored-instance CRUD endpoints.
type EventsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies, maxLimit int) *EventsHandler {
	return &EventsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleCreate submits one judge's score sheet. The total is recomputed
// server side against the referenced template.
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var e model.Event
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if e.EventType == "" {
		writeError(w, http.StatusBadRequest, "validation", NewKind("event is required", ErrBadRequest))
		return
	}
	if e.Sheet.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "validation", NewKind("score_sheet.template_id is required", ErrBadRequest))
		return
	}
	created, err := h.deps.CreateEvent(r.Context(), e)
	if err != nil {
		writeDomainError(w, "create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleGet returns one scored instance by id.
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.deps.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "get event", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// eventUpdateRequest is the edit-path body: a flat scores map in the
// wire convention plus replaceable roster fields.
type eventUpdateRequest struct {
	Scores   map[string]any `json:"scores"`
	CadetIDs []string       `json:"cadet_ids"`
	TeamName string         `json:"team_name"`
}

// HandleUpdate overwrites scores and roster fields on an existing
// scored instance and recomputes its total.
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req eventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	patch := model.EventPatch{
		CadetIDs: req.CadetIDs,
		TeamName: req.TeamName,
	}
	if req.Scores != nil {
		patch.Scores = model.DecodeScores(req.Scores)
	}
	updated, err := h.deps.UpdateEvent(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, "update event", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleList returns scored instances matching the query filters.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f := model.Filter{
		Competition: r.URL.Query().Get("competition"),
		School:      r.URL.Query().Get("school"),
		EventType:   r.URL.Query().Get("event"),
	}
	list, err := h.deps.ListEvents(r.Context(), f)
	if err != nil {
		writeDomainError(w, "list events", err)
		return
	}
	if h.maxLimit > 0 && len(list) > h.maxLimit {
		list = list[:h.maxLimit]
	}
	if list == nil {
		list = []model.Event{}
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleDelete removes a scored instance by id.
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "delete event", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
