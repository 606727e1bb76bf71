package api

import "net/http"

// StatsHandler serves service statistics.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats returns current service statistics.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	if h.provider == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
