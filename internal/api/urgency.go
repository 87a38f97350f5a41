package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/Roadmap/internal/planner"
)

type UrgencyHandler struct {
	planner Planner
}

func NewUrgencyHandler(p Planner) *UrgencyHandler {
	return &UrgencyHandler{planner: p}
}

// Explain scores a single item without staffing it and returns the per-factor breakdown.
// POST /api/v1/urgency
func (h *UrgencyHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	today := h.planner.Today()
	item, err := planner.ItemFromFields(req.Name, req.EstimatedComplexity, req.EstimatedValue, req.StartDate, req.TargetDate, today)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUrgencyResponse(item.Name, item.Explain(today)))
}
