package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/intake"
	"github.com/MikeSquared-Agency/Roadmap/internal/planner"
	"github.com/MikeSquared-Agency/Roadmap/internal/report"
	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/store"
)

// Planner runs planning passes for the API.
type Planner interface {
	Plan(ctx context.Context, req planner.Request) (*store.Run, error)
	Today() time.Time
}

type PlanHandler struct {
	planner Planner
}

func NewPlanHandler(p Planner) *PlanHandler {
	return &PlanHandler{planner: p}
}

type PlanRequest struct {
	Contributors []roadmap.Contributor `json:"contributors"`
	Items        []ItemRequest         `json:"items"`
}

// Plan scores, ranks and staffs the submitted roadmap.
// POST /api/v1/plan[?format=csv|table]
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var format report.Format
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := report.ParseFormat(f)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		format = parsed
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	for _, c := range req.Contributors {
		if err := intake.ValidateContributor(c); err != nil {
			writeError(w, err)
			return
		}
	}
	today := h.planner.Today()
	items := make([]roadmap.Item, 0, len(req.Items))
	for _, raw := range req.Items {
		item, err := planner.ItemFromFields(raw.Name, raw.EstimatedComplexity, raw.EstimatedValue, raw.StartDate, raw.TargetDate, today)
		if err != nil {
			writeError(w, err)
			return
		}
		items = append(items, item)
	}

	run, err := h.planner.Plan(r.Context(), planner.Request{
		Contributors: req.Contributors,
		Items:        items,
		Source:       store.SourceAPI,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case report.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusCreated)
		_ = report.WriteCSV(w, run.Items)
	case report.FormatTable:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		_ = report.WriteTable(w, run.Items)
	default:
		writeJSON(w, http.StatusCreated, toRunResponse(run))
	}
}
