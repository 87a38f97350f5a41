package api

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/scoring"
	"github.com/MikeSquared-Agency/Roadmap/internal/store"
)

// ItemRequest carries the raw estimates of one roadmap item.
type ItemRequest struct {
	Name                string `json:"name"`
	EstimatedComplexity int    `json:"estimated_complexity"`
	EstimatedValue      int    `json:"estimated_value"`
	StartDate           string `json:"start_date"`
	TargetDate          string `json:"target_date"`
}

type ItemResponse struct {
	Name                string   `json:"name"`
	EstimatedComplexity int      `json:"estimated_complexity"`
	EstimatedValue      int      `json:"estimated_value"`
	StartDate           string   `json:"start_date"`
	TargetDate          string   `json:"target_date"`
	Urgency             float64  `json:"urgency"`
	Tier                string   `json:"tier"`
	Contributors        []string `json:"contributors"`
}

type RunResponse struct {
	RunID      uuid.UUID             `json:"run_id"`
	Source     store.RunSource       `json:"source"`
	PlanDate   string                `json:"plan_date"`
	PoolSize   int                   `json:"pool_size"`
	CreatedAt  time.Time             `json:"created_at"`
	Items      []ItemResponse        `json:"items"`
	Unassigned []roadmap.Contributor `json:"unassigned"`
}

type RunSummary struct {
	RunID     uuid.UUID       `json:"run_id"`
	Source    store.RunSource `json:"source"`
	PlanDate  string          `json:"plan_date"`
	CreatedAt time.Time       `json:"created_at"`
	Items     int             `json:"items"`
	Assigned  int             `json:"assigned"`
	Unstaffed int             `json:"unstaffed"`
}

// FactorResponse is one urgency term. Score and Weighted are null when the
// term is unbounded because its date span is zero days.
type FactorResponse struct {
	Name      string   `json:"name"`
	Score     *float64 `json:"score"`
	Weight    float64  `json:"weight"`
	Weighted  *float64 `json:"weighted"`
	Saturated bool     `json:"saturated"`
	Reason    string   `json:"reason,omitempty"`
}

type UrgencyResponse struct {
	Name      string           `json:"name"`
	Urgency   float64          `json:"urgency"`
	Tier      string           `json:"tier"`
	Total     *float64         `json:"total"`
	Saturated bool             `json:"saturated"`
	Factors   []FactorResponse `json:"factors"`
}

func toItemResponse(item roadmap.Item) ItemResponse {
	return ItemResponse{
		Name:                item.Name,
		EstimatedComplexity: item.EstimatedComplexity,
		EstimatedValue:      item.EstimatedValue,
		StartDate:           item.StartDate.Format(roadmap.DateLayout),
		TargetDate:          item.TargetDate.Format(roadmap.DateLayout),
		Urgency:             item.Urgency,
		Tier:                string(item.Tier()),
		Contributors:        roadmap.Names(item.Contributors),
	}
}

func toRunResponse(run *store.Run) RunResponse {
	items := make([]ItemResponse, len(run.Items))
	for i, item := range run.Items {
		items[i] = toItemResponse(item)
	}
	unassigned := run.Unassigned
	if unassigned == nil {
		unassigned = []roadmap.Contributor{}
	}
	return RunResponse{
		RunID:      run.ID,
		Source:     run.Source,
		PlanDate:   run.PlanDate.Format(roadmap.DateLayout),
		PoolSize:   run.PoolSize,
		CreatedAt:  run.CreatedAt,
		Items:      items,
		Unassigned: unassigned,
	}
}

func toRunSummary(run *store.Run) RunSummary {
	return RunSummary{
		RunID:     run.ID,
		Source:    run.Source,
		PlanDate:  run.PlanDate.Format(roadmap.DateLayout),
		CreatedAt: run.CreatedAt,
		Items:     len(run.Items),
		Assigned:  run.AssignedCount(),
		Unstaffed: run.UnstaffedCount(),
	}
}

func toUrgencyResponse(name string, result scoring.Result) UrgencyResponse {
	factors := make([]FactorResponse, len(result.Factors))
	for i, f := range result.Factors {
		factors[i] = FactorResponse{
			Name:      f.Name,
			Score:     finite(f.Score),
			Weight:    f.Weight,
			Weighted:  finite(f.Weighted),
			Saturated: f.Saturated(),
			Reason:    f.Reason,
		}
	}
	return UrgencyResponse{
		Name:      name,
		Urgency:   result.Urgency,
		Tier:      string(result.Tier),
		Total:     finite(result.Total),
		Saturated: result.Saturated(),
		Factors:   factors,
	}
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
