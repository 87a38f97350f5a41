package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
)

// PlanRequestEvent asks a running server to plan a roadmap. Items carry
// their raw estimates; urgency is computed on receipt.
type PlanRequestEvent struct {
	Contributors []roadmap.Contributor `json:"contributors"`
	Items        []PlanRequestItem     `json:"items"`
	Source       string                `json:"source,omitempty"`
}

type PlanRequestItem struct {
	Name                string `json:"name"`
	EstimatedComplexity int    `json:"estimated_complexity"`
	EstimatedValue      int    `json:"estimated_value"`
	StartDate           string `json:"start_date"`
	TargetDate          string `json:"target_date"`
}

type RunCompletedEvent struct {
	RunID         string    `json:"run_id"`
	Source        string    `json:"source"`
	Items         int       `json:"items"`
	Assigned      int       `json:"assigned"`
	Unstaffed     int       `json:"unstaffed"`
	PoolRemaining int       `json:"pool_remaining"`
	Timestamp     time.Time `json:"timestamp"`
}

type ItemAssignedEvent struct {
	RunID        string   `json:"run_id"`
	Item         string   `json:"item"`
	Urgency      float64  `json:"urgency"`
	Tier         string   `json:"tier"`
	Contributors []string `json:"contributors"`
}

// PoolExhaustedEvent is published once per run when the pool empties before
// every item has been staffed.
type PoolExhaustedEvent struct {
	RunID          string `json:"run_id"`
	ExhaustedAt    string `json:"exhausted_at_item"`
	ItemsRemaining int    `json:"items_remaining"`
}
