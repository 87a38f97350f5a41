package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
)

type RunSource string

const (
	SourceCLI RunSource = "cli"
	SourceAPI RunSource = "api"
)

// Run is one completed planning pass: the ranked, staffed items and whoever
// was left in the pool.
type Run struct {
	ID        uuid.UUID `json:"run_id"`
	Source    RunSource `json:"source"`
	PlanDate  time.Time `json:"plan_date"`
	PoolSize  int       `json:"pool_size"`
	CreatedAt time.Time `json:"created_at"`

	Items      []roadmap.Item        `json:"items"`
	Unassigned []roadmap.Contributor `json:"unassigned"`
}

// AssignedCount is the number of contributors staffed across all items.
func (r *Run) AssignedCount() int {
	n := 0
	for _, item := range r.Items {
		n += len(item.Contributors)
	}
	return n
}

// UnstaffedCount is the number of items that received nobody.
func (r *Run) UnstaffedCount() int {
	n := 0
	for _, item := range r.Items {
		if len(item.Contributors) == 0 {
			n++
		}
	}
	return n
}

// AvgUrgency is the mean urgency of the run's items, 0 for an empty run.
func (r *Run) AvgUrgency() float64 {
	if len(r.Items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range r.Items {
		sum += item.Urgency
	}
	return sum / float64(len(r.Items))
}

type RunFilter struct {
	Source RunSource
	Limit  int
}

type RunStats struct {
	TotalRuns      int     `json:"total_runs"`
	TotalItems     int     `json:"total_items"`
	TotalAssigned  int     `json:"total_assigned"`
	UnstaffedItems int     `json:"unstaffed_items"`
	AvgUrgency     float64 `json:"avg_urgency"`
}

// Store persists planning runs. GetRun returns nil, nil when the run does not exist.
type Store interface {
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
	GetStats(ctx context.Context) (*RunStats, error)
	Close() error
}

// prepare fills the identity fields a store owns when the caller left them empty.
func prepare(run *Run, now time.Time) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now.UTC()
	}
	if run.Items == nil {
		run.Items = []roadmap.Item{}
	}
	if run.Unassigned == nil {
		run.Unassigned = []roadmap.Contributor{}
	}
}

func matches(run *Run, filter RunFilter) bool {
	return filter.Source == "" || run.Source == filter.Source
}

// statsOf aggregates runs the same way the Postgres query does.
func statsOf(runs []*Run) *RunStats {
	stats := &RunStats{TotalRuns: len(runs)}
	var urgencySum float64
	for _, run := range runs {
		stats.TotalItems += len(run.Items)
		stats.TotalAssigned += run.AssignedCount()
		stats.UnstaffedItems += run.UnstaffedCount()
		urgencySum += run.AvgUrgency() * float64(len(run.Items))
	}
	if stats.TotalItems > 0 {
		stats.AvgUrgency = urgencySum / float64(stats.TotalItems)
	}
	return stats
}
