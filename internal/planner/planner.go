// Package planner runs a complete planning pass: score, rank, staff, record
// and announce.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Roadmap/internal/allocator"
	"github.com/MikeSquared-Agency/Roadmap/internal/hermes"
	"github.com/MikeSquared-Agency/Roadmap/internal/metrics"
	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/scoring"
	"github.com/MikeSquared-Agency/Roadmap/internal/store"
	"github.com/MikeSquared-Agency/Roadmap/internal/tracing"
)

// Request is the input of one planning pass.
type Request struct {
	Contributors []roadmap.Contributor
	Items        []roadmap.Item
	Source       store.RunSource
}

type Planner struct {
	store   store.Store
	hermes  hermes.Client
	metrics *metrics.Recorder
	tracer  *tracing.Tracer
	alloc   *allocator.Allocator
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Planner)

// WithHermes publishes run events. Without it no events are sent.
func WithHermes(h hermes.Client) Option {
	return func(p *Planner) { p.hermes = h }
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(p *Planner) { p.metrics = m }
}

func WithTracer(t *tracing.Tracer) Option {
	return func(p *Planner) { p.tracer = t }
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

func New(s store.Store, picker allocator.Picker, logger *slog.Logger, opts ...Option) *Planner {
	p := &Planner{
		store:  s,
		alloc:  allocator.New(picker, logger),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Today is the calendar day the planner scores against.
func (p *Planner) Today() time.Time {
	return scoring.CalendarDay(p.now())
}

// Plan scores every item against today, ranks them by urgency, staffs them
// from the contributor pool and records the run.
func (p *Planner) Plan(ctx context.Context, req Request) (*store.Run, error) {
	started := time.Now()
	today := p.Today()

	ctx, span := p.tracer.Start(ctx, "roadmap.plan")
	span.SetString("source", string(req.Source))
	span.SetInt("items", len(req.Items))
	span.SetInt("contributors", len(req.Contributors))

	items := make([]roadmap.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.Rescore(today)
		p.logScore(items[i], today)
		p.metrics.ItemScored(items[i].Urgency)
	}
	roadmap.SortByUrgency(items)

	pool := allocator.NewPool(req.Contributors)
	poolSize := pool.Len()
	staffed := p.alloc.Assign(items, &pool)

	run := &store.Run{
		ID:         uuid.New(),
		Source:     req.Source,
		PlanDate:   today,
		PoolSize:   poolSize,
		Items:      staffed,
		Unassigned: pool.Contributors(),
	}
	exhaustedAt := firstShortStaffed(staffed)

	if err := p.store.CreateRun(ctx, run); err != nil {
		err = fmt.Errorf("record run: %w", err)
		span.End(err)
		return nil, err
	}

	for _, item := range staffed {
		p.metrics.ItemStaffed(string(item.Tier()), len(item.Contributors))
	}
	if exhaustedAt >= 0 {
		p.metrics.PoolExhausted()
		span.Event("pool exhausted", map[string]string{"item": staffed[exhaustedAt].Name})
	}
	p.metrics.RunCompleted(string(req.Source), time.Since(started))
	p.publish(run, exhaustedAt)

	span.SetInt("assigned", run.AssignedCount())
	span.SetInt("pool_remaining", len(run.Unassigned))
	span.End(nil)

	p.logger.Info("roadmap planned",
		"run_id", run.ID,
		"source", run.Source,
		"items", len(run.Items),
		"assigned", run.AssignedCount(),
		"unstaffed", run.UnstaffedCount(),
		"pool_remaining", len(run.Unassigned),
	)
	return run, nil
}

func (p *Planner) logScore(item roadmap.Item, today time.Time) {
	if !p.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	result := item.Explain(today)
	attrs := []any{"item", item.Name, "urgency", result.Urgency, "tier", result.Tier}
	for _, f := range result.Factors {
		if f.Saturated() {
			attrs = append(attrs, f.Name, "saturated")
			continue
		}
		attrs = append(attrs, f.Name, f.Weighted)
	}
	p.logger.Debug("item scored", attrs...)
}

func (p *Planner) publish(run *store.Run, exhaustedAt int) {
	if p.hermes == nil {
		return
	}
	runID := run.ID.String()

	for _, item := range run.Items {
		if err := p.hermes.Publish(hermes.SubjectItemAssigned(runID), hermes.ItemAssignedEvent{
			RunID:        runID,
			Item:         item.Name,
			Urgency:      item.Urgency,
			Tier:         string(item.Tier()),
			Contributors: roadmap.Names(item.Contributors),
		}); err != nil {
			p.logger.Warn("failed to publish item assignment", "run_id", runID, "item", item.Name, "error", err)
		}
	}

	if exhaustedAt >= 0 {
		if err := p.hermes.Publish(hermes.SubjectPoolExhausted(runID), hermes.PoolExhaustedEvent{
			RunID:          runID,
			ExhaustedAt:    run.Items[exhaustedAt].Name,
			ItemsRemaining: len(run.Items) - exhaustedAt,
		}); err != nil {
			p.logger.Warn("failed to publish pool exhaustion", "run_id", runID, "error", err)
		}
	}

	if err := p.hermes.Publish(hermes.SubjectRunCompleted(runID), hermes.RunCompletedEvent{
		RunID:         runID,
		Source:        string(run.Source),
		Items:         len(run.Items),
		Assigned:      run.AssignedCount(),
		Unstaffed:     run.UnstaffedCount(),
		PoolRemaining: len(run.Unassigned),
		Timestamp:     run.CreatedAt,
	}); err != nil {
		p.logger.Warn("failed to publish run completion", "run_id", runID, "error", err)
	}
}

// firstShortStaffed returns the index of the first item that received fewer
// contributors than its tier asks for, or -1 when every item was fully staffed.
func firstShortStaffed(items []roadmap.Item) int {
	for i, item := range items {
		if len(item.Contributors) < len(allocator.SlotsFor(item.Tier())) {
			return i
		}
	}
	return -1
}
