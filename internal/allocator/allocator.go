// Package allocator staffs urgency-ranked roadmap items from a shared, shrinking
// pool of contributors.
//
// Every item draws a fixed sequence of slots determined by its urgency tier:
//
//	high   (>= 0.6)       head, tail, random
//	medium (0.3 .. 0.6)   head, tail
//	low    (< 0.3)        random
//
// The head is the most junior contributor left, the tail the most senior. A slot
// drawn from an empty pool assigns nobody.
package allocator

import (
	"log/slog"

	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/scoring"
)

// Slot is one selection step in a tier's staffing sequence.
type Slot int

const (
	SlotHead Slot = iota
	SlotTail
	SlotRandom
)

func (s Slot) String() string {
	switch s {
	case SlotHead:
		return "head"
	case SlotTail:
		return "tail"
	case SlotRandom:
		return "random"
	default:
		return "unknown"
	}
}

// SlotsFor returns the staffing sequence for a tier.
func SlotsFor(tier scoring.Tier) []Slot {
	switch tier {
	case scoring.TierHigh:
		return []Slot{SlotHead, SlotTail, SlotRandom}
	case scoring.TierMedium:
		return []Slot{SlotHead, SlotTail}
	default:
		return []Slot{SlotRandom}
	}
}

// Allocator assigns contributors to roadmap items.
type Allocator struct {
	picker Picker
	logger *slog.Logger
}

// New creates an Allocator that uses picker for random slots.
func New(picker Picker, logger *slog.Logger) *Allocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Allocator{picker: picker, logger: logger}
}

// Assign staffs items in order, draining the shared pool as it goes. Items must
// already be sorted by descending urgency. The returned items are enriched copies
// in the input order; pool is left holding whoever was not assigned.
func (a *Allocator) Assign(items []roadmap.Item, pool *Pool) []roadmap.Item {
	out := make([]roadmap.Item, 0, len(items))
	remaining := *pool
	for _, item := range items {
		var staffed roadmap.Item
		staffed, remaining = a.Step(item, remaining)
		out = append(out, staffed)
	}
	*pool = remaining
	return out
}

// Step staffs a single item and returns it together with the pool that remains.
func (a *Allocator) Step(item roadmap.Item, pool Pool) (roadmap.Item, Pool) {
	tier := item.Tier()
	var assigned []roadmap.Contributor
	for _, slot := range SlotsFor(tier) {
		var (
			c  roadmap.Contributor
			ok bool
		)
		switch slot {
		case SlotHead:
			c, pool, ok = pool.takeHead()
		case SlotTail:
			c, pool, ok = pool.takeTail()
		case SlotRandom:
			if !pool.Empty() {
				c, pool, ok = pool.takeAt(a.picker.Pick(pool.Len()))
			}
		}
		if ok {
			assigned = append(assigned, c)
		}
	}

	a.logger.Debug("item staffed",
		"item", item.Name,
		"urgency", item.Urgency,
		"tier", tier,
		"assigned", roadmap.Names(assigned),
		"pool_remaining", pool.Len(),
	)
	return item.WithContributors(assigned), pool
}
