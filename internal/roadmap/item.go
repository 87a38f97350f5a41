package roadmap

import (
	"sort"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/scoring"
)

// Estimate bounds for complexity and value.
const (
	MinEstimate = 1
	MaxEstimate = 5
)

// DateLayout is the calendar date format used for input and output.
const DateLayout = "2006-01-02"

// Item is a unit of roadmap work. Urgency is derived from the other scoring
// inputs when the item is built and is never set on its own.
type Item struct {
	Name                string        `json:"name"`
	EstimatedComplexity int           `json:"estimated_complexity"`
	EstimatedValue      int           `json:"estimated_value"`
	StartDate           time.Time     `json:"start_date"`
	TargetDate          time.Time     `json:"target_date"`
	Urgency             float64       `json:"urgency"`
	Contributors        []Contributor `json:"contributors"`
}

// NewItem builds an item and stamps its urgency relative to today.
func NewItem(name string, complexity, value int, start, target, today time.Time) Item {
	item := Item{
		Name:                name,
		EstimatedComplexity: complexity,
		EstimatedValue:      value,
		StartDate:           scoring.CalendarDay(start),
		TargetDate:          scoring.CalendarDay(target),
		Contributors:        []Contributor{},
	}
	return item.Rescore(today)
}

// Rescore returns a copy of the item with urgency recomputed relative to today.
func (i Item) Rescore(today time.Time) Item {
	i.Urgency = scoring.Urgency(i.EstimatedComplexity, i.EstimatedValue, i.StartDate, i.TargetDate, today)
	return i
}

// Explain returns the urgency breakdown for the item relative to today.
func (i Item) Explain(today time.Time) scoring.Result {
	return scoring.Explain(i.EstimatedComplexity, i.EstimatedValue, i.StartDate, i.TargetDate, today)
}

// Tier returns the staffing tier of the item's urgency.
func (i Item) Tier() scoring.Tier {
	return scoring.TierFor(i.Urgency)
}

// WithContributors returns a copy of the item staffed with the given contributors.
// The receiver is left untouched.
func (i Item) WithContributors(contributors []Contributor) Item {
	staffed := make([]Contributor, len(contributors))
	copy(staffed, contributors)
	i.Contributors = staffed
	return i
}

// SortByUrgency orders items from most to least urgent. Items of equal urgency
// keep their relative order.
func SortByUrgency(items []Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Urgency > items[b].Urgency
	})
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today returns the current local calendar date.
func Today() time.Time {
	return scoring.CalendarDay(time.Now())
}
