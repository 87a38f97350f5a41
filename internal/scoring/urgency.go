package scoring

import (
	"math"
	"time"
)

// Result captures the complete urgency computation for one roadmap item.
type Result struct {
	Urgency float64        `json:"urgency"`
	Total   float64        `json:"total"`
	Tier    Tier           `json:"tier"`
	Factors []FactorResult `json:"factors"`
}

// Saturated reports whether a zero-day span forced the urgency to its bound.
func (r Result) Saturated() bool {
	for _, f := range r.Factors {
		if f.Saturated() {
			return true
		}
	}
	return false
}

// Explain computes the urgency of an item together with its per-factor breakdown.
//
//	total   = 0.2/days(target-today) + 0.1/days(target-start) + complexity/5*0.3 + value/5*0.4
//	urgency = round(clamp(total, 0, 1), 2)
//
// All dates are compared as calendar days.
func Explain(complexity, value int, start, target, today time.Time) Result {
	factors := []FactorResult{
		TargetDateFactor(target, today),
		DurationFactor(start, target),
		ComplexityFactor(complexity),
		ValueFactor(value),
	}

	var total float64
	for _, f := range factors {
		total += f.Weighted
	}

	urgency := normalize(total)
	return Result{
		Urgency: urgency,
		Total:   total,
		Tier:    TierFor(urgency),
		Factors: factors,
	}
}

// Urgency returns the normalized urgency in [0, 1] for the given estimates and dates.
func Urgency(complexity, value int, start, target, today time.Time) float64 {
	return Explain(complexity, value, start, target, today).Urgency
}

// normalize clamps a raw total to [0, 1] and rounds it to two decimals.
func normalize(total float64) float64 {
	return math.Round(clamp(total, 0, 1)*100) / 100
}
