package scoring

import (
	"fmt"
	"math"
	"time"
)

// FactorResult captures one factor's contribution to the urgency total.
type FactorResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Reason   string  `json:"reason"`
}

// Saturated reports whether the factor alone pushes the total past any bound.
// This happens for date factors over a zero-day span.
func (f FactorResult) Saturated() bool {
	return math.IsInf(f.Weighted, 0)
}

// --- Individual factor calculators ---

// TargetDateFactor favours items whose target date is close to today.
func TargetDateFactor(target, today time.Time) FactorResult {
	days := DaysBetween(today, target)
	return FactorResult{
		Name:     "target_date",
		Score:    spanTerm(1, days),
		Weight:   TargetDateWeight,
		Weighted: spanTerm(TargetDateWeight, days),
		Reason:   fmt.Sprintf("%d days until target", days),
	}
}

// DurationFactor favours items with a short span between start and target.
func DurationFactor(start, target time.Time) FactorResult {
	days := DaysBetween(start, target)
	return FactorResult{
		Name:     "duration",
		Score:    spanTerm(1, days),
		Weight:   DurationWeight,
		Weighted: spanTerm(DurationWeight, days),
		Reason:   fmt.Sprintf("%d days from start to target", days),
	}
}

// ComplexityFactor favours complex items: complexity / 5.
func ComplexityFactor(complexity int) FactorResult {
	score := normalizeEstimate(complexity)
	return FactorResult{
		Name:     "complexity",
		Score:    score,
		Weight:   ComplexityWeight,
		Weighted: score * ComplexityWeight,
		Reason:   fmt.Sprintf("estimated complexity %d", complexity),
	}
}

// ValueFactor favours items that add more value: value / 5.
func ValueFactor(value int) FactorResult {
	score := normalizeEstimate(value)
	return FactorResult{
		Name:     "value",
		Score:    score,
		Weight:   ValueWeight,
		Weighted: score * ValueWeight,
		Reason:   fmt.Sprintf("estimated value %d", value),
	}
}

// spanTerm divides weight by a day count. A zero-day span yields +Inf, which
// saturates the clamped urgency at 1.0.
func spanTerm(weight float64, days int) float64 {
	if days == 0 {
		return math.Inf(1)
	}
	return weight / float64(days)
}

func normalizeEstimate(estimate int) float64 {
	return float64(estimate-MinEstimate) / float64(MaxEstimate-MinEstimate)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
