package scoring

import (
	"fmt"
	"math"
)

// Factor weights of the urgency formula. They are fixed and sum to 1.0.
const (
	TargetDateWeight = 0.2
	DurationWeight   = 0.1
	ComplexityWeight = 0.3
	ValueWeight      = 0.4
)

// Bounds used to normalize the complexity and value estimates.
const (
	MinEstimate = 0
	MaxEstimate = 5
)

// WeightSet defines the relative importance of each urgency factor.
type WeightSet struct {
	TargetDate float64 `json:"target_date"`
	Duration   float64 `json:"duration"`
	Complexity float64 `json:"complexity"`
	Value      float64 `json:"value"`
}

// Weights returns the weight distribution used by Urgency.
func Weights() WeightSet {
	return WeightSet{
		TargetDate: TargetDateWeight,
		Duration:   DurationWeight,
		Complexity: ComplexityWeight,
		Value:      ValueWeight,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.TargetDate + w.Duration + w.Complexity + w.Value
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("urgency weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.TargetDate, w.Duration, w.Complexity, w.Value} {
		if v < 0 {
			return fmt.Errorf("negative urgency weight: %f", v)
		}
	}
	return nil
}
