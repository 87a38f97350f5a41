package scoring

// Tier buckets an urgency into the staffing level a roadmap item receives.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Urgency thresholds between tiers. Each threshold is inclusive for the higher tier.
const (
	MediumThreshold = 0.3
	HighThreshold   = 0.6
)

// TierFor maps an urgency in [0, 1] to its tier.
func TierFor(urgency float64) Tier {
	switch {
	case urgency >= HighThreshold:
		return TierHigh
	case urgency >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}
