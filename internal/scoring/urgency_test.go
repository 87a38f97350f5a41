package scoring

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeightsSumToOne(t *testing.T) {
	w := Weights()
	if err := w.Validate(); err != nil {
		t.Fatalf("urgency weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Fatalf("expected sum 1.0, got %f", w.Sum())
	}
}

func TestWeightsValidateNegative(t *testing.T) {
	w := WeightSet{TargetDate: -0.1, Duration: 0.3, Complexity: 0.4, Value: 0.4}
	if err := w.Validate(); err == nil {
		t.Fatal("expected validation error for negative weight")
	}
}

func TestWeightsValidateBadSum(t *testing.T) {
	w := WeightSet{TargetDate: 0.5, Duration: 0.5, Complexity: 0.5, Value: 0.5}
	if err := w.Validate(); err == nil {
		t.Fatal("expected validation error for bad sum")
	}
}

func TestUrgencyMaximal(t *testing.T) {
	// 0.2/1 + 0.1/1 + 5/5*0.3 + 5/5*0.4 = 1.0
	got := Urgency(5, 5, date(2022, 10, 15), date(2022, 10, 16), date(2022, 10, 15))
	if got != 1.0 {
		t.Errorf("expected urgency 1.0, got %f", got)
	}
}

func TestUrgencyValues(t *testing.T) {
	today := date(2024, 3, 1)
	tests := []struct {
		name       string
		complexity int
		value      int
		start      time.Time
		target     time.Time
		want       float64
	}{
		// 0.02 + 0.01 + 0.06 + 0.08
		{"low estimates, ten days out", 1, 1, today, date(2024, 3, 11), 0.17},
		// 0.05 + 0.01 + 0.12 + 0.32
		{"started earlier", 2, 4, date(2024, 2, 24), date(2024, 3, 5), 0.5},
		// 0.002 + 0.001 + 0.3 + 0.4 = 0.703
		{"far target", 5, 5, today, date(2024, 6, 9), 0.7},
		// 0.04 + 0.01 + 0.18 + 0.08
		{"mid estimates", 3, 1, date(2024, 2, 25), date(2024, 3, 6), 0.31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Urgency(tt.complexity, tt.value, tt.start, tt.target, today)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestUrgencyZeroDaySpanSaturates(t *testing.T) {
	today := date(2024, 3, 1)

	t.Run("target is today", func(t *testing.T) {
		r := Explain(1, 1, date(2024, 2, 1), today, today)
		if r.Urgency != 1.0 {
			t.Errorf("expected saturated urgency 1.0, got %f", r.Urgency)
		}
		if !r.Saturated() {
			t.Error("expected result to report saturation")
		}
		if !math.IsInf(r.Total, 1) {
			t.Errorf("expected +Inf total, got %f", r.Total)
		}
	})

	t.Run("target equals start", func(t *testing.T) {
		target := date(2024, 3, 20)
		r := Explain(1, 1, target, target, today)
		if r.Urgency != 1.0 {
			t.Errorf("expected saturated urgency 1.0, got %f", r.Urgency)
		}
		if math.IsNaN(r.Total) {
			t.Error("total must never be NaN")
		}
	})
}

func TestUrgencyBoundedAndMonotonic(t *testing.T) {
	start := date(2024, 1, 1)
	target := date(2024, 4, 1)
	today := date(2024, 2, 1)

	for c := 1; c <= 5; c++ {
		prev := -1.0
		for v := 1; v <= 5; v++ {
			u := Urgency(c, v, start, target, today)
			if u < 0 || u > 1 {
				t.Fatalf("urgency(%d, %d) = %f outside [0, 1]", c, v, u)
			}
			if u < prev {
				t.Errorf("urgency decreased in value at c=%d v=%d: %f < %f", c, v, u, prev)
			}
			prev = u
		}
	}

	for v := 1; v <= 5; v++ {
		prev := -1.0
		for c := 1; c <= 5; c++ {
			u := Urgency(c, v, start, target, today)
			if u < prev {
				t.Errorf("urgency decreased in complexity at c=%d v=%d: %f < %f", c, v, u, prev)
			}
			prev = u
		}
	}
}

func TestUrgencyDeterministic(t *testing.T) {
	start := date(2024, 5, 1)
	target := date(2024, 5, 9)
	today := date(2024, 5, 2)
	a := Urgency(3, 4, start, target, today)
	b := Urgency(3, 4, start, target, today)
	if a != b {
		t.Errorf("expected equal results, got %f and %f", a, b)
	}
}

func TestUrgencyIgnoresClockTime(t *testing.T) {
	today := time.Date(2024, 5, 2, 23, 59, 0, 0, time.UTC)
	target := time.Date(2024, 5, 4, 0, 1, 0, 0, time.UTC)
	got := Urgency(2, 2, date(2024, 5, 1), target, today)
	want := Urgency(2, 2, date(2024, 5, 1), date(2024, 5, 4), date(2024, 5, 2))
	if got != want {
		t.Errorf("expected calendar-day comparison, got %f want %f", got, want)
	}
}

func TestExplainFactors(t *testing.T) {
	r := Explain(5, 5, date(2022, 10, 15), date(2022, 10, 16), date(2022, 10, 15))

	expected := map[string]float64{
		"target_date": 0.2,
		"duration":    0.1,
		"complexity":  0.3,
		"value":       0.4,
	}
	if len(r.Factors) != len(expected) {
		t.Fatalf("expected %d factors, got %d", len(expected), len(r.Factors))
	}
	for _, f := range r.Factors {
		want, ok := expected[f.Name]
		if !ok {
			t.Errorf("unexpected factor %q", f.Name)
			continue
		}
		if math.Abs(f.Weighted-want) > 1e-9 {
			t.Errorf("factor %s: expected weighted %f, got %f", f.Name, want, f.Weighted)
		}
	}
	if r.Tier != TierHigh {
		t.Errorf("expected tier high, got %s", r.Tier)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		urgency float64
		want    Tier
	}{
		{1.0, TierHigh},
		{0.6, TierHigh},
		{0.59, TierMedium},
		{0.3, TierMedium},
		{0.29, TierLow},
		{0, TierLow},
	}
	for _, tt := range tests {
		if got := TierFor(tt.urgency); got != tt.want {
			t.Errorf("TierFor(%.2f) = %s, want %s", tt.urgency, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	if d := DaysBetween(date(2024, 2, 28), date(2024, 3, 1)); d != 2 {
		t.Errorf("expected 2 days across leap day, got %d", d)
	}
	if d := DaysBetween(date(2024, 3, 1), date(2024, 2, 28)); d != -2 {
		t.Errorf("expected -2 days, got %d", d)
	}
}
