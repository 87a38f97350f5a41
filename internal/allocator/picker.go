package allocator

import (
	"math/rand"
	"sync"
	"time"
)

// Picker chooses one index in [0, n) from a non-empty pool.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a plain function to the Picker interface.
type PickerFunc func(n int) int

// Pick calls f(n).
func (f PickerFunc) Pick(n int) int {
	return f(n)
}

// RandPicker picks indexes uniformly at random. It is safe for concurrent use.
type RandPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandPicker creates a RandPicker. A zero seed seeds from the clock.
func NewRandPicker(seed int64) *RandPicker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandPicker{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // staffing picks are not security sensitive
}

// Pick returns a uniformly distributed index in [0, n).
func (p *RandPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}
