package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(WithRegistry(reg), WithNamespace("test"))

	r.ItemScored(0.65)
	r.ItemScored(0.1)
	r.ItemStaffed("high", 3)
	r.ItemStaffed("low", 0)
	r.PoolExhausted()
	r.RunCompleted("cli", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.itemsScored))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.contributorsAssigned.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemsUnstaffed.WithLabelValues("low")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.poolExhausted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("cli")))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_item_urgency")
	assert.Contains(t, names, "test_plan_duration_seconds")
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ItemScored(1)
	r.ItemStaffed("high", 1)
	r.PoolExhausted()
	r.RunCompleted("api", time.Second)
}
