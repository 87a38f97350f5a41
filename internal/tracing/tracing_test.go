package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpansAreExported(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tr, err := NewWithExporter("roadmap", "test", exporter)
	require.NoError(t, err)

	ctx, parent := tr.Start(context.Background(), "plan")
	parent.SetInt("items", 3)
	_, child := tr.Start(ctx, "allocate")
	child.Event("pool exhausted", map[string]string{"item": "launch"})
	child.End(nil)
	parent.End(errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "allocate", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Len(t, spans[0].Events, 1)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestNilTracerIsNoop(t *testing.T) {
	var tr *Tracer
	_, span := tr.Start(context.Background(), "plan")
	span.SetString("source", "cli")
	span.End(nil)
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	tr, err := New("roadmap", "test", path)
	require.NoError(t, err)

	_, span := tr.Start(context.Background(), "plan")
	span.End(nil)
	require.NoError(t, tr.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plan"`)
}
