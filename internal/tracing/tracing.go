// Package tracing wraps OpenTelemetry so planning code can open spans without
// depending on the SDK.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/MikeSquared-Agency/Roadmap"

// Tracer starts spans. A nil *Tracer starts no-op spans.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	out      io.Closer
}

// New exports spans as JSON to output, a file path. An empty output or
// "stdout" writes to standard output.
func New(serviceName, serviceVersion, output string) (*Tracer, error) {
	var (
		w   io.Writer = os.Stdout
		out io.Closer
	)
	if output != "" && output != "stdout" {
		f, err := os.Create(output)
		if err != nil {
			return nil, fmt.Errorf("create trace output: %w", err)
		}
		w, out = f, f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("stdout exporter: %w", err)
	}
	t, err := NewWithExporter(serviceName, serviceVersion, exporter)
	if err != nil {
		return nil, err
	}
	t.out = out
	return t, nil
}

// NewWithExporter sends spans to the supplied exporter as they end.
func NewWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*Tracer, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracing resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	return &Tracer{provider: tp, tracer: tp.Tracer(instrumentationName)}, nil
}

// Start opens a span named name as a child of any span already in ctx.
func (t *Tracer) Start(ctx context.Context, name string) (context.Context, *Span) {
	var tracer trace.Tracer
	if t == nil || t.tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	} else {
		tracer = t.tracer
	}
	ctx, span := tracer.Start(ctx, name)
	return ctx, &Span{span: span}
}

// Shutdown flushes pending spans and releases the output file.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	err := t.provider.Shutdown(ctx)
	if t.out != nil {
		if cerr := t.out.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Span is an open span.
type Span struct {
	span trace.Span
}

func (s *Span) SetInt(key string, v int) {
	s.span.SetAttributes(attribute.Int(key, v))
}

func (s *Span) SetFloat(key string, v float64) {
	s.span.SetAttributes(attribute.Float64(key, v))
}

func (s *Span) SetString(key, v string) {
	s.span.SetAttributes(attribute.String(key, v))
}

// Event records a named point in time on the span.
func (s *Span) Event(name string, attrs map[string]string) {
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, attribute.String(k, v))
	}
	s.span.AddEvent(name, trace.WithAttributes(kvs...))
}

// End closes the span, recording err when non-nil.
func (s *Span) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
