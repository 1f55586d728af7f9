package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// spanPrefix is prepended to every operation span name.
const spanPrefix = "jugsolver."

// Operation identifies an instrumented unit of work.
type Operation struct {
	Component string // Owning component, e.g. "service" (may be empty)
	Name      string // Operation name, e.g. "solve" (required)
	Version   string // Build version (optional)
}

// SpanName returns the deterministic span name for this operation.
// Format: jugsolver.<component>.<name> or jugsolver.<name>
func (o Operation) SpanName() string {
	return spanPrefix + o.ID()
}

// ID returns the qualified operation identifier.
func (o Operation) ID() string {
	if o.Component != "" {
		return o.Component + "." + o.Name
	}
	return o.Name
}

// Validate reports whether the operation carries a name.
func (o Operation) Validate() error {
	if o.Name == "" {
		return ErrMissingOperationName
	}
	return nil
}

func (o Operation) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("operation.id", o.ID()),
		attribute.String("operation.name", o.Name),
	}
	if o.Component != "" {
		attrs = append(attrs, attribute.String("operation.component", o.Component))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with per-operation span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for an operation.
	StartSpan(ctx context.Context, op Operation) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	if t == nil {
		return newNoopTracer()
	}
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with operation metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, op Operation) (context.Context, trace.Span) {
	attrs := append(op.attributes(), attribute.Bool("operation.error", false))
	if op.Version != "" {
		attrs = append(attrs, attribute.String("operation.version", op.Version))
	}

	return t.tracer.Start(ctx, op.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("operation.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, op Operation) (context.Context, trace.Span) {
	return t.noop.Start(ctx, op.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
