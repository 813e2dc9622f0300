package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const attrStatus = "status"

// TracingCollector implements circulation.TracingCollector with an OpenTelemetry Tracer.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a TracingCollector that starts its spans from the given tracer.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span as a child of the span in ctx (if any) and returns the derived context.
func (t *TracingCollector) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, circulation.SpanContext) {
	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan adds the final attributes, maps status to an OpenTelemetry status code and ends the span.
func (t *TracingCollector) FinishSpan(spanCtx circulation.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok || otelSpanCtx == nil {
		return
	}

	otelSpanCtx.span.SetAttributes(toAttributes(attrs)...)
	otelSpanCtx.setSpanStatus(status)
	otelSpanCtx.span.End()
}

// OTelSpanContext wraps an OpenTelemetry span as a circulation.SpanContext.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps a circulation status onto the span.
func (s *OTelSpanContext) SetStatus(status string) {
	s.setSpanStatus(status)
}

// AddAttribute adds a string attribute to the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// setSpanStatus treats business rejections (an unavailable item, an exhausted quota, ...) as a
// handled request: the span is OK and the rejection is kept as an attribute.
func (s *OTelSpanContext) setSpanStatus(status string) {
	switch status {
	case "ok", "success", "completed", "idempotent":
		s.span.SetStatus(codes.Ok, "")

	case "rejected":
		s.span.SetStatus(codes.Ok, "")
		s.span.SetAttributes(attribute.String(attrStatus, status))

	case "error", "failed":
		s.span.SetStatus(codes.Error, "Operation failed")

	case "canceled", "cancelled":
		s.span.SetStatus(codes.Error, "Operation canceled")

	case "timeout":
		s.span.SetStatus(codes.Error, "Operation timed out")

	case "conflict":
		s.span.SetStatus(codes.Error, "Concurrency conflict")

	default:
		s.span.SetAttributes(attribute.String(attrStatus, status))
	}
}

var _ circulation.TracingCollector = (*TracingCollector)(nil)
