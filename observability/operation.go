package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one traced and measured API call.
type Operation struct {
	Name      string
	Method    string
	RequestID string
	StartTime time.Time
	Metrics   *Metrics

	span trace.Span
}

// StartOperation starts a SpanQuery span and records the query start metric.
// A nil metrics skips metric recording.
func StartOperation(ctx context.Context, metrics *Metrics, name, method, requestID string) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, SpanQuery, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrOperation, name),
		attribute.String(AttrMethod, method),
		attribute.String(AttrRequestID, requestID),
	)

	op := &Operation{
		Name:      name,
		Method:    method,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
	if metrics != nil {
		metrics.RecordQueryStart(ctx)
	}
	return ctx, op
}

// End finishes the span and records the outcome. errKind labels the error
// metric and is ignored when err is nil.
func (op *Operation) End(ctx context.Context, statusCode int, errKind string, err error) {
	duration := op.Duration()
	status := "ok"

	if statusCode > 0 {
		op.span.SetAttributes(attribute.Int(AttrStatusCode, statusCode))
	}
	if err != nil {
		status = "error"
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	op.span.End()

	if op.Metrics != nil {
		op.Metrics.RecordQueryEnd(ctx, op.Name, op.Method, status, duration)
		if err != nil {
			op.Metrics.RecordError(ctx, errKind, op.Name)
		}
	}
}

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
