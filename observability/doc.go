// Package observability provides OpenTelemetry tracing and metrics for
// management API calls.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("mgmtctl"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanQuery)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("mgmtctl"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("mgmtctl"))
//
// Operations tie both together:
//
//	ctx, op := observability.StartOperation(ctx, metrics, "users.LogsRequest", "GET", requestID)
//	defer op.End(ctx, statusCode, "status", err)
package observability
