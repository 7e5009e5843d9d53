package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/mgmtkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) *MeterConfig {
	return &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider should be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for management API queries.
type Metrics struct {
	queryTotal    metric.Int64Counter
	queryDuration metric.Float64Histogram
	queryActive   metric.Int64UpDownCounter
	errorTotal    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	queryTotal, err := meter.Int64Counter("management.query.total",
		metric.WithDescription("Total number of management API queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating management.query.total counter: %w", err)
	}

	queryDuration, err := meter.Float64Histogram("management.query.duration",
		metric.WithDescription("Duration of management API queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating management.query.duration histogram: %w", err)
	}

	queryActive, err := meter.Int64UpDownCounter("management.query.active",
		metric.WithDescription("Number of in-flight management API queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating management.query.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("management.error.total",
		metric.WithDescription("Total failed queries by error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating management.error.total counter: %w", err)
	}

	return &Metrics{
		queryTotal:    queryTotal,
		queryDuration: queryDuration,
		queryActive:   queryActive,
		errorTotal:    errorTotal,
	}, nil
}

// RecordQueryStart increments the in-flight query count.
func (m *Metrics) RecordQueryStart(ctx context.Context) {
	m.queryActive.Add(ctx, 1)
}

// RecordQueryEnd decrements in-flight queries and records the completed query.
func (m *Metrics) RecordQueryEnd(ctx context.Context, operation, method, status string, duration time.Duration) {
	m.queryActive.Add(ctx, -1)
	m.queryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("method", method),
		attribute.String("status", status),
	))
	m.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("method", method),
	))
}

// RecordError records a failed query by error kind.
func (m *Metrics) RecordError(ctx context.Context, kind, operation string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("operation", operation),
	))
}
