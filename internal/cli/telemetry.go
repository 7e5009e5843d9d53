package cli

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/mgmtkit/observability"
	"github.com/kbukum/mgmtkit/version"
)

// telemetry holds the OTLP providers installed for one invocation.
type telemetry struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *observability.Metrics
}

func startTelemetry(ctx context.Context, cfg *Config) (*telemetry, error) {
	tc := cfg.Telemetry
	info := version.Get()

	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: info.Version,
		Environment:    cfg.Environment,
		Endpoint:       tc.Endpoint,
		Insecure:       tc.Insecure,
		SampleRate:     tc.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	mc := observability.DefaultMeterConfig(cfg.Name)
	mc.ServiceVersion = info.Version
	mc.Environment = cfg.Environment
	mc.Endpoint = tc.Endpoint
	mc.Insecure = tc.Insecure
	mp, err := observability.InitMeter(ctx, mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	metrics, err := observability.NewMetrics(mp.Meter(serviceName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	return &telemetry{tracer: tp, meter: mp, metrics: metrics}, nil
}

// shutdown flushes pending spans and metrics.
func (t *telemetry) shutdown(ctx context.Context) error {
	return errors.Join(t.tracer.Shutdown(ctx), t.meter.Shutdown(ctx))
}
