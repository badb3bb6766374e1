package observability

import (
	"context"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Observability owns the OpenTelemetry meter used for submission metrics.
// A zero value is valid and records nothing.
type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	submissions    otelmetric.Int64Counter
	submitDuration otelmetric.Float64Histogram
}

// New creates a meter provider whose readings are exported through reg.
// Pass nil to use the default Prometheus registerer.
func New(serviceName string, reg promclient.Registerer) (*Observability, error) {
	var opts []prometheus.Option
	if reg != nil {
		opts = append(opts, prometheus.WithRegisterer(reg))
	}

	exporter, err := prometheus.New(opts...)
	if err != nil {
		return &Observability{}, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	submissions, err := meter.Int64Counter(
		"signup.submissions",
		otelmetric.WithDescription("Number of application submissions"),
	)
	if err != nil {
		return &Observability{}, fmt.Errorf("failed to create submissions counter: %w", err)
	}

	submitDuration, err := meter.Float64Histogram(
		"signup.submit.duration",
		otelmetric.WithDescription("Submit duration including the document write"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{}, fmt.Errorf("failed to create submit duration histogram: %w", err)
	}

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		submissions:    submissions,
		submitDuration: submitDuration,
	}, nil
}

func (o *Observability) RecordSubmission(ctx context.Context, outcome string) {
	if o == nil || o.submissions == nil {
		return
	}
	o.submissions.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) RecordSubmitDuration(ctx context.Context, duration time.Duration, outcome string) {
	if o == nil || o.submitDuration == nil {
		return
	}
	o.submitDuration.Record(ctx, float64(duration) / float64(time.Millisecond), otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// Shutdown flushes and stops the meter provider.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
