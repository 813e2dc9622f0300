package config

import (
	"context"
	"io"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const serviceName = "library-circulation"

// ObservabilityProviders holds the OpenTelemetry providers of the CLI.
type ObservabilityProviders struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	MetricReader   *metric.ManualReader
	Resource       *resource.Resource
}

// NewObservabilityConfig creates OpenTelemetry providers for a short-lived CLI process.
// Spans are written to traceOut as pretty-printed JSON, metrics are collected by a
// manual reader which the caller can read once before exiting.
func NewObservabilityConfig(traceOut io.Writer, version string) (*ObservabilityProviders, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := stdouttrace.New(
		stdouttrace.WithWriter(traceOut),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithSyncer(traceExporter),
		trace.WithResource(res),
	)

	reader := metric.NewManualReader()
	meterProvider := metric.NewMeterProvider(
		metric.WithReader(reader),
		metric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &ObservabilityProviders{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		MetricReader:   reader,
		Resource:       res,
	}, nil
}

// Shutdown gracefully shuts down the OpenTelemetry providers.
func (p *ObservabilityProviders) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if shutdownErr := p.TracerProvider.Shutdown(ctx); shutdownErr != nil {
		err = shutdownErr
	}

	if shutdownErr := p.MeterProvider.Shutdown(ctx); shutdownErr != nil {
		if err != nil {
			log.Printf("Multiple shutdown errors occurred. First: %v, Second: %v", err, shutdownErr)
		}
		err = shutdownErr
	}

	return err
}
