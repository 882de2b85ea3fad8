// Package telemetry initializes OpenTelemetry logging, metrics, and tracing
// with OTLP exporters over gRPC. It builds a single Resource describing the
// service, registers the global providers, and returns a ShutdownFunc that
// flushes and stops every pipeline on exit.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// loggerProvider holds the SDK logger provider created by Init. It is nil
// until Init succeeds, which lets the logger package decide whether an OTEL
// bridge core should be attached.
var loggerProvider *sdklog.LoggerProvider

// LoggerProvider returns the logger provider created by Init, or nil when
// telemetry has not been initialized. Callers must treat a nil result as
// "telemetry disabled".
func LoggerProvider() *sdklog.LoggerProvider {
	return loggerProvider
}

// initLoggerProvider sets up an OTLP gRPC LoggerProvider with a batch
// processor and the given Resource, and stores it for LoggerProvider.
func initLoggerProvider(ctx context.Context, res *sdkresource.Resource) (*sdklog.LoggerProvider, error) {
	exporter, err := otlploggrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)

	loggerProvider = lp
	return lp, nil
}

// initMeterProvider sets up an OTLP gRPC MeterProvider using a periodic
// reader and the given Resource, and registers it as the global provider.
func initMeterProvider(ctx context.Context, res *sdkresource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)
	return mp, nil
}

// initTracerProvider sets up an OTLP gRPC TracerProvider using a batched
// exporter and the given Resource, and registers it as the global provider.
func initTracerProvider(ctx context.Context, res *sdkresource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	return tp, nil
}

// newResource merges the default system resource with the ServiceName
// attribute for the given service.
func newResource(serviceName string) (*sdkresource.Resource, error) {
	return sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

// ShutdownFunc flushes and stops every telemetry provider created by Init.
// Call it during application shutdown so no telemetry data is lost.
type ShutdownFunc func(ctx context.Context) error

// Init configures OpenTelemetry logs, metrics, and traces using OTLP over
// gRPC. Exporter endpoints follow the standard OTEL_EXPORTER_OTLP_*
// environment variables.
//
// Parameters:
//   - ctx: context governing exporter setup.
//   - serviceName: logical service name attached to all telemetry data.
//
// Returns:
//   - ShutdownFunc: callback to flush and stop all providers.
//   - error: when any provider fails to initialize.
func Init(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, err
	}

	lp, err := initLoggerProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	mp, err := initMeterProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	tp, err := initTracerProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		errs := []error{
			lp.Shutdown(ctx),
			mp.Shutdown(ctx),
			tp.Shutdown(ctx),
		}
		loggerProvider = nil
		return errors.Join(errs...)
	}, nil
}
