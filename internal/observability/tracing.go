package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/sfsergim/CivicReport/internal/config"
	"github.com/sfsergim/CivicReport/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ServiceVersion is attached to every span. Set at build time via
// -ldflags "-X github.com/sfsergim/CivicReport/internal/observability.ServiceVersion=x.y.z".
var ServiceVersion = "dev"

var tracerProvider *sdktrace.TracerProvider

// InitTracer exports spans of serviceName over OTLP/gRPC when tracing is
// enabled. Any failure leaves the global no-op provider in place.
func InitTracer(serviceName string) {
	cfg := config.AppConfig
	if cfg == nil || !cfg.TracingEnabled {
		logging.Logger.Info("tracing is disabled", zap.String("service", serviceName))
		return
	}

	ctx := context.Background()
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.TracingEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	))
	if err != nil {
		logging.Logger.Error("failed to create OTLP exporter", zap.Error(err))
		return
	}

	provider, err := NewTracerProvider(ctx, exporter, serviceName, cfg.Environment)
	if err != nil {
		logging.Logger.Error("failed to create tracer provider", zap.Error(err))
		_ = exporter.Shutdown(ctx)
		return
	}
	installTracerProvider(provider)

	logging.Logger.Info("tracer initialized",
		zap.String("service", serviceName),
		zap.String("version", ServiceVersion),
		zap.String("endpoint", cfg.TracingEndpoint))
}

// NewTracerProvider batches spans to exporter, tagged with the service name,
// version and deployment environment. Sampling follows the caller's decision
// when a request arrives with a trace context.
func NewTracerProvider(ctx context.Context, exporter sdktrace.SpanExporter, serviceName, environment string) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(ServiceVersion),
		semconv.DeploymentEnvironmentKey.String(environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithMaxExportBatchSize(512),
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxQueueSize(2048),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	), nil
}

// installTracerProvider makes provider global along with W3C propagation,
// which RequestTiming relies on to join incoming traces.
func installTracerProvider(provider *sdktrace.TracerProvider) {
	tracerProvider = provider
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// ShutdownTracer flushes pending spans and stops the exporter
func ShutdownTracer() {
	if tracerProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tracerProvider.Shutdown(ctx); err != nil {
		logging.Logger.Error("failed to shutdown tracer provider", zap.Error(err))
	}
	tracerProvider = nil
}
