package tracer

import (
	"context"

	"scent-advisor-be/internal/config"
	"scent-advisor-be/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const logModule = "TRACER"

// ShutdownFunc flushes pending spans. Always safe to call.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// InitTracer installs a global OTLP/HTTP tracer provider when cfg.OtelEnabled
// is set. Call it after config.Load so values from .env are honoured.
func InitTracer(cfg config.AppConfig, log logger.ILogger) ShutdownFunc {
	if !cfg.OtelEnabled {
		log.Info(logModule, "Tracing disabled", map[string]interface{}{"hint": "set OTEL_ENABLED=true"})
		return noop
	}

	// The exporter connects lazily; a wrong endpoint surfaces on first export.
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.OtelEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Warn(logModule, "Failed to create OTLP exporter, tracing disabled", map[string]interface{}{
			"error":    err.Error(),
			"endpoint": cfg.OtelEndpoint,
		})
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
		)),
	)
	otel.SetTracerProvider(tp)

	log.Info(logModule, "Tracer initialized", map[string]interface{}{
		"endpoint": cfg.OtelEndpoint,
		"service":  cfg.ServiceName,
	})
	return tp.Shutdown
}
