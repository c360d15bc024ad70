package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Trace exporters accepted by Settings.TraceExporter.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Settings select how a process reports telemetry. Empty fields fall back to
// ENVIRONMENT, LOG_LEVEL and OTEL_TRACES_EXPORTER.
type Settings struct {
	ServiceName   string
	Environment   string
	LogLevel      string
	TraceExporter string
}

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	reader         *sdkmetric.ManualReader
}

// Init configures slog, OpenTelemetry tracing, and meters for the process.
// The returned shutdown flushes pending spans and must run on exit.
func Init(ctx context.Context, settings Settings) (*Instruments, func(context.Context) error, error) {
	settings = settings.withDefaults()
	level, err := parseLevel(settings.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(os.Stdout, level)
	slog.SetDefault(logger)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", settings.ServiceName),
			attribute.String("deployment.environment", settings.Environment),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tracerOptions := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if settings.TraceExporter != ExporterNone {
		spanExporter, err := newSpanExporter(ctx, settings.TraceExporter, logger)
		if err != nil {
			return nil, nil, err
		}
		tracerOptions = append(tracerOptions, sdktrace.WithBatcher(spanExporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(tracerOptions...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
	otel.SetMeterProvider(meterProvider)

	instruments := &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		reader:         reader,
	}
	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}
	logger.Info("observability initialized",
		slog.String("service", settings.ServiceName),
		slog.String("environment", settings.Environment),
		slog.String("traces", settings.TraceExporter))
	return instruments, shutdown, nil
}

// NewInMemory records spans nowhere and keeps counters readable through CounterTotals.
// The global providers are left untouched.
func NewInMemory(logger *slog.Logger) *Instruments {
	if logger == nil {
		logger = newLogger(io.Discard, slog.LevelInfo)
	}
	reader := sdkmetric.NewManualReader()
	return &Instruments{
		Logger:         logger,
		TracerProvider: sdktrace.NewTracerProvider(),
		MeterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader:         reader,
	}
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// CounterTotals sums every int64 counter by instrument name, across all attribute sets.
func (i *Instruments) CounterTotals(ctx context.Context) (map[string]int64, error) {
	if i == nil || i.reader == nil {
		return nil, errors.New("instruments have no metric reader")
	}
	var rm metricdata.ResourceMetrics
	if err := i.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, point := range sum.DataPoints {
				totals[m.Name] += point.Value
			}
		}
	}
	return totals, nil
}

func (s Settings) withDefaults() Settings {
	if s.ServiceName == "" {
		s.ServiceName = "delivery"
	}
	if s.Environment == "" {
		s.Environment = envOrDefault("ENVIRONMENT", "local")
	}
	if s.LogLevel == "" {
		s.LogLevel = envOrDefault("LOG_LEVEL", "info")
	}
	if s.TraceExporter == "" {
		s.TraceExporter = envOrDefault("OTEL_TRACES_EXPORTER", ExporterOTLP)
	}
	s.TraceExporter = strings.ToLower(s.TraceExporter)
	return s
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: true}))
}

func newSpanExporter(ctx context.Context, exporter string, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", exporter)
	}
	endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	opts := []otlptracehttp.Option{}
	if endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	otlp, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return otlp, nil
	}
	logger.Warn("failed to initialize OTLP trace exporter, falling back to stdout", slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
