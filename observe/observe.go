package observe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/seocascade/observe/exporters"
)

// Config holds all configuration for the Observer.
type Config struct {
	ServiceName string        `mapstructure:"service_name" yaml:"service_name"`
	Version     string        `mapstructure:"version" yaml:"version"`
	Tracing     TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Metrics     MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Logging     LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// RegisterGlobal installs the SDK providers as the otel globals.
	RegisterGlobal bool `mapstructure:"register_global" yaml:"register_global"`
}

// TracingConfig configures the tracing subsystem.
type TracingConfig struct {
	Enabled   bool    `mapstructure:"enabled" yaml:"enabled"`
	Exporter  string  `mapstructure:"exporter" yaml:"exporter"`     // otlp|jaeger|stdout|none
	SamplePct float64 `mapstructure:"sample_pct" yaml:"sample_pct"` // 0.0-1.0
}

// MetricsConfig configures the metrics subsystem.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Exporter string `mapstructure:"exporter" yaml:"exporter"` // otlp|prometheus|stdout|none
}

// LoggingConfig configures the logging subsystem.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Level   string `mapstructure:"level" yaml:"level"` // debug|info|warn|error
}

// DefaultConfig returns a configuration with logging at info and
// tracing and metrics disabled.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName: serviceName,
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
		Tracing:     TracingConfig{Exporter: "none", SamplePct: 1.0},
		Metrics:     MetricsConfig{Exporter: "none"},
	}
}

// Validate checks the enabled subsystems. Disabled ones are not inspected.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return ErrMissingServiceName
	}
	if t := c.Tracing; t.Enabled {
		if !tracingExporters.Contains(t.Exporter) {
			return fmt.Errorf("%w: %q", ErrInvalidTracingExporter, t.Exporter)
		}
		if t.SamplePct < MinSamplePct || t.SamplePct > MaxSamplePct {
			return fmt.Errorf("%w: got %g", ErrInvalidSamplePct, t.SamplePct)
		}
	}
	if m := c.Metrics; m.Enabled && !metricsExporters.Contains(m.Exporter) {
		return fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, m.Exporter)
	}
	if l := c.Logging; l.Enabled && !logLevels.Contains(l.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}
	return nil
}

// Observer provides access to telemetry primitives.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Shutdown must honor cancellation/deadlines.
// - Errors: Shutdown should be idempotent and return the first error encountered.
type Observer interface {
	// Tracer returns the configured tracer.
	Tracer() trace.Tracer

	// Meter returns the configured meter.
	Meter() metric.Meter

	// Logger returns the configured logger.
	Logger() Logger

	// Shutdown gracefully shuts down all telemetry providers.
	Shutdown(ctx context.Context) error
}

// Logger is a minimal structured logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	WithCascade(meta CascadeMeta) Logger
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// observer is the concrete implementation of Observer.
type observer struct {
	tracer    trace.Tracer
	meter     metric.Meter
	logger    Logger
	providers []provider

	shutdown sync.Once
	err      error
}

// provider is an SDK provider that must be flushed on exit.
type provider struct {
	name     string
	shutdown func(context.Context) error
}

// NewObserver creates a new Observer with the given configuration.
func NewObserver(ctx context.Context, cfg Config) (Observer, error) {
	return NewObserverWithFactory(ctx, cfg, exporters.Factory{}, os.Stderr)
}

// NewObserverWithFactory creates an Observer whose exporters come from f and
// whose logger writes to logOut. Disabled subsystems get no-op primitives.
func NewObserverWithFactory(ctx context.Context, cfg Config, f exporters.Factory, logOut io.Writer) (Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	obs := &observer{
		tracer: tracenoop.NewTracerProvider().Tracer("noop"),
		meter:  noop.NewMeterProvider().Meter("noop"),
		logger: &noopLogger{},
	}

	if cfg.Tracing.Enabled {
		tp, err := newTracerProvider(ctx, cfg.Tracing, f, res)
		if err != nil {
			return nil, fmt.Errorf("failed to setup tracing: %w", err)
		}
		if cfg.RegisterGlobal {
			otel.SetTracerProvider(tp)
		}
		obs.tracer = tp.Tracer(cfg.ServiceName)
		obs.providers = append(obs.providers, provider{name: "tracer", shutdown: tp.Shutdown})
	}

	if cfg.Metrics.Enabled {
		mp, err := newMeterProvider(ctx, cfg.Metrics, f, res)
		if err != nil {
			_ = obs.Shutdown(ctx)
			return nil, fmt.Errorf("failed to setup metrics: %w", err)
		}
		if cfg.RegisterGlobal {
			otel.SetMeterProvider(mp)
		}
		obs.meter = mp.Meter(cfg.ServiceName)
		obs.providers = append(obs.providers, provider{name: "meter", shutdown: mp.Shutdown})
	}

	if cfg.Logging.Enabled {
		obs.logger = NewLoggerWithWriter(cfg.Logging.Level, logOut)
	}
	return obs, nil
}

func newTracerProvider(ctx context.Context, cfg TracingConfig, f exporters.Factory, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := f.TracingExporter(ctx, cfg.Exporter)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SamplePct)),
	}
	if exporter != nil {
		// Builds are short; spans are exported synchronously so a CLI run
		// never exits with spans still queued.
		opts = append(opts, sdktrace.WithSyncer(exporter))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

// samplerFor maps a sample fraction to a parent-based sampler.
func samplerFor(pct float64) sdktrace.Sampler {
	switch {
	case pct >= MaxSamplePct:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case pct <= MinSamplePct:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(pct))
	}
}

func newMeterProvider(ctx context.Context, cfg MetricsConfig, f exporters.Factory, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	reader, err := f.MetricsReader(ctx, cfg.Exporter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics reader: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if reader != nil {
		opts = append(opts, sdkmetric.WithReader(reader))
	}
	return sdkmetric.NewMeterProvider(opts...), nil
}

func (o *observer) Tracer() trace.Tracer { return o.tracer }

func (o *observer) Meter() metric.Meter { return o.meter }

func (o *observer) Logger() Logger { return o.logger }

// Shutdown flushes providers in reverse setup order. Later calls return the
// result of the first.
func (o *observer) Shutdown(ctx context.Context) error {
	o.shutdown.Do(func() {
		var errs []error
		for i := len(o.providers) - 1; i >= 0; i-- {
			p := o.providers[i]
			if err := p.shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s shutdown: %w", p.name, err))
			}
		}
		o.err = errors.Join(errs...)
	})
	return o.err
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (*noopLogger) Info(context.Context, string, ...Field)  {}
func (*noopLogger) Warn(context.Context, string, ...Field)  {}
func (*noopLogger) Error(context.Context, string, ...Field) {}
func (*noopLogger) Debug(context.Context, string, ...Field) {}

func (l *noopLogger) WithCascade(CascadeMeta) Logger { return l }
