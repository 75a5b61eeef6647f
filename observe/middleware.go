package observe

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// BuildFunc is the signature of an instrumented cascade build.
type BuildFunc func(ctx context.Context, meta CascadeMeta) error

// Middleware wraps cascade builds with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe BuildFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
// Nil components are replaced with no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NewTracer(nil)
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Nop returns a Middleware that records nothing.
func Nop() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// Metrics returns the middleware's metrics recorder.
func (m *Middleware) Metrics() Metrics {
	return m.metrics
}

// Logger returns a logger bound to meta.
func (m *Middleware) Logger(meta CascadeMeta) Logger {
	return m.logger.WithCascade(meta)
}

// Wrap wraps a BuildFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn BuildFunc) BuildFunc {
	return func(ctx context.Context, meta CascadeMeta) error {
		buildID := uuid.NewString()
		ctx, span := m.tracer.StartSpan(ctx, meta)
		span.SetAttributes(attribute.String("cascade.build_id", buildID))

		start := time.Now()
		err := fn(ctx, meta)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordBuild(ctx, meta, duration, err)

		logger := m.logger.WithCascade(meta)
		fields := []Field{
			{Key: "build_id", Value: buildID},
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "cascade build failed", fields...)
		} else {
			logger.Debug(ctx, "cascade built", fields...)
		}

		return err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
