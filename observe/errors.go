package observe

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
)

// Errors returned by Config.Validate.
var (
	ErrMissingServiceName     = errors.New("observe: service name is required")
	ErrInvalidSamplePct       = errors.New("observe: sample fraction outside [0, 1]")
	ErrInvalidTracingExporter = errors.New("observe: unknown tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observe: unknown metrics exporter")
	ErrInvalidLogLevel        = errors.New("observe: unknown log level")
)

// ErrNilObserver is returned by MiddlewareFromObserver for a nil observer.
var ErrNilObserver = errors.New("observe: observer is nil")

// Sampling bounds for Tracing.SamplePct.
const (
	MinSamplePct = 0.0
	MaxSamplePct = 1.0
)

// Accepted names per subsystem. The empty name selects the default.
var (
	tracingExporters = mapset.NewSet("otlp", "jaeger", "stdout", "none", "")
	metricsExporters = mapset.NewSet("otlp", "prometheus", "stdout", "none", "")
	logLevels        = mapset.NewSet(levelNames[:]...).Union(mapset.NewSet(""))
)
