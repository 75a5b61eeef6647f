// Package observe provides observability primitives for cascade resolution.
//
// It is a pure instrumentation library: no resolution logic, no I/O beyond
// exporter setup. The cascade package wraps every build in a Middleware and
// reports evaluator runs and empty layers through Metrics.
package observe
