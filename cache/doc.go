// Package cache provides request-scoped memoization for cascade layers.
//
// A Cache lives for one request: layers keyed by a component namespace and a
// locale are computed on first access and shared by every cascade built
// during that request. Flush discards everything at the request boundary.
// Memo collapses concurrent first accesses so a layer is published whole.
package cache
