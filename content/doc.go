// Package content defines the read-only content model the cascade consumes.
//
// The interfaces describe only what SEO resolution needs from a content
// system: sites, localizable entries and taxonomy terms, taxonomies, assets,
// lookup by id and URI, and pagination state. Memory is a small in-process
// implementation used by tests and by the CLI fixtures.
package content
