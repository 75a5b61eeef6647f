// Package defaults provides the default value sets the cascade's lowest
// layers are built from.
//
// A Set is scoped to a type ("site" for site-wide values, "collections" or
// "taxonomies" for page-type values) and holds one localization per site.
// A localization may name an origin site whose values fill every key it does
// not set itself. Store is an in-memory Provider that can be populated from
// YAML documents.
package defaults
