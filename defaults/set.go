package defaults

import (
	"fmt"
	"maps"
	"slices"
)

// Set types.
const (
	TypeSite        = "site"
	TypeCollections = "collections"
	TypeTaxonomies  = "taxonomies"
)

// ValidTypes lists the accepted set types.
var ValidTypes = []string{TypeSite, TypeCollections, TypeTaxonomies}

// Data identifies the defaults to load: one set, in one locale.
type Data struct {
	Type   string
	Handle string
	// Locale is the site handle the values are localized for.
	Locale string
	Sites  []string
}

// Localization holds the values of a set in one site.
type Localization struct {
	Site   string
	Origin string
	Values map[string]any
}

// Set is a named collection of default values.
type Set struct {
	Handle        string
	Type          string
	Enabled       bool
	Localizations map[string]Localization
}

// NewSet creates an enabled set without localizations.
func NewSet(typ, handle string) (Set, error) {
	if !slices.Contains(ValidTypes, typ) {
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	if handle == "" {
		return Set{}, ErrMissingHandle
	}
	return Set{
		Handle:        handle,
		Type:          typ,
		Enabled:       true,
		Localizations: make(map[string]Localization),
	}, nil
}

// WithLocalization returns a copy of s holding loc.
func (s Set) WithLocalization(loc Localization) Set {
	out := s
	out.Localizations = maps.Clone(s.Localizations)
	if out.Localizations == nil {
		out.Localizations = make(map[string]Localization)
	}
	out.Localizations[loc.Site] = loc
	return out
}

// Values returns the values of site, filled from its origin chain.
func (s Set) Values(site string) (map[string]any, error) {
	loc, ok := s.Localizations[site]
	if !ok {
		return map[string]any{}, nil
	}

	chain := []Localization{loc}
	seen := map[string]bool{site: true}
	for loc.Origin != "" {
		if seen[loc.Origin] {
			return nil, fmt.Errorf("%w: %s/%s via %q", ErrOriginCycle, s.Type, s.Handle, loc.Origin)
		}
		seen[loc.Origin] = true
		origin, ok := s.Localizations[loc.Origin]
		if !ok {
			break
		}
		chain = append(chain, origin)
		loc = origin
	}

	out := make(map[string]any)
	for i := len(chain) - 1; i >= 0; i-- {
		maps.Copy(out, chain[i].Values)
	}
	return out, nil
}
