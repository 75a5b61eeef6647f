package defaults

import (
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/field"
)

// Provider supplies augmented default values.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: missing sets or localizations yield empty results, not errors.
type Provider interface {
	// EnabledInType lists the enabled sets of a type, ordered by handle.
	EnabledInType(typ string) []Set

	// Values returns the raw values of a set in a locale.
	Values(data Data) map[string]any

	// Augmented returns the values of a set in a locale, augmented against
	// the set's blueprint.
	Augmented(data Data) *field.Mapping
}

// Store is an in-memory Provider.
type Store struct {
	mu        sync.RWMutex
	sets      map[string]Set
	augmenter blueprint.Augmenter
}

// NewStore creates an empty store. A nil augmenter uses the default one.
func NewStore(augmenter blueprint.Augmenter) *Store {
	if augmenter == nil {
		augmenter = blueprint.NewAugmenter(nil)
	}
	return &Store{
		sets:      make(map[string]Set),
		augmenter: augmenter,
	}
}

func setKey(typ, handle string) string {
	return typ + "::" + handle
}

// Save stores s, replacing a set with the same type and handle.
func (st *Store) Save(s Set) error {
	if _, err := NewSet(s.Type, s.Handle); err != nil {
		return err
	}
	st.mu.Lock()
	st.sets[setKey(s.Type, s.Handle)] = s
	st.mu.Unlock()
	return nil
}

// Find returns the set with the given type and handle.
func (st *Store) Find(typ, handle string) (Set, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sets[setKey(typ, handle)]
	return s, ok
}

// SetEnabled toggles a stored set. Unknown sets are ignored.
func (st *Store) SetEnabled(typ, handle string, enabled bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sets[setKey(typ, handle)]; ok {
		s.Enabled = enabled
		st.sets[setKey(typ, handle)] = s
	}
}

// LoadYAML adds the localization of a set in site from a YAML document.
// A top-level "origin" key names the site the localization inherits from.
func (st *Store) LoadYAML(typ, handle, site string, doc []byte) error {
	if site == "" {
		return ErrMissingHandle
	}

	var values map[string]any
	if err := yaml.Unmarshal(doc, &values); err != nil {
		return fmt.Errorf("%w: %s/%s/%s: %v", ErrMalformedDocument, typ, handle, site, err)
	}

	loc := Localization{Site: site, Values: make(map[string]any, len(values))}
	for k, v := range values {
		if k == "origin" {
			loc.Origin, _ = v.(string)
			continue
		}
		loc.Values[k] = v
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sets[setKey(typ, handle)]
	if !ok {
		created, err := NewSet(typ, handle)
		if err != nil {
			return err
		}
		s = created
	}
	st.sets[setKey(typ, handle)] = s.WithLocalization(loc)
	return nil
}

// EnabledInType lists the enabled sets of typ ordered by handle.
func (st *Store) EnabledInType(typ string) []Set {
	st.mu.RLock()
	defer st.mu.RUnlock()

	var out []Set
	for _, s := range st.sets {
		if s.Type == typ && s.Enabled {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Values returns the raw values of data's set in data.Locale.
func (st *Store) Values(data Data) map[string]any {
	s, ok := st.Find(data.Type, data.Handle)
	if !ok || !s.Enabled {
		return map[string]any{}
	}
	values, err := s.Values(data.Locale)
	if err != nil {
		return map[string]any{}
	}
	return values
}

// Augmented returns data's values augmented against the set's blueprint.
// Sets without a known blueprint yield untyped values ordered by key. A set
// that is not localized in data.Locale yields the empty mapping.
func (st *Store) Augmented(data Data) *field.Mapping {
	s, ok := st.Find(data.Type, data.Handle)
	if !ok || !s.Enabled {
		return field.Empty()
	}
	if _, localized := s.Localizations[data.Locale]; !localized {
		return field.Empty()
	}

	values := st.Values(data)
	bp, ok := blueprintFor(data)
	if !ok {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]field.Value, 0, len(keys))
		for _, k := range keys {
			out = append(out, field.NewValue(values[k], k, nil, nil))
		}
		return field.NewMapping(out...)
	}
	return st.augmenter.Augment(bp, blueprint.MapContainer(values))
}

func blueprintFor(data Data) (blueprint.Blueprint, bool) {
	switch data.Type {
	case TypeSite:
		return blueprint.SiteSet(data.Handle)
	case TypeCollections, TypeTaxonomies:
		return blueprint.ContentSet(), true
	default:
		return blueprint.Blueprint{}, false
	}
}

var _ Provider = (*Store)(nil)
