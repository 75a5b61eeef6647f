package field

import (
	"slices"
	"strings"
)

// Mapping is an ordered map from key to Value.
//
// Mappings are immutable: every method returning a *Mapping returns a new
// one. A nil *Mapping behaves as an empty mapping.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns a mapping of values keyed by their handles, in order.
// A later value with the same handle replaces an earlier one in place.
func NewMapping(values ...Value) *Mapping {
	m := newMapping(len(values))
	for _, v := range values {
		m.set(v.handle, v)
	}
	return m
}

// Empty returns a mapping with no entries.
func Empty() *Mapping {
	return newMapping(0)
}

func newMapping(size int) *Mapping {
	return &Mapping{
		keys:   make([]string, 0, size),
		values: make(map[string]Value, size),
	}
}

// set mutates m and must only be used on a mapping that is not yet published.
func (m *Mapping) set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *Mapping) clone() *Mapping {
	out := newMapping(m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.set(k, m.values[k])
	}
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in mapping order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// With returns a copy with key set to v. An existing key keeps its position.
func (m *Mapping) With(key string, v Value) *Mapping {
	out := m.clone()
	out.set(key, v)
	return out
}

// Merge returns m overlaid with other. Keys of other overwrite keys of m in
// place; new keys are appended in other's order.
func (m *Mapping) Merge(other *Mapping) *Mapping {
	out := m.clone()
	if other == nil {
		return out
	}
	for _, k := range other.keys {
		out.set(k, other.values[k])
	}
	return out
}

// Filter returns the entries for which keep returns true.
func (m *Mapping) Filter(keep func(key string, v Value) bool) *Mapping {
	out := newMapping(m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		if keep(k, m.values[k]) {
			out.set(k, m.values[k])
		}
	}
	return out
}

// Only returns the entries whose keys are in keys, keeping m's order.
func (m *Mapping) Only(keys ...string) *Mapping {
	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}
	return m.Filter(func(key string, _ Value) bool {
		_, ok := wanted[key]
		return ok
	})
}

// Except returns the entries whose keys are not in keys.
func (m *Mapping) Except(keys ...string) *Mapping {
	unwanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		unwanted[k] = struct{}{}
	}
	return m.Filter(func(key string, _ Value) bool {
		_, ok := unwanted[key]
		return !ok
	})
}

// RenameKeys returns a mapping with every key passed through rename.
// When two keys collide the later one wins at the earlier one's position.
func (m *Mapping) RenameKeys(rename func(key string) string) *Mapping {
	out := newMapping(m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.set(rename(k), m.values[k])
	}
	return out
}

// TrimPrefix returns a mapping with prefix removed from every key.
func (m *Mapping) TrimPrefix(prefix string) *Mapping {
	return m.RenameKeys(func(key string) string {
		return strings.TrimPrefix(key, prefix)
	})
}

// Sorted returns a copy ordered by key.
func (m *Mapping) Sorted() *Mapping {
	out := m.clone()
	slices.Sort(out.keys)
	return out
}

// Augmented returns every entry's augmented value keyed by name.
func (m *Mapping) Augmented() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out[k] = m.values[k].Value()
	}
	return out
}
