package cascade

import (
	"sort"

	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/content"
)

// Ambient is the data a host renders with, such as template variables or
// the stored values of a model.
type Ambient interface {
	blueprint.Container

	// Keys lists the available keys in the host's order.
	Keys() []string
}

// Vars is an insertion-ordered Ambient. The zero value is empty and ready
// to use; a nil *Vars is empty.
type Vars struct {
	keys   []string
	values map[string]any
}

// NewVars creates an empty Vars.
func NewVars() *Vars {
	return &Vars{values: make(map[string]any)}
}

// VarsFrom creates a Vars holding m, ordered by key.
func VarsFrom(m map[string]any) *Vars {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	v := NewVars()
	for _, k := range keys {
		v.Set(k, m[k])
	}
	return v
}

// Set stores value under key. An existing key keeps its position.
func (v *Vars) Set(key string, value any) *Vars {
	if v.values == nil {
		v.values = make(map[string]any)
	}
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
	return v
}

// Value returns the value stored under key.
func (v *Vars) Value(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v.values[key]
	return val, ok
}

// Keys returns the keys in insertion order.
func (v *Vars) Keys() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// modelVars exposes the stored values of a model. "title" falls back to the
// model title so "@auto" sources resolve.
type modelVars struct {
	model content.Localizable
}

func (m modelVars) Value(key string) (any, bool) {
	if m.model == nil {
		return nil, false
	}
	if v, ok := m.model.Value(key); ok {
		return v, true
	}
	if key == "title" {
		return m.model.Title(), true
	}
	return nil, false
}

func (m modelVars) Keys() []string {
	if m.model == nil {
		return nil
	}
	return m.model.Keys()
}

var (
	_ Ambient = (*Vars)(nil)
	_ Ambient = modelVars{}
)
