package blueprint

import "github.com/jonwraymond/seocascade/field"

// Augmenter turns a data container into augmented field values.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: the returned mapping is newly allocated and never mutated.
type Augmenter interface {
	Augment(bp Blueprint, data Container) *field.Mapping
}

// DefaultAugmenter augments with the fieldtypes of a Registry.
type DefaultAugmenter struct {
	types *Registry
}

// NewAugmenter creates an augmenter. A nil registry uses NewRegistry().
func NewAugmenter(types *Registry) *DefaultAugmenter {
	if types == nil {
		types = NewRegistry()
	}
	return &DefaultAugmenter{types: types}
}

// Augment returns one Value per blueprint field, in blueprint order. Fields
// missing from data carry their default as raw value.
func (a *DefaultAugmenter) Augment(bp Blueprint, data Container) *field.Mapping {
	values := make([]field.Value, 0, len(bp.Fields))
	for _, f := range bp.Fields {
		var raw any
		if data != nil {
			if v, ok := data.Value(f.Handle); ok {
				raw = v
			}
		}
		if raw == nil && f.Type != TypeSource {
			raw = f.Default
		}
		values = append(values, field.NewValue(raw, f.Handle, a.bind(f), data))
	}
	return field.NewMapping(values...)
}

// bind returns the fieldtype of f, or nil for an unknown type.
func (a *DefaultAugmenter) bind(f Field) field.Fieldtype {
	t, ok := a.types.Get(f.Type)
	if !ok {
		return nil
	}
	return boundType{field: f, typ: t}
}

// boundType adapts a Type plus its declaring Field to field.Fieldtype.
type boundType struct {
	field Field
	typ   Type
}

func (b boundType) Handle() string { return b.typ.Handle() }

func (b boundType) Augment(v field.Value) any {
	parent, _ := v.Augmentable().(Container)
	return b.typ.Augment(b.field, v.Raw(), parent)
}

// MapContainer is a Container over a plain map.
type MapContainer map[string]any

// Value returns the value stored under key.
func (m MapContainer) Value(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

var _ Augmenter = (*DefaultAugmenter)(nil)
