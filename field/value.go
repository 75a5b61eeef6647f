package field

// Fieldtype turns a raw stored value into its presentational form.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Augment must not panic; unusable input augments to nil.
type Fieldtype interface {
	// Handle is the fieldtype name, e.g. "text" or "toggle".
	Handle() string

	// Augment returns the presentational form of v's raw value.
	Augment(v Value) any
}

// Value is one cascade entry before computation.
type Value struct {
	raw         any
	handle      string
	fieldtype   Fieldtype
	augmentable any
}

// NewValue creates a Value. fieldtype and augmentable may be nil.
func NewValue(raw any, handle string, fieldtype Fieldtype, augmentable any) Value {
	return Value{
		raw:         raw,
		handle:      handle,
		fieldtype:   fieldtype,
		augmentable: augmentable,
	}
}

// Raw returns the stored value.
func (v Value) Raw() any { return v.raw }

// Handle returns the field handle the value was declared under.
func (v Value) Handle() string { return v.handle }

// Fieldtype returns the fieldtype used for augmentation, or nil.
func (v Value) Fieldtype() Fieldtype { return v.fieldtype }

// Augmentable returns the data container the value belongs to, or nil.
func (v Value) Augmentable() any { return v.augmentable }

// Value returns the augmented value. Without a fieldtype the raw value is
// returned unchanged.
func (v Value) Value() any {
	if v.fieldtype == nil {
		return v.raw
	}
	return v.fieldtype.Augment(v)
}

// WithRaw returns a copy carrying raw but keeping handle, fieldtype and
// augmentable, so the replacement is augmented with the original semantics.
func (v Value) WithRaw(raw any) Value {
	v.raw = raw
	return v
}

// IsZero reports whether the value carries neither data nor metadata.
func (v Value) IsZero() bool {
	return v.raw == nil && v.handle == "" && v.fieldtype == nil && v.augmentable == nil
}
