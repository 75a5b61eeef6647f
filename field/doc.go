// Package field holds the raw values a cascade is merged from.
//
// A Value pairs a stored raw value with the metadata needed to turn it into
// its presentational form: the field handle, the fieldtype that augments it,
// and the data container it belongs to. A Mapping is an ordered, immutable
// collection of Values keyed by name; every operation returns a new Mapping,
// so a Mapping can be shared between cascades and goroutines once published.
package field
