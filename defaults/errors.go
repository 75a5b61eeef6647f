package defaults

import "errors"

var (
	// ErrUnknownType indicates a set type other than site, collections or taxonomies.
	ErrUnknownType = errors.New("defaults: unknown set type")

	// ErrMissingHandle indicates a set or localization without a handle.
	ErrMissingHandle = errors.New("defaults: handle is required")

	// ErrMalformedDocument indicates a YAML document that is not a mapping.
	ErrMalformedDocument = errors.New("defaults: malformed document")

	// ErrOriginCycle indicates localizations whose origins form a loop.
	ErrOriginCycle = errors.New("defaults: origin cycle")
)
