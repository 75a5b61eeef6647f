package blueprint

import "errors"

var (
	// ErrDuplicateType indicates a fieldtype handle is already registered.
	ErrDuplicateType = errors.New("blueprint: fieldtype already registered")

	// ErrInvalidType indicates a nil fieldtype or an empty handle.
	ErrInvalidType = errors.New("blueprint: invalid fieldtype")
)
