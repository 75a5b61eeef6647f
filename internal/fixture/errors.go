package fixture

import "errors"

var (
	// ErrInvalidFixture indicates a fixture document that cannot be decoded.
	ErrInvalidFixture = errors.New("fixture: invalid document")

	// ErrUnknownSite indicates a reference to a site the fixture does not declare.
	ErrUnknownSite = errors.New("fixture: unknown site")

	// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
	ErrMissingEnv = errors.New("fixture: missing environment variables")

	// ErrUnknownKind indicates an item kind other than entry or term.
	ErrUnknownKind = errors.New("fixture: unknown item kind")
)
