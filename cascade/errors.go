package cascade

import "errors"

var (
	// ErrNoLocale indicates the host yields no locale to resolve defaults for.
	ErrNoLocale = errors.New("cascade: no locale")

	// ErrNoData indicates the host carries no SEO-bearing data.
	ErrNoData = errors.New("cascade: no page data")

	// ErrInvalidConfig indicates a Config field has an unusable value.
	ErrInvalidConfig = errors.New("cascade: invalid config")

	// ErrBuildPanic indicates a pipeline stage panicked. The cascade is left
	// with an empty mapping.
	ErrBuildPanic = errors.New("cascade: build panicked")
)
