package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MaxKeyLength bounds memo keys. Locale tags keep real keys far below it.
const MaxKeyLength = 256

var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Cache is the interface for request-scoped memoization.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: stored values are shared; callers must not mutate them.
// - Errors: Get should never error; it returns (nil, false) on miss.
type Cache interface {
	// Get retrieves a cached value. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) (any, bool)

	// Set stores a value for the remaining lifetime of the request.
	Set(ctx context.Context, key string, value any) error

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// Flush removes every value. Called at the request boundary.
	Flush(ctx context.Context)
}

// ValidateKey rejects blank keys, keys over MaxKeyLength and keys holding
// control characters.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return ErrInvalidKey
	case len(key) > MaxKeyLength:
		return ErrKeyTooLong
	case strings.IndexFunc(key, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: control character in %q", ErrInvalidKey, key)
	}
	return nil
}
