package cache

import (
	"fmt"
	"strings"
)

// DefaultPrefix namespaces every key produced by DefaultKeyer.
const DefaultPrefix = "seocascade"

// Keyer builds cache keys from a component namespace and key parts.
//
// Contract:
// - Determinism: same inputs must produce the same key.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	Key(namespace string, parts ...string) (string, error)
}

// DefaultKeyer joins the prefix, namespace and parts with "::".
type DefaultKeyer struct {
	Prefix string
}

// NewDefaultKeyer creates a keyer using DefaultPrefix.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{Prefix: DefaultPrefix}
}

// Key generates a key.
// Format: <prefix>::<namespace>::<part>[::<part>...]
func (k *DefaultKeyer) Key(namespace string, parts ...string) (string, error) {
	if strings.TrimSpace(namespace) == "" {
		return "", fmt.Errorf("%w: empty namespace", ErrInvalidKey)
	}
	prefix := k.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	key := prefix + "::" + namespace
	for _, p := range parts {
		key += "::" + p
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
