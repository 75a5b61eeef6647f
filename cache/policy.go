package cache

// Policy configures memoization behavior.
type Policy struct {
	// Disabled turns every Memo lookup into a fresh computation.
	Disabled bool
}

// DefaultPolicy returns the default policy: memoization enabled.
func DefaultPolicy() Policy {
	return Policy{}
}

// NoCachePolicy returns a policy that disables memoization entirely.
func NoCachePolicy() Policy {
	return Policy{Disabled: true}
}

// ShouldCache returns true if memoization is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return !p.Disabled
}
