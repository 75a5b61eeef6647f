package content

import (
	"regexp"
	"strings"
)

var repeatedSlashes = regexp.MustCompile(`([^:])//+`)

// Tidy collapses repeated slashes and removes a trailing slash. The scheme
// separator and a bare "/" are preserved.
func Tidy(u string) string {
	u = repeatedSlashes.ReplaceAllString(u, "$1/")
	if strings.HasPrefix(u, "//") && !strings.Contains(u, "://") {
		u = "/" + strings.TrimLeft(u, "/")
	}
	if len(u) > 1 && strings.HasSuffix(u, "/") && !strings.HasSuffix(u, "://") {
		u = strings.TrimRight(u, "/")
		if u == "" {
			u = "/"
		}
	}
	return u
}

// Assemble joins URL parts with single slashes and tidies the result.
func Assemble(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return Tidy(strings.Join(kept, "/"))
}

// EnsureLeadingSlash prefixes u with "/" when missing.
func EnsureLeadingSlash(u string) string {
	if strings.HasPrefix(u, "/") {
		return u
	}
	return "/" + u
}

// Segments splits a path into its non-empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
