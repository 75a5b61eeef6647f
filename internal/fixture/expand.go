package fixture

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
)

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${VAR} references in a fixture document. Every
// referenced variable must be set; "$$" yields a literal "$". Bare $VAR is
// left alone so values such as prices survive.
func expandEnv(doc string) (string, error) {
	const dollar = "\x00SEOCASCADE_DOLLAR\x00"
	doc = strings.ReplaceAll(doc, "$$", dollar)

	var missing []string
	doc = envRef.ReplaceAllStringFunc(doc, func(ref string) string {
		name := envRef.FindStringSubmatch(ref)[1]
		v, ok := os.LookupEnv(name)
		if !ok {
			if !slices.Contains(missing, name) {
				missing = append(missing, name)
			}
			return ref
		}
		return v
	})
	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return strings.ReplaceAll(doc, dollar, "$"), nil
}
