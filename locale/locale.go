package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// XDefault is the hreflang tag for the fallback variant of a page.
const XDefault = "x-default"

// Parse returns the BCP-47 form of a site locale.
// Encoding suffixes are dropped and underscores become hyphens.
// Unparseable input is returned in that cleaned-up form rather than failing.
func Parse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if i := strings.IndexAny(cleaned, ".@"); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.ReplaceAll(cleaned, "_", "-")
	if cleaned == "" {
		return ""
	}

	tag, err := language.Parse(cleaned)
	if err != nil {
		return cleaned
	}
	return tag.String()
}

// Base returns the language subtag of a locale ("de" for "de_CH").
func Base(raw string) string {
	parsed := Parse(raw)
	tag, err := language.Parse(parsed)
	if err != nil {
		if i := strings.Index(parsed, "-"); i > 0 {
			return parsed[:i]
		}
		return parsed
	}
	base, _ := tag.Base()
	return base.String()
}
