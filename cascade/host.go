package cascade

import (
	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/defaults"
)

// Hreflang is one alternate-locale advertisement of a page.
type Hreflang struct {
	URL    string `json:"url"`
	Locale string `json:"locale"`
}

// Host is the context a cascade is built for. The view and query variants
// provide one each; custom hosts can be passed to New.
//
// Contract:
// - Methods are called from the goroutine that owns the cascade.
// - Absent information is reported with zero values, never a panic.
type Host interface {
	// Variant names the host kind in telemetry.
	Variant() string

	// Ambient returns the data the host renders with.
	Ambient() Ambient

	// Locale returns the handle of the site defaults resolve for, or "".
	Locale() string

	// Site returns the current site, or nil.
	Site() content.Site

	// DefaultsData identifies the page-type default set, if the host has one.
	DefaultsData() (defaults.Data, bool)

	// Overrides returns values forced onto the final cascade.
	Overrides() map[string]any

	// Model returns the entry or term backing the page.
	Model() (content.Localizable, bool)

	// PageTitle returns the page title given the resolved SEO title, which
	// may be "".
	PageTitle(seoTitle string) string

	// URL returns the public URL of l.
	URL(l content.Linkable) string

	// CurrentURL returns the URL of the page being resolved.
	CurrentURL() string

	// Homepage reports whether the page is the site's homepage.
	Homepage() bool

	// Path returns the page path relative to the current site.
	Path() string

	// Paginator returns the active paginator, or nil.
	Paginator() content.Paginator

	// RequestedPage returns the requested page number, 0 when none.
	RequestedPage() int

	// Alternates returns hreflang entries for pages no single model backs.
	// ok is false when the model's variants should be used.
	Alternates() (alternates []Hreflang, ok bool)
}
