package cascade

import (
	"context"
	"net/http"

	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/defaults"
)

// VariantView names the live render variant.
const VariantView = "view"

// Render describes one live page render.
type Render struct {
	// Data holds the template variables of the page.
	Data Ambient

	// Site is the current site.
	Site content.Site

	// Model is the entry or term the page shows, if any.
	Model content.Localizable

	// Taxonomy is set on taxonomy index pages and on term pages.
	Taxonomy content.Taxonomy

	// Path is the request path relative to Site.
	Path string

	// CurrentURL is the absolute URL of the request without query.
	// Defaults to the model URL.
	CurrentURL string

	// Page is the requested page number, 0 when not requested.
	Page int

	// Paginator is the active paginator of the page, if any.
	Paginator content.Paginator

	// StatusCode is the response status; 0 means 200.
	StatusCode int

	// Homepage marks the site's homepage.
	Homepage bool

	// Overrides force final values by key name.
	Overrides map[string]any
}

// NewView builds the cascade of a live render.
func NewView(ctx context.Context, deps Deps, render Render) *Cascade {
	return New(ctx, deps, &viewHost{render: render, repo: deps.Repository}, ViewRegistry())
}

type viewHost struct {
	render Render
	repo   content.Repository
}

func (h *viewHost) Variant() string { return VariantView }

func (h *viewHost) Ambient() Ambient {
	if h.render.Data == nil {
		return NewVars()
	}
	return h.render.Data
}

func (h *viewHost) Locale() string {
	if h.render.Site == nil {
		return ""
	}
	return h.render.Site.Handle()
}

func (h *viewHost) Site() content.Site { return h.render.Site }

// taxonomyIndex reports a taxonomy index page, which no model backs.
func (h *viewHost) taxonomyIndex() bool {
	return h.render.Taxonomy != nil && h.render.Model == nil
}

func (h *viewHost) DefaultsData() (defaults.Data, bool) {
	locale := h.Locale()
	if locale == "" {
		return defaults.Data{}, false
	}

	m := h.render.Model
	switch {
	case m != nil && m.Kind() == content.KindEntry:
		return defaults.Data{Type: defaults.TypeCollections, Handle: m.Parent(), Locale: locale, Sites: m.Sites()}, true
	case m != nil && m.Kind() == content.KindTerm:
		return defaults.Data{Type: defaults.TypeTaxonomies, Handle: m.Parent(), Locale: locale, Sites: m.Sites()}, true
	case h.taxonomyIndex():
		t := h.render.Taxonomy
		return defaults.Data{Type: defaults.TypeTaxonomies, Handle: t.Handle(), Locale: locale, Sites: t.Sites()}, true
	default:
		return defaults.Data{}, false
	}
}

func (h *viewHost) Overrides() map[string]any { return h.render.Overrides }

func (h *viewHost) Model() (content.Localizable, bool) {
	return h.render.Model, h.render.Model != nil
}

func (h *viewHost) ambientTitle() string {
	v, _ := h.Ambient().Value("title")
	s, _ := v.(string)
	return s
}

func (h *viewHost) PageTitle(seoTitle string) string {
	if h.taxonomyIndex() {
		if t := h.ambientTitle(); t != "" {
			return t
		}
		return h.render.Taxonomy.Title()
	}
	if h.render.StatusCode == http.StatusNotFound {
		return "404"
	}
	if seoTitle != "" {
		return seoTitle
	}
	if t := h.ambientTitle(); t != "" {
		return t
	}
	if h.render.Model != nil {
		return h.render.Model.Title()
	}
	return ""
}

func (h *viewHost) URL(l content.Linkable) string {
	if l == nil {
		return ""
	}
	return l.AbsoluteURL()
}

func (h *viewHost) CurrentURL() string {
	if h.render.CurrentURL != "" {
		return h.render.CurrentURL
	}
	if h.render.Model != nil {
		return h.render.Model.AbsoluteURL()
	}
	return ""
}

func (h *viewHost) Homepage() bool { return h.render.Homepage }

func (h *viewHost) Path() string { return h.render.Path }

func (h *viewHost) Paginator() content.Paginator { return h.render.Paginator }

func (h *viewHost) RequestedPage() int { return h.render.Page }

// Alternates covers taxonomy index pages and the term pages of taxonomies
// mounted on a collection. Neither gets an x-default entry.
func (h *viewHost) Alternates() ([]Hreflang, bool) {
	t := h.render.Taxonomy
	if t == nil {
		return nil, false
	}

	if h.taxonomyIndex() {
		var out []Hreflang
		for _, handle := range t.Sites() {
			u := t.AbsoluteURLIn(handle)
			if u == "" {
				continue
			}
			out = append(out, Hreflang{URL: u, Locale: h.localeOf(handle)})
		}
		return out, true
	}

	term := h.render.Model
	if term.Kind() != content.KindTerm || t.Collection() == "" {
		return nil, false
	}
	var out []Hreflang
	for _, handle := range t.Sites() {
		variant, ok := term.In(handle)
		if !ok || variant.AbsoluteURL() == "" {
			continue
		}
		out = append(out, Hreflang{URL: variant.AbsoluteURL(), Locale: h.localeOf(handle)})
	}
	return out, true
}

func (h *viewHost) localeOf(siteHandle string) string {
	if h.repo == nil {
		return ""
	}
	site, ok := h.repo.Site(siteHandle)
	if !ok {
		return ""
	}
	return siteLocale(site)
}

var _ Host = (*viewHost)(nil)
