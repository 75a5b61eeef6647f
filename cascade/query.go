package cascade

import (
	"context"
	"strings"

	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/defaults"
)

// VariantQuery names the direct content read variant.
const VariantQuery = "query"

// QueryOption configures NewQuery.
type QueryOption func(*queryHost)

// WithBaseURL rebuilds every URL on base instead of the site's host.
func WithBaseURL(base string) QueryOption {
	return func(h *queryHost) { h.baseURL = base }
}

// WithOverrides forces final values by key name.
func WithOverrides(overrides map[string]any) QueryOption {
	return func(h *queryHost) { h.overrides = overrides }
}

// NewQuery builds the cascade of model read outside a page render.
func NewQuery(ctx context.Context, deps Deps, model content.Localizable, opts ...QueryOption) *Cascade {
	h := &queryHost{model: model}
	for _, opt := range opts {
		opt(h)
	}
	return New(ctx, deps, h, QueryRegistry())
}

type queryHost struct {
	model     content.Localizable
	baseURL   string
	overrides map[string]any
}

func (h *queryHost) Variant() string { return VariantQuery }

func (h *queryHost) Ambient() Ambient { return modelVars{model: h.model} }

func (h *queryHost) Site() content.Site {
	if h.model == nil {
		return nil
	}
	return h.model.Site()
}

func (h *queryHost) Locale() string {
	site := h.Site()
	if site == nil {
		return ""
	}
	return site.Handle()
}

func (h *queryHost) DefaultsData() (defaults.Data, bool) {
	locale := h.Locale()
	if locale == "" {
		return defaults.Data{}, false
	}
	typ := defaults.TypeCollections
	if h.model.Kind() == content.KindTerm {
		typ = defaults.TypeTaxonomies
	}
	return defaults.Data{Type: typ, Handle: h.model.Parent(), Locale: locale, Sites: h.model.Sites()}, true
}

func (h *queryHost) Overrides() map[string]any { return h.overrides }

func (h *queryHost) Model() (content.Localizable, bool) {
	return h.model, h.model != nil
}

func (h *queryHost) PageTitle(seoTitle string) string {
	if seoTitle != "" || h.model == nil {
		return seoTitle
	}
	return h.model.Title()
}

func (h *queryHost) URL(l content.Linkable) string {
	if l == nil {
		return ""
	}
	if h.baseURL != "" {
		return content.Assemble(h.baseURL, l.URL())
	}
	return l.AbsoluteURL()
}

func (h *queryHost) CurrentURL() string {
	if h.model == nil {
		return ""
	}
	return h.URL(h.model)
}

func (h *queryHost) Homepage() bool {
	site := h.Site()
	return site != nil && h.model.AbsoluteURL() != "" && h.model.AbsoluteURL() == site.AbsoluteURL()
}

// Path strips the site's path from the model URL.
func (h *queryHost) Path() string {
	site := h.Site()
	if site == nil {
		return ""
	}
	u := h.model.URL()
	prefix := strings.TrimSuffix(site.URL(), "/")
	if prefix != "" && (u == prefix || strings.HasPrefix(u, prefix+"/")) {
		u = strings.TrimPrefix(u, prefix)
	}
	return content.EnsureLeadingSlash(u)
}

func (h *queryHost) Paginator() content.Paginator { return nil }

func (h *queryHost) RequestedPage() int { return 0 }

func (h *queryHost) Alternates() ([]Hreflang, bool) { return nil, false }

var _ Host = (*queryHost)(nil)
