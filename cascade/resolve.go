package cascade

import (
	"context"

	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/cache"
	"github.com/jonwraymond/seocascade/defaults"
	"github.com/jonwraymond/seocascade/field"
)

// Memo namespaces of the resolved layers.
const (
	// NamespaceSiteSets holds the flattened site default sets of a locale.
	// It depends on nothing but the default store.
	NamespaceSiteSets = "site_sets"
	// NamespaceSite holds the site layer after ambient overrides.
	NamespaceSite = "site"
	// NamespacePage holds the page layer.
	NamespacePage = "page"
)

// SharedMemo returns a memo for one request over shared, a cache that
// outlives requests. Only the flattened site default sets are shared, so
// changes to the default store show once their entries expire. Layers built
// from a page's ambient data stay in the request.
func SharedMemo(shared cache.Cache) *cache.Memo {
	return cache.NewSharedMemo(shared, NamespaceSite, NamespacePage)
}

// Resolver resolves the site and page layers of a cascade.
type Resolver struct {
	deps Deps
}

// NewResolver creates a resolver over deps.
func NewResolver(deps Deps) *Resolver {
	return &Resolver{deps: deps.withDefaults()}
}

// SiteDefaults returns the enabled site default sets of locale flattened into
// one mapping. A key also present in ambient takes the ambient raw value but
// keeps the default's handle, fieldtype and container.
//
// The result is memoized per locale; the first ambient seen for a locale
// wins. Without a locale the empty mapping is returned with ErrNoLocale.
func (r *Resolver) SiteDefaults(ctx context.Context, locale string, ambient Ambient) (*field.Mapping, error) {
	if locale == "" {
		return field.Empty(), ErrNoLocale
	}

	return cache.Once(ctx, r.deps.Memo, NamespaceSite, locale, func(ctx context.Context) (*field.Mapping, error) {
		base, err := r.siteSets(ctx, locale)
		if err != nil {
			return field.Empty(), err
		}
		if ambient == nil {
			return base, nil
		}

		var overrides []field.Value
		for _, key := range ambient.Keys() {
			original, ok := base.Get(key)
			if !ok {
				continue
			}
			raw, _ := ambient.Value(key)
			overrides = append(overrides, original.WithRaw(raw))
		}
		return base.Merge(field.NewMapping(overrides...)), nil
	})
}

func (r *Resolver) siteSets(ctx context.Context, locale string) (*field.Mapping, error) {
	return cache.Once(ctx, r.deps.Memo, NamespaceSiteSets, locale, func(context.Context) (*field.Mapping, error) {
		base := field.Empty()
		for _, set := range r.deps.Defaults.EnabledInType(defaults.TypeSite) {
			base = base.Merge(r.deps.Defaults.Augmented(defaults.Data{
				Type:   defaults.TypeSite,
				Handle: set.Handle,
				Locale: locale,
			}))
		}
		return base, nil
	})
}

// PageData returns the page-level SEO fields the host's ambient data sets,
// augmented against the page blueprint and in the ambient order. Blueprint
// defaults come from the host's page-type default set.
//
// The result is memoized per locale. A host without defaults data yields the
// empty mapping with ErrNoData.
func (r *Resolver) PageData(ctx context.Context, host Host) (*field.Mapping, error) {
	data, ok := host.DefaultsData()
	if !ok {
		return field.Empty(), ErrNoData
	}

	return cache.Once(ctx, r.deps.Memo, NamespacePage, data.Locale, func(context.Context) (*field.Mapping, error) {
		ambient := host.Ambient()
		if ambient == nil {
			return field.Empty(), nil
		}

		bp := blueprint.OnPage().WithDefaults(r.deps.Config.Prefix, r.deps.Defaults.Values(data))
		augmented := r.deps.Augmenter.Augment(bp, ambient)

		var values []field.Value
		for _, key := range ambient.Keys() {
			if v, ok := augmented.Get(key); ok {
				values = append(values, v)
			}
		}
		return field.NewMapping(values...), nil
	})
}
