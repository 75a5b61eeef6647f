package cascade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/cache"
)

func TestSiteDefaults_UnknownLocaleIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())

	got, err := r.SiteDefaults(context.Background(), "ja", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestSiteDefaults_NoLocale(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())

	got, err := r.SiteDefaults(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrNoLocale)
	assert.Equal(t, 0, got.Len())
}

func TestSiteDefaults_FlattensEnabledSets(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())

	got, err := r.SiteDefaults(context.Background(), "en", nil)
	require.NoError(t, err)

	for _, key := range []string{"site_name", "title_separator", "twitter_handle", "noindex"} {
		assert.True(t, got.Has(key), key)
	}
	name, _ := got.Get("site_name")
	assert.Equal(t, "Acme", name.Value())
}

func TestSiteDefaults_OriginFallback(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())

	got, err := r.SiteDefaults(context.Background(), "de", nil)
	require.NoError(t, err)

	name, _ := got.Get("site_name")
	sep, _ := got.Get("title_separator")
	assert.Equal(t, "Acme DE", name.Value())
	assert.Equal(t, "-", sep.Value(), "inherited from the en localization")
}

func TestSiteDefaults_AmbientOverrideKeepsMetadata(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())

	ambient := NewVars().Set("site_name", "Custom View").Set("unrelated", 1)
	got, err := r.SiteDefaults(context.Background(), "en", ambient)
	require.NoError(t, err)

	v, ok := got.Get("site_name")
	require.True(t, ok)
	assert.Equal(t, "Custom View", v.Raw())
	assert.Equal(t, "site_name", v.Handle())
	require.NotNil(t, v.Fieldtype())
	assert.Equal(t, blueprint.TypeText, v.Fieldtype().Handle())
	assert.IsType(t, blueprint.MapContainer{}, v.Augmentable())
	assert.False(t, got.Has("unrelated"))
}

func TestSiteDefaults_MemoizedPerLocale(t *testing.T) {
	env := newTestEnv(t)
	provider := &countingProvider{Provider: env.store}
	deps := env.deps()
	deps.Defaults = provider
	r := NewResolver(deps)
	ctx := context.Background()

	first, err := r.SiteDefaults(ctx, "en", nil)
	require.NoError(t, err)
	second, err := r.SiteDefaults(ctx, "en", NewVars().Set("site_name", "ignored"))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, provider.enabled.Load())

	_, _ = r.SiteDefaults(ctx, "de", nil)
	assert.EqualValues(t, 2, provider.enabled.Load())
}

func TestSiteDefaults_NoCachePolicyRecomputes(t *testing.T) {
	env := newTestEnv(t)
	provider := &countingProvider{Provider: env.store}
	deps := env.deps()
	deps.Defaults = provider
	deps.Memo = cache.NewMemo(cache.NewMemoryCache(), nil, cache.NoCachePolicy())
	r := NewResolver(deps)

	_, _ = r.SiteDefaults(context.Background(), "en", nil)
	_, _ = r.SiteDefaults(context.Background(), "en", nil)
	assert.EqualValues(t, 2, provider.enabled.Load())
}

func TestPageData_KeepsOnlyAmbientKeys(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())
	host := &viewHost{render: env.helloRender(t), repo: env.repo}

	got, err := r.PageData(context.Background(), host)
	require.NoError(t, err)

	assert.Equal(t, []string{"seo_title", "seo_description"}, got.Keys())
	title, _ := got.Get("seo_title")
	assert.Equal(t, "Hello", title.Value(), "@auto reads the model title")
}

func TestPageData_DefaultSource(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())
	render := env.helloRender(t)
	render.Data = NewVars().Set("seo_description", "@default")

	got, err := r.PageData(context.Background(), &viewHost{render: render})
	require.NoError(t, err)

	desc, _ := got.Get("seo_description")
	assert.Equal(t, "Default description", desc.Value())
}

func TestPageData_NoData(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.deps())

	// A plain route has a site but no model or taxonomy.
	got, err := r.PageData(context.Background(), &viewHost{render: Render{Site: env.site(t, "en")}})
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, 0, got.Len())
}

func TestPageData_Memoized(t *testing.T) {
	env := newTestEnv(t)
	provider := &countingProvider{Provider: env.store}
	deps := env.deps()
	deps.Defaults = provider
	r := NewResolver(deps)
	host := &viewHost{render: env.helloRender(t)}

	_, _ = r.PageData(context.Background(), host)
	_, _ = r.PageData(context.Background(), host)
	assert.EqualValues(t, 1, provider.values.Load())
}
