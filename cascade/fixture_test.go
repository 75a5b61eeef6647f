package cascade

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/cache"
	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/defaults"
	"github.com/jonwraymond/seocascade/socialimage"
)

const (
	generalEN = `
site_name: Acme
title_separator: "-"
site_name_position: end
use_breadcrumbs: true
site_json_ld_type: none
`
	generalDE = `
origin: en
site_name: Acme DE
`
	socialEN = `
twitter_handle: acme
`
	indexingEN = `
noindex: false
nofollow: false
`
	pagesEN = `
seo_description: Default description
seo_twitter_card: summary_large_image
`
)

func newTestRepo() *content.Memory {
	m := content.NewMemory()
	m.AddSite(&content.StaticSite{SiteHandle: "en", SiteName: "Acme", SiteLocale: "en_US", Base: "https://acme.test"})
	m.AddSite(&content.StaticSite{SiteHandle: "de", SiteName: "Acme DE", SiteLocale: "de_DE", Base: "https://acme.test/de", Path: "/de"})
	m.AddSite(&content.StaticSite{SiteHandle: "fr", SiteName: "Acme FR", SiteLocale: "fr_FR", Base: "https://acme.test/fr", Path: "/fr"})
	m.AddCollection(content.Collection{Handle: "pages", Sites: []string{"en", "de", "fr"}})
	m.AddTaxonomy(content.StaticTaxonomy{TaxonomyHandle: "tags", TaxonomyTitle: "Tags", TaxonomySites: []string{"en", "de"}, CollectionHandle: "blog"})

	m.AddItem(content.Item{ID: "home", Parent: "pages", Site: "en", Title: "Home", Path: "/"})
	m.AddItem(content.Item{ID: "blog", Parent: "pages", Site: "en", Title: "Blog", Path: "/blog"})
	m.AddItem(content.Item{ID: "hello", Parent: "pages", Site: "en", Title: "Hello", Path: "/blog/hello", Data: map[string]any{
		"seo_title":       "@auto",
		"seo_description": "Hello world",
	}})
	m.AddItem(content.Item{ID: "hello-de", Parent: "pages", Site: "de", Title: "Hallo", Path: "/blog/hallo", Origin: "hello"})
	m.AddItem(content.Item{ID: "hello-fr", Parent: "pages", Site: "fr", Title: "Bonjour", Path: "/blog/bonjour", Origin: "hello", Draft: true})
	m.AddItem(content.Item{ID: "go", Kind: content.KindTerm, Parent: "tags", Site: "en", Title: "Go", Path: "/blog/tags/go"})
	m.AddItem(content.Item{ID: "go-de", Kind: content.KindTerm, Parent: "tags", Site: "de", Title: "Go", Path: "/blog/tags/go", Origin: "go"})

	m.AddAsset("img/logo.png", &content.StaticAsset{Path: "img/logo.png", Base: "https://acme.test", W: 300, H: 100})
	m.AddAsset("img/card.png", &content.StaticAsset{Path: "img/card.png", Base: "https://acme.test", W: 240, H: 240})
	return m
}

// testEnv is a repository plus default store wired like a real request.
type testEnv struct {
	repo  *content.Memory
	store *defaults.Store
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	repo := newTestRepo()
	augmenter := blueprint.NewAugmenter(blueprint.NewRegistry(
		blueprint.WithRepository(repo),
		blueprint.WithAssets(repo),
	))
	store := defaults.NewStore(augmenter)

	load := func(typ, handle, site, doc string) {
		require.NoError(t, store.LoadYAML(typ, handle, site, []byte(doc)))
	}
	load(defaults.TypeSite, "general", "en", generalEN)
	load(defaults.TypeSite, "general", "de", generalDE)
	load(defaults.TypeSite, "social_media", "en", socialEN)
	load(defaults.TypeSite, "indexing", "en", indexingEN)
	load(defaults.TypeCollections, "pages", "en", pagesEN)

	return testEnv{repo: repo, store: store}
}

// deps returns fresh Deps with a private memo.
func (e testEnv) deps() Deps {
	return Deps{
		Repository: e.repo,
		Assets:     e.repo,
		Defaults:   e.store,
		Memo:       cache.NewRequestMemo(),
	}
}

func (e testEnv) model(t *testing.T, id string) content.Localizable {
	t.Helper()
	m, ok := e.repo.Find(id)
	require.True(t, ok, "fixture model %q", id)
	return m
}

func (e testEnv) site(t *testing.T, handle string) content.Site {
	t.Helper()
	s, ok := e.repo.Site(handle)
	require.True(t, ok, "fixture site %q", handle)
	return s
}

// helloRender is the live render of the "hello" entry.
func (e testEnv) helloRender(t *testing.T) Render {
	return Render{
		Data: NewVars().
			Set("title", "Hello").
			Set("seo_title", "@auto").
			Set("seo_description", "Hello world"),
		Site:  e.site(t, "en"),
		Model: e.model(t, "hello"),
		Path:  "/blog/hello",
	}
}

type pager struct{ current, last int }

func (p pager) CurrentPage() int { return p.current }
func (p pager) LastPage() int    { return p.last }

// countingProvider counts reads of the default sets.
type countingProvider struct {
	defaults.Provider
	enabled atomic.Int32
	values  atomic.Int32
}

func (p *countingProvider) EnabledInType(typ string) []defaults.Set {
	p.enabled.Add(1)
	return p.Provider.EnabledInType(typ)
}

func (p *countingProvider) Values(data defaults.Data) map[string]any {
	p.values.Add(1)
	return p.Provider.Values(data)
}

// countingFinder counts image spec lookups.
type countingFinder struct {
	socialimage.Finder
	calls atomic.Int32
}

func (f *countingFinder) Find(name string) (socialimage.Spec, bool) {
	f.calls.Add(1)
	return f.Finder.Find(name)
}
