package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/seocascade/content"
)

func TestAugment_SourceSentinels(t *testing.T) {
	bp := OnPage().WithDefaults("seo_", map[string]any{
		"seo_description": "Default description",
		"noindex":         true,
	})
	data := MapContainer{
		"title":           "Blog",
		"seo_title":       SourceAuto,
		"seo_description": SourceDefault,
		"seo_og_title":    SourceNull,
		"seo_noindex":     nil,
		"seo_nofollow":    "true",
	}

	got := NewAugmenter(nil).Augment(bp, data)

	tests := []struct {
		key  string
		want any
	}{
		{"seo_title", "Blog"},
		{"seo_description", "Default description"},
		{"seo_og_title", nil},
		{"seo_noindex", true},
		{"seo_nofollow", true},
		{"seo_section_og", nil},
	}
	for _, tt := range tests {
		v, ok := got.Get(tt.key)
		require.True(t, ok, "missing %s", tt.key)
		assert.Equal(t, tt.want, v.Value(), tt.key)
	}
	assert.Equal(t, bp.Handles(), got.Keys())
}

func TestAugment_PlainDefaults(t *testing.T) {
	bp, ok := SiteSet("general")
	require.True(t, ok)

	got := NewAugmenter(nil).Augment(bp, MapContainer{"site_name": "Acme"})

	name, _ := got.Get("site_name")
	assert.Equal(t, "Acme", name.Value())
	sep, _ := got.Get("title_separator")
	assert.Equal(t, "|", sep.Value())
	crumbs, _ := got.Get("use_breadcrumbs")
	assert.Equal(t, false, crumbs.Value())
}

func TestAugment_EntriesAndAssets(t *testing.T) {
	repo := content.NewMemory()
	repo.AddSite(&content.StaticSite{SiteHandle: "en", Base: "https://acme.test"})
	repo.AddItem(content.Item{ID: "about", Site: "en", Path: "/about"})

	types := NewRegistry(WithRepository(repo))
	bp := Blueprint{Fields: []Field{
		{Handle: "canonical_entry", Type: TypeEntries},
		{Handle: "logo", Type: TypeAssets},
	}}
	logo := &content.StaticAsset{Path: "logo.png", Base: "https://acme.test", W: 10, H: 20}

	got := NewAugmenter(types).Augment(bp, MapContainer{
		"canonical_entry": []any{"about"},
		"logo":            logo,
	})

	entry, _ := got.Get("canonical_entry")
	require.NotNil(t, entry.Value())
	assert.Equal(t, "https://acme.test/about", entry.Value().(content.Localizable).AbsoluteURL())
	asset, _ := got.Get("logo")
	assert.Equal(t, logo, asset.Value())
}

func TestCodeType(t *testing.T) {
	ct := codeType{}
	assert.Equal(t, `{"a":1}`, ct.Augment(Field{}, map[string]any{"code": `{"a":1}`, "mode": "javascript"}, nil))
	assert.Nil(t, ct.Augment(Field{}, map[string]any{"code": ""}, nil))
	assert.Nil(t, ct.Augment(Field{}, nil, nil))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.Register(textType{handle: TypeText}), ErrDuplicateType)
	assert.ErrorIs(t, r.Register(textType{}), ErrInvalidType)
	require.NoError(t, r.Register(textType{handle: "slug"}))
	assert.Contains(t, r.List(), "slug")
}

func TestContentSet_DropsPerPageFields(t *testing.T) {
	bp := ContentSet()
	_, ok := bp.Field("seo_title")
	assert.False(t, ok)
	f, ok := bp.Field("seo_noindex")
	require.True(t, ok)
	assert.Equal(t, TypeToggle, f.Type)
}
