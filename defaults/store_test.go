package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadYAMLWithOrigin(t *testing.T) {
	st := NewStore(nil)
	require.NoError(t, st.LoadYAML(TypeSite, "general", "en", []byte(`
site_name: Acme
title_separator: "-"
site_name_position: end
`)))
	require.NoError(t, st.LoadYAML(TypeSite, "general", "de", []byte(`
origin: en
site_name: Acme GmbH
`)))

	values := st.Values(Data{Type: TypeSite, Handle: "general", Locale: "de"})

	assert.Equal(t, "Acme GmbH", values["site_name"])
	assert.Equal(t, "-", values["title_separator"])
	assert.NotContains(t, values, "origin")
}

func TestStore_Augmented(t *testing.T) {
	st := NewStore(nil)
	require.NoError(t, st.LoadYAML(TypeSite, "general", "en", []byte("site_name: Acme\n")))

	got := st.Augmented(Data{Type: TypeSite, Handle: "general", Locale: "en"})

	name, ok := got.Get("site_name")
	require.True(t, ok)
	assert.Equal(t, "Acme", name.Value())
	assert.Equal(t, "site_name", name.Handle())
	require.NotNil(t, name.Fieldtype())
	assert.Equal(t, "text", name.Fieldtype().Handle())

	sep, _ := got.Get("title_separator")
	assert.Equal(t, "|", sep.Value(), "blueprint default applies")
	assert.True(t, got.Has("section_titles"), "section fields are left for the cascade to drop")
}

func TestStore_AugmentedUnknownBlueprint(t *testing.T) {
	st := NewStore(nil)
	require.NoError(t, st.LoadYAML(TypeSite, "analytics", "en", []byte("gtm: GTM-1\nfathom: ABC\n")))

	got := st.Augmented(Data{Type: TypeSite, Handle: "analytics", Locale: "en"})
	assert.Equal(t, []string{"fathom", "gtm"}, got.Keys())
}

func TestStore_EnabledInType(t *testing.T) {
	st := NewStore(nil)
	require.NoError(t, st.LoadYAML(TypeSite, "indexing", "en", []byte("noindex: true\n")))
	require.NoError(t, st.LoadYAML(TypeSite, "general", "en", []byte("site_name: Acme\n")))
	require.NoError(t, st.LoadYAML(TypeCollections, "pages", "en", []byte("seo_noindex: false\n")))

	sets := st.EnabledInType(TypeSite)
	require.Len(t, sets, 2)
	assert.Equal(t, "general", sets[0].Handle)

	st.SetEnabled(TypeSite, "general", false)
	sets = st.EnabledInType(TypeSite)
	require.Len(t, sets, 1)
	assert.Equal(t, "indexing", sets[0].Handle)
	assert.Empty(t, st.Values(Data{Type: TypeSite, Handle: "general", Locale: "en"}))
}

func TestStore_Errors(t *testing.T) {
	st := NewStore(nil)
	assert.ErrorIs(t, st.LoadYAML("pages", "x", "en", []byte("a: 1\n")), ErrUnknownType)
	assert.ErrorIs(t, st.LoadYAML(TypeSite, "general", "en", []byte("- a\n- b\n")), ErrMalformedDocument)
	assert.ErrorIs(t, st.LoadYAML(TypeSite, "general", "", []byte("a: 1\n")), ErrMissingHandle)
	assert.ErrorIs(t, st.Save(Set{Type: TypeSite}), ErrMissingHandle)
}

func TestSet_OriginCycle(t *testing.T) {
	s, err := NewSet(TypeSite, "general")
	require.NoError(t, err)
	s = s.WithLocalization(Localization{Site: "en", Origin: "de"})
	s = s.WithLocalization(Localization{Site: "de", Origin: "en"})

	_, err = s.Values("en")
	assert.ErrorIs(t, err, ErrOriginCycle)
	values, err := s.Values("fr")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestStore_AugmentedUnlocalized(t *testing.T) {
	st := NewStore(nil)
	require.NoError(t, st.LoadYAML(TypeSite, "general", "en", []byte("site_name: Acme\n")))

	got := st.Augmented(Data{Type: TypeSite, Handle: "general", Locale: "fr"})
	assert.Equal(t, 0, got.Len())
}
