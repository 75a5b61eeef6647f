package schemaorg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Organization(t *testing.T) {
	org := NewOrganization("Müller & Söhne", "https://acme.test")
	org.Logo = NewImageObject("https://acme.test/logo.png", 300, 100)

	got, err := Encode(org)
	require.NoError(t, err)

	assert.Equal(t,
		`{"@context":"https://schema.org","@type":"Organization","logo":{"@type":"ImageObject","url":"https://acme.test/logo.png","width":300,"height":100},"name":"Müller & Söhne","url":"https://acme.test"}`,
		got)
}

func TestEncode_Person(t *testing.T) {
	got, err := Encode(NewPerson("Jane", "https://jane.test"))
	require.NoError(t, err)
	assert.Equal(t, `{"@context":"https://schema.org","@type":"Person","name":"Jane","url":"https://jane.test"}`, got)
}

func TestEncode_BreadcrumbList(t *testing.T) {
	list := NewBreadcrumbList(
		NewListItem(1, "Home", "https://acme.test"),
		NewListItem(2, "Blog", "https://acme.test/blog"),
	)

	got, err := Encode(list)
	require.NoError(t, err)
	assert.Equal(t,
		`{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[{"@type":"ListItem","position":1,"name":"Home","item":"https://acme.test"},{"@type":"ListItem","position":2,"name":"Blog","item":"https://acme.test/blog"}]}`,
		got)
}

func TestEncode_EmptyBreadcrumbList(t *testing.T) {
	got, err := Encode(NewBreadcrumbList())
	require.NoError(t, err)
	assert.Equal(t, `{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[]}`, got)
}
