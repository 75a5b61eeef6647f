// Package schemaorg builds the schema.org objects emitted as JSON-LD.
//
// Only the types the cascade produces are modelled. Encode writes compact
// JSON without HTML escaping, so non-ASCII text and "&" survive verbatim.
package schemaorg

import (
	"bytes"
	"encoding/json"
)

// Context is the JSON-LD context of every encoded document.
const Context = "https://schema.org"

// ImageObject is a schema.org ImageObject.
type ImageObject struct {
	Type   string `json:"@type"`
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// NewImageObject creates an ImageObject.
func NewImageObject(url string, width, height int) *ImageObject {
	return &ImageObject{Type: "ImageObject", URL: url, Width: width, Height: height}
}

// Organization is a schema.org Organization.
type Organization struct {
	Type string       `json:"@type"`
	Name string       `json:"name,omitempty"`
	URL  string       `json:"url,omitempty"`
	Logo *ImageObject `json:"logo,omitempty"`
}

// NewOrganization creates an Organization.
func NewOrganization(name, url string) *Organization {
	return &Organization{Type: "Organization", Name: name, URL: url}
}

// Person is a schema.org Person.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// NewPerson creates a Person.
func NewPerson(name, url string) *Person {
	return &Person{Type: "Person", Name: name, URL: url}
}

// ListItem is one item of a BreadcrumbList.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"`
	Item     string `json:"item,omitempty"`
}

// NewListItem creates a ListItem.
func NewListItem(position int, name, item string) ListItem {
	return ListItem{Type: "ListItem", Position: position, Name: name, Item: item}
}

// BreadcrumbList is a schema.org BreadcrumbList.
type BreadcrumbList struct {
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// NewBreadcrumbList creates a BreadcrumbList.
func NewBreadcrumbList(items ...ListItem) *BreadcrumbList {
	if items == nil {
		items = []ListItem{}
	}
	return &BreadcrumbList{Type: "BreadcrumbList", ItemListElement: items}
}

// Encode returns thing as a JSON-LD document with "@context" set.
func Encode(thing any) (string, error) {
	body, err := marshal(thing)
	if err != nil {
		return "", err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage, 1)
	}
	fields["@context"] = json.RawMessage(`"` + Context + `"`)

	out, err := marshal(fields)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
