package blueprint

import "strings"

// Source value sentinels of the seo_source fieldtype.
const (
	SourceDefault = "@default"
	SourceAuto    = "@auto"
	SourceNull    = "@null"
)

// Field declares one blueprint field.
type Field struct {
	Handle string
	// Type is the fieldtype handle.
	Type string
	// Section marks a grouping field that carries no data.
	Section bool
	// Default is used when the container has no value.
	Default any
	// Source is the wrapped field of a seo_source field.
	Source *Field
	// Auto names the container field an "@auto" source value reads.
	Auto string
}

// Blueprint is an ordered set of fields.
type Blueprint struct {
	Handle string
	Fields []Field
}

// Field returns the field with the given handle.
func (b Blueprint) Field(handle string) (Field, bool) {
	for _, f := range b.Fields {
		if f.Handle == handle {
			return f, true
		}
	}
	return Field{}, false
}

// Handles returns every field handle in order.
func (b Blueprint) Handles() []string {
	out := make([]string, 0, len(b.Fields))
	for _, f := range b.Fields {
		out = append(out, f.Handle)
	}
	return out
}

// SectionHandles returns the handles of section fields.
func (b Blueprint) SectionHandles() []string {
	var out []string
	for _, f := range b.Fields {
		if f.Section {
			out = append(out, f.Handle)
		}
	}
	return out
}

// WithDefaults returns a copy whose field defaults are taken from values.
// Keys of values may carry prefix; a seo_source field stores the default on
// its wrapped field.
func (b Blueprint) WithDefaults(prefix string, values map[string]any) Blueprint {
	out := Blueprint{Handle: b.Handle, Fields: make([]Field, len(b.Fields))}
	for i, f := range b.Fields {
		v, ok := values[f.Handle]
		if !ok {
			v, ok = values[strings.TrimPrefix(f.Handle, prefix)]
		}
		if ok && !f.Section {
			if f.Source != nil {
				src := *f.Source
				src.Default = v
				f.Source = &src
			} else {
				f.Default = v
			}
		}
		out.Fields[i] = f
	}
	return out
}

func section(handle string) Field {
	return Field{Handle: handle, Type: TypeSection, Section: true}
}

func sourced(handle, inner string) Field {
	return Field{Handle: handle, Type: TypeSource, Source: &Field{Handle: handle, Type: inner}}
}

// OnPage returns the page-level SEO blueprint shared by entries and terms.
func OnPage() Blueprint {
	title := sourced("seo_title", TypeText)
	title.Auto = "title"

	return Blueprint{
		Handle: "on_page_seo",
		Fields: []Field{
			section("seo_section_title_description"),
			title,
			sourced("seo_description", TypeTextarea),

			section("seo_section_og"),
			sourced("seo_og_title", TypeText),
			sourced("seo_og_description", TypeTextarea),
			sourced("seo_og_image", TypeAssets),

			section("seo_section_social_images_generator"),
			sourced("seo_generate_social_images", TypeToggle),
			{Handle: "seo_generated_og_image", Type: TypeAssets},
			{Handle: "seo_generated_twitter_image", Type: TypeAssets},

			section("seo_section_twitter"),
			sourced("seo_twitter_card", TypeSelect),
			sourced("seo_twitter_title", TypeText),
			sourced("seo_twitter_description", TypeTextarea),
			sourced("seo_twitter_summary_image", TypeAssets),
			sourced("seo_twitter_summary_large_image", TypeAssets),

			section("seo_section_canonical_url"),
			sourced("seo_canonical_type", TypeSelect),
			{Handle: "seo_canonical_entry", Type: TypeEntries},
			{Handle: "seo_canonical_custom", Type: TypeText},

			section("seo_section_indexing"),
			sourced("seo_noindex", TypeToggle),
			sourced("seo_nofollow", TypeToggle),

			section("seo_section_sitemap"),
			sourced("seo_sitemap_enabled", TypeToggle),
			sourced("seo_sitemap_priority", TypeSelect),
			sourced("seo_sitemap_change_frequency", TypeSelect),

			section("seo_section_json_ld"),
			sourced("seo_json_ld", TypeCode),
		},
	}
}

// SiteSet returns the blueprint of a site-scoped default set, if known.
func SiteSet(handle string) (Blueprint, bool) {
	switch handle {
	case "general":
		return Blueprint{Handle: handle, Fields: []Field{
			section("section_titles"),
			{Handle: "site_name", Type: TypeText},
			{Handle: "title_separator", Type: TypeSelect, Default: "|"},
			{Handle: "site_name_position", Type: TypeSelect, Default: "end"},
			section("section_breadcrumbs"),
			{Handle: "use_breadcrumbs", Type: TypeToggle, Default: false},
			section("section_json_ld"),
			{Handle: "site_json_ld_type", Type: TypeSelect, Default: "none"},
			{Handle: "organization_name", Type: TypeText},
			{Handle: "organization_logo", Type: TypeAssets},
			{Handle: "person_name", Type: TypeText},
			{Handle: "site_json_ld", Type: TypeCode},
		}}, true
	case "indexing":
		return Blueprint{Handle: handle, Fields: []Field{
			section("section_crawling"),
			{Handle: "noindex", Type: TypeToggle, Default: false},
			{Handle: "nofollow", Type: TypeToggle, Default: false},
		}}, true
	case "social_media":
		return Blueprint{Handle: handle, Fields: []Field{
			section("section_og"),
			{Handle: "og_image", Type: TypeAssets},
			section("section_twitter"),
			{Handle: "twitter_handle", Type: TypeText},
		}}, true
	default:
		return Blueprint{}, false
	}
}

// ContentSet returns the blueprint of a page-type (collections, taxonomies)
// default set: the page-level fields without the per-page only ones.
func ContentSet() Blueprint {
	page := OnPage()
	out := Blueprint{Handle: "content_defaults"}
	for _, f := range page.Fields {
		switch f.Handle {
		case "seo_title", "seo_canonical_entry", "seo_canonical_custom",
			"seo_generated_og_image", "seo_generated_twitter_image":
			continue
		}
		if f.Source != nil {
			f = *f.Source
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}
