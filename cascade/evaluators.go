package cascade

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/locale"
	"github.com/jonwraymond/seocascade/observe"
	"github.com/jonwraymond/seocascade/schemaorg"
	"github.com/jonwraymond/seocascade/socialimage"
)

// str returns the raw value of key when it augments to a string.
func (c *Cascade) str(key string) string {
	s, _ := c.Value(key).(string)
	return s
}

// truthy reports whether the raw value of key is set and not false.
func (c *Cascade) truthy(key string) bool {
	switch v := c.Value(key).(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		return true
	}
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func firstOf(values ...string) any {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return nil
}

func (c *Cascade) siteName() string {
	if s := c.str("site_name"); s != "" {
		return s
	}
	if site := c.host.Site(); site != nil {
		return site.Name()
	}
	return ""
}

func (c *Cascade) pageTitle() string {
	return c.host.PageTitle(c.str("title"))
}

// twitterCard returns the computed card when the variant declares one and
// the raw card otherwise.
func (c *Cascade) twitterCard() string {
	if c.registry.Has("twitter_card") {
		s, _ := c.Get("twitter_card").(string)
		return s
	}
	return c.str("twitter_card")
}

func (c *Cascade) encode(key string, thing any) any {
	out, err := schemaorg.Encode(thing)
	if err != nil {
		c.logger.Error(context.Background(), "structured data encoding failed",
			observe.Field{Key: "key", Value: key},
			observe.Field{Key: "error", Value: err},
		)
		return nil
	}
	return out
}

func siteNameEval(c *Cascade) any {
	return nonEmpty(c.siteName())
}

func titleEval(c *Cascade) any {
	name := c.siteName()
	page := c.pageTitle()
	if page == "" {
		return nonEmpty(name)
	}

	sep := c.str("title_separator")
	if sep == "" {
		sep = c.deps.Config.TitleSeparator
	}

	switch c.str("site_name_position") {
	case "start":
		return name + " " + sep + " " + page
	case "disabled":
		return page
	default:
		return page + " " + sep + " " + name
	}
}

func ogTitleEval(c *Cascade) any {
	return firstOf(c.str("og_title"), c.pageTitle(), c.siteName())
}

func twitterTitleEval(c *Cascade) any {
	return firstOf(c.str("twitter_title"), c.pageTitle(), c.siteName())
}

func ogImageEval(c *Cascade) any {
	if c.truthy("generate_social_images") {
		if img := c.Value("generated_og_image"); img != nil {
			return img
		}
	}
	return c.Value("og_image")
}

func ogImagePresetEval(c *Cascade) any {
	spec, ok := c.deps.Images.Find(socialimage.OpenGraph)
	if !ok {
		return nil
	}
	return spec.Preset()
}

func twitterCardEval(c *Cascade) any {
	if card := c.str("twitter_card"); card != "" {
		return card
	}
	// Pages without page data, such as taxonomy and error pages, infer the
	// card from the images the defaults provide.
	if c.Value("twitter_summary_large_image") != nil {
		if spec, ok := c.deps.Images.Find(socialimage.TwitterSummaryLargeImage); ok {
			return spec.Card
		}
	}
	if c.Value("twitter_summary_image") != nil {
		if spec, ok := c.deps.Images.Find(socialimage.TwitterSummary); ok {
			return spec.Card
		}
	}
	return c.deps.Config.TwitterCard
}

func twitterImageEval(c *Cascade) any {
	spec, ok := c.deps.Images.Find("twitter_" + c.twitterCard())
	if !ok {
		return nil
	}
	if c.truthy("generate_social_images") {
		if img := c.Value("generated_twitter_image"); img != nil {
			return img
		}
	}
	return c.Value(spec.Handle)
}

func twitterImagePresetEval(c *Cascade) any {
	spec, ok := c.deps.Images.Find("twitter_" + c.twitterCard())
	if !ok {
		return nil
	}
	return spec.Preset()
}

func twitterHandleEval(c *Cascade) any {
	handle := c.str("twitter_handle")
	if handle == "" {
		return nil
	}
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return handle
}

func indexingEval(c *Cascade) any {
	var directives []string
	for _, key := range []string{"noindex", "nofollow"} {
		if c.truthy(key) {
			directives = append(directives, key)
		}
	}
	return nonEmpty(strings.Join(directives, ", "))
}

func localeEval(c *Cascade) any {
	site := c.host.Site()
	if site == nil {
		return nil
	}
	return nonEmpty(locale.Parse(site.Locale()))
}

func hreflangEval(c *Cascade) any {
	if alternates, ok := c.host.Alternates(); ok {
		if len(alternates) == 0 {
			return nil
		}
		return alternates
	}

	model, ok := c.host.Model()
	if !ok {
		return nil
	}
	if alternates := modelAlternates(c.host, model); len(alternates) > 0 {
		return alternates
	}
	return nil
}

// modelAlternates lists the published, routed variants of model followed by
// an x-default entry for its root. A draft root gets no x-default.
func modelAlternates(host Host, model content.Localizable) []Hreflang {
	var out []Hreflang
	for _, site := range model.Sites() {
		variant, ok := model.In(site)
		if !ok || !variant.Published() || variant.URL() == "" {
			continue
		}
		out = append(out, Hreflang{URL: host.URL(variant), Locale: siteLocale(variant.Site())})
	}
	if len(out) == 0 {
		return nil
	}
	if root := model.Root(); root != nil && root.Published() && root.URL() != "" {
		out = append(out, Hreflang{URL: host.URL(root), Locale: locale.XDefault})
	}
	return out
}

func siteLocale(site content.Site) string {
	if site == nil {
		return ""
	}
	return locale.Parse(site.Locale())
}

func canonicalEval(c *Cascade) any {
	switch c.str("canonical_type") {
	case "other":
		if entry, ok := c.Value("canonical_entry").(content.Linkable); ok {
			if u := c.host.URL(entry); u != "" {
				return u
			}
		}
	case "custom":
		if custom := c.str("canonical_custom"); custom != "" {
			return custom
		}
	}

	current := c.host.CurrentURL()
	if current == "" {
		return nil
	}
	// Page 1 stays bare so a listing is not indexed under two URLs.
	if c.host.Paginator() != nil {
		if page := c.host.RequestedPage(); page > 1 {
			return pageURL(current, page)
		}
	}
	return current
}

func pageURL(base string, page int) string {
	return fmt.Sprintf("%s?page=%d", base, page)
}

func prevURLEval(c *Cascade) any {
	p := c.host.Paginator()
	if p == nil {
		return nil
	}
	current := c.host.CurrentURL()
	page := p.CurrentPage()
	if page == 2 {
		return nonEmpty(current)
	}
	if page > 1 && page <= p.LastPage() {
		return pageURL(current, page-1)
	}
	return nil
}

func nextURLEval(c *Cascade) any {
	p := c.host.Paginator()
	if p == nil {
		return nil
	}
	if page := p.CurrentPage(); page < p.LastPage() {
		return pageURL(c.host.CurrentURL(), page+1)
	}
	return nil
}

func siteSchemaEval(c *Cascade) any {
	var siteURL string
	if site := c.host.Site(); site != nil {
		siteURL = c.host.URL(site)
	}

	switch c.str("site_json_ld_type") {
	case "custom":
		return nonEmpty(c.str("site_json_ld"))
	case "organization":
		org := schemaorg.NewOrganization(c.str("organization_name"), siteURL)
		if logo, ok := c.Value("organization_logo").(content.Asset); ok {
			org.Logo = schemaorg.NewImageObject(c.host.URL(logo), logo.Width(), logo.Height())
		}
		return c.encode("site_schema", org)
	case "person":
		return c.encode("site_schema", schemaorg.NewPerson(c.str("person_name"), siteURL))
	default:
		return nil
	}
}

func pageSchemaEval(c *Cascade) any {
	return nonEmpty(c.str("json_ld"))
}

func breadcrumbsEval(c *Cascade) any {
	if !c.truthy("use_breadcrumbs") || c.host.Homepage() {
		return nil
	}
	site := c.host.Site()
	if c.deps.Repository == nil || site == nil {
		return nil
	}

	segments := content.Segments(c.host.Path())
	var trail []content.Localizable
	for i := len(segments); i >= 0; i-- {
		uri := "/" + strings.Join(segments[:i], "/")
		if item, ok := c.deps.Repository.FindByURI(uri, site.Handle()); ok {
			trail = append(trail, item)
		}
	}
	slices.Reverse(trail)

	items := make([]schemaorg.ListItem, 0, len(trail))
	for i, item := range trail {
		items = append(items, schemaorg.NewListItem(i+1, item.Title(), c.host.URL(item)))
	}
	return c.encode("breadcrumbs", schemaorg.NewBreadcrumbList(items...))
}
