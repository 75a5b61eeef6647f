package observe

import "go.opentelemetry.io/otel/attribute"

// CascadeMeta identifies one cascade build for telemetry purposes.
type CascadeMeta struct {
	Variant string // view or query (required)
	Site    string // site handle (optional)
	Locale  string // resolved locale (optional)
	Model   string // content model id (optional)
}

// SpanName returns the deterministic span name for this build.
// Format: seo.cascade.<variant>
func (m CascadeMeta) SpanName() string {
	if m.Variant == "" {
		return "seo.cascade"
	}
	return "seo.cascade." + m.Variant
}

// Key returns "<variant>/<site>" or the variant alone when no site is known.
func (m CascadeMeta) Key() string {
	if m.Site != "" {
		return m.Variant + "/" + m.Site
	}
	return m.Variant
}

// fields lists the non-empty identifying fields of the build, variant first.
func (m CascadeMeta) fields() []Field {
	out := []Field{{Key: "cascade.variant", Value: m.Variant}}
	for _, f := range [...]Field{
		{Key: "cascade.site", Value: m.Site},
		{Key: "cascade.locale", Value: m.Locale},
		{Key: "cascade.model", Value: m.Model},
	} {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// attributes converts fields to span attributes plus an error flag that
// EndSpan raises on failure.
func (m CascadeMeta) attributes() []attribute.KeyValue {
	fields := m.fields()
	attrs := make([]attribute.KeyValue, 0, len(fields)+1)
	for _, f := range fields {
		attrs = append(attrs, attribute.String(f.Key, f.Value.(string)))
	}
	return append(attrs, attribute.Bool("cascade.error", false))
}
