package cascade

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/field"
	"github.com/jonwraymond/seocascade/locale"
	"github.com/jonwraymond/seocascade/observe"
)

// Layer names reported for degraded layers.
const (
	LayerSite = "site"
	LayerPage = "page"
)

// Cascade holds the resolved SEO values of one page in one locale.
//
// A Cascade is built once by New, NewView or NewQuery and is not safe for
// concurrent use.
type Cascade struct {
	host     Host
	deps     Deps
	resolver *Resolver
	registry *Registry
	meta     observe.CascadeMeta
	logger   observe.Logger

	raw      *field.Mapping
	computed map[string]any
	running  mapset.Set[string]
	built    bool
}

// New builds a cascade for host with the computed keys of registry.
func New(ctx context.Context, deps Deps, host Host, registry *Registry) *Cascade {
	deps = deps.withDefaults()
	if registry == nil {
		registry = NewRegistry()
	}

	c := &Cascade{
		host:     host,
		deps:     deps,
		resolver: &Resolver{deps: deps},
		registry: registry,
		meta:     metaOf(host),
		raw:      field.Empty(),
		computed: make(map[string]any),
		running:  mapset.NewThreadUnsafeSet[string](),
	}
	c.logger = deps.Observe.Logger(c.meta)

	_ = deps.Observe.Wrap(c.build)(ctx, c.meta)
	return c
}

func metaOf(host Host) observe.CascadeMeta {
	meta := observe.CascadeMeta{Variant: host.Variant()}
	if site := host.Site(); site != nil {
		meta.Site = site.Handle()
		meta.Locale = locale.Parse(site.Locale())
	}
	if m, ok := host.Model(); ok {
		meta.Model = m.ID()
	}
	return meta
}

func (c *Cascade) build(ctx context.Context, _ observe.CascadeMeta) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBuildPanic, r)
			c.raw = field.Empty()
		}
		c.built = true
	}()

	c.withSiteDefaults(ctx).
		withPageData(ctx).
		removeSeoPrefix().
		removeSectionFields().
		ensureOverrides(ctx).
		sortKeys()
	return nil
}

func (c *Cascade) withSiteDefaults(ctx context.Context) *Cascade {
	layer, err := c.resolver.SiteDefaults(ctx, c.host.Locale(), c.host.Ambient())
	c.raw = c.raw.Merge(c.checkLayer(ctx, LayerSite, layer, err))
	return c
}

func (c *Cascade) withPageData(ctx context.Context) *Cascade {
	layer, err := c.resolver.PageData(ctx, c.host)
	c.raw = c.raw.Merge(c.checkLayer(ctx, LayerPage, layer, err))
	return c
}

func (c *Cascade) checkLayer(ctx context.Context, name string, layer *field.Mapping, err error) *field.Mapping {
	if err != nil {
		c.logger.Debug(ctx, "cascade layer degraded",
			observe.Field{Key: "layer", Value: name},
			observe.Field{Key: "error", Value: err},
		)
	}
	if layer.Len() == 0 {
		c.deps.Observe.Metrics().RecordEmptyLayer(ctx, c.meta, name)
	}
	return layer
}

func (c *Cascade) removeSeoPrefix() *Cascade {
	c.raw = c.raw.TrimPrefix(c.deps.Config.Prefix)
	return c
}

func (c *Cascade) removeSectionFields() *Cascade {
	sections := sectionKeys(c.deps.Config.Prefix)
	c.raw = c.raw.Filter(func(key string, v field.Value) bool {
		if sections.Contains(key) {
			return false
		}
		if ft := v.Fieldtype(); ft != nil && ft.Handle() == blueprint.TypeSection {
			return false
		}
		return !strings.HasPrefix(key, "section_") && !strings.HasSuffix(key, "_section")
	})
	return c
}

// sectionKeys returns the prefix-free handles of every declared section.
func sectionKeys(prefix string) mapset.Set[string] {
	keys := mapset.NewThreadUnsafeSet[string]()
	for _, h := range blueprint.OnPage().SectionHandles() {
		keys.Add(strings.TrimPrefix(h, prefix))
	}
	for _, handle := range []string{"general", "indexing", "social_media"} {
		if bp, ok := blueprint.SiteSet(handle); ok {
			keys.Append(bp.SectionHandles()...)
		}
	}
	return keys
}

// ensureOverrides applies the host overrides by final key name. A computed
// key is seeded with the value; a raw key takes it as its raw value and
// keeps its metadata. Other keys are ignored.
func (c *Cascade) ensureOverrides(ctx context.Context) *Cascade {
	overrides := c.host.Overrides()
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := overrides[key]
		switch {
		case c.registry.Has(key):
			c.computed[key] = value
		case c.raw.Has(key):
			original, _ := c.raw.Get(key)
			c.raw = c.raw.With(key, original.WithRaw(value))
		default:
			c.logger.Debug(ctx, "override ignored", observe.Field{Key: "key", Value: key})
		}
	}
	return c
}

func (c *Cascade) sortKeys() *Cascade {
	c.raw = c.raw.Sorted()
	return c
}

// Built reports whether the pipeline has run.
func (c *Cascade) Built() bool {
	return c.built
}

// Host returns the host the cascade was built for.
func (c *Cascade) Host() Host {
	return c.host
}

// Config returns the effective configuration.
func (c *Cascade) Config() Config {
	return c.deps.Config
}

// Get returns the computed value of a computed key, else the augmented raw
// value, else nil. Each evaluator runs at most once.
func (c *Cascade) Get(key string) any {
	if eval, ok := c.registry.Evaluator(key); ok {
		return c.evaluate(key, eval)
	}
	return c.Value(key)
}

// Has reports whether Get(key) is non-nil.
func (c *Cascade) Has(key string) bool {
	return c.Get(key) != nil
}

// Value returns the augmented raw value of key, ignoring computed keys.
func (c *Cascade) Value(key string) any {
	v, ok := c.raw.Get(key)
	if !ok {
		return nil
	}
	return v.Value()
}

// Raw returns the raw field value of key with its metadata.
func (c *Cascade) Raw(key string) (field.Value, bool) {
	return c.raw.Get(key)
}

// Keys returns the sorted raw keys.
func (c *Cascade) Keys() []string {
	return c.raw.Keys()
}

// ComputedKeys returns the computed keys in declaration order.
func (c *Cascade) ComputedKeys() []string {
	return c.registry.Keys()
}

// All returns every raw and computed value keyed by name. Computed values
// win over raw values of the same name.
func (c *Cascade) All() map[string]any {
	out := c.raw.Augmented()
	for _, key := range c.registry.Keys() {
		out[key] = c.Get(key)
	}
	return out
}

// MarshalJSON encodes All as one flat object. Content models are reduced
// to their public URL.
func (c *Cascade) MarshalJSON() ([]byte, error) {
	all := c.All()
	out := make(map[string]any, len(all))
	for k, v := range all {
		out[k] = exported(v)
	}
	return json.Marshal(out)
}

func exported(v any) any {
	switch t := v.(type) {
	case content.Asset:
		return map[string]any{
			"url":    t.AbsoluteURL(),
			"width":  t.Width(),
			"height": t.Height(),
		}
	case content.Localizable:
		return map[string]any{
			"id":    t.ID(),
			"title": t.Title(),
			"url":   t.AbsoluteURL(),
		}
	case content.Linkable:
		return t.AbsoluteURL()
	default:
		return v
	}
}

func (c *Cascade) evaluate(key string, eval Evaluator) (result any) {
	if v, ok := c.computed[key]; ok {
		return v
	}
	if !c.built {
		return nil
	}
	ctx := context.Background()
	if !c.running.Add(key) {
		c.logger.Warn(ctx, "computed key depends on itself", observe.Field{Key: "key", Value: key})
		return nil
	}

	defer func() {
		c.running.Remove(key)
		if r := recover(); r != nil {
			c.logger.Error(ctx, "computed key evaluator panicked",
				observe.Field{Key: "key", Value: key},
				observe.Field{Key: "panic", Value: fmt.Sprint(r)},
			)
			result = nil
		}
		c.computed[key] = result
	}()

	c.deps.Observe.Metrics().RecordEvaluation(ctx, c.meta, key)
	return eval(c)
}
