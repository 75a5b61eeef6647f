package cascade

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Evaluator derives one computed value from a built cascade. Evaluators read
// raw values through Value and other computed values through Get; they must
// not retain the cascade.
type Evaluator func(c *Cascade) any

// Registry is an ordered set of computed keys and their evaluators.
type Registry struct {
	keys  []string
	evals map[string]Evaluator
	known mapset.Set[string]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		evals: make(map[string]Evaluator),
		known: mapset.NewThreadUnsafeSet[string](),
	}
}

// Register adds or replaces the evaluator of key. A replaced key keeps its
// position.
func (r *Registry) Register(key string, eval Evaluator) *Registry {
	if r.known.Add(key) {
		r.keys = append(r.keys, key)
	}
	r.evals[key] = eval
	return r
}

// Without returns a copy of r lacking keys.
func (r *Registry) Without(keys ...string) *Registry {
	drop := mapset.NewThreadUnsafeSet(keys...)
	out := NewRegistry()
	for _, k := range r.keys {
		if !drop.Contains(k) {
			out.Register(k, r.evals[k])
		}
	}
	return out
}

// Has reports whether key is a computed key.
func (r *Registry) Has(key string) bool {
	return r != nil && r.known.Contains(key)
}

// Evaluator returns the evaluator of key.
func (r *Registry) Evaluator(key string) (Evaluator, bool) {
	if r == nil {
		return nil, false
	}
	eval, ok := r.evals[key]
	return eval, ok
}

// Keys returns the computed keys in declaration order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// sharedRegistry holds the evaluators both variants declare, in their
// declaration order.
func sharedRegistry() *Registry {
	return NewRegistry().
		Register("site_name", siteNameEval).
		Register("title", titleEval).
		Register("og_image", ogImageEval).
		Register("og_image_preset", ogImagePresetEval).
		Register("og_title", ogTitleEval).
		Register("twitter_card", twitterCardEval).
		Register("twitter_image", twitterImageEval).
		Register("twitter_image_preset", twitterImagePresetEval).
		Register("twitter_title", twitterTitleEval).
		Register("twitter_handle", twitterHandleEval).
		Register("indexing", indexingEval).
		Register("locale", localeEval).
		Register("hreflang", hreflangEval).
		Register("canonical", canonicalEval).
		Register("prev_url", prevURLEval).
		Register("next_url", nextURLEval).
		Register("site_schema", siteSchemaEval).
		Register("page_schema", pageSchemaEval).
		Register("breadcrumbs", breadcrumbsEval)
}

// ViewRegistry returns the computed keys of a live render.
func ViewRegistry() *Registry {
	return sharedRegistry()
}

// QueryRegistry returns the computed keys of a direct content read. The
// twitter card is read raw and pagination and page schema are absent.
func QueryRegistry() *Registry {
	return sharedRegistry().Without("twitter_card", "prev_url", "next_url", "page_schema")
}
