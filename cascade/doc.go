// Package cascade resolves the SEO values of one page.
//
// A Cascade merges site-wide defaults, page-level field data and explicit
// overrides into one sorted mapping of raw fields, then derives computed
// fields (title, social images, canonical URL, hreflang alternates,
// structured data, breadcrumbs) from it on demand.
//
// Two variants share the pipeline:
//
//   - NewView builds for a live page render and knows about pagination,
//     taxonomy pages, error pages and the request path.
//   - NewQuery builds for a direct content read, as an API resolver does,
//     and can rebase every URL on another host with WithBaseURL.
//
// Layers are memoized per locale in a cache.Memo. Share one Memo between
// the cascades of a request and drop it when the request ends. A cache that
// outlives requests is only safe behind SharedMemo.
//
// Resolution never fails: a layer that cannot be resolved contributes
// nothing and a computed field that cannot be derived is nil.
package cascade
