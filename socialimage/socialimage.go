// Package socialimage describes the social network image slots a page can
// advertise and their required dimensions.
package socialimage

import "sync"

// Spec describes one image slot.
type Spec struct {
	// Name is the slot name, e.g. "open_graph" or "twitter_summary".
	Name string
	// Handle is the (prefix-free) field holding the chosen image.
	Handle string
	// Card is the twitter card type the slot belongs to, if any.
	Card   string
	Width  int
	Height int
}

// Preset returns the slot dimensions.
func (s Spec) Preset() Preset {
	return Preset{Width: s.Width, Height: s.Height}
}

// Preset is the width and height an image is rendered at.
type Preset struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Finder looks up image specs by slot name.
type Finder interface {
	Find(name string) (Spec, bool)
}

// Built-in slot names.
const (
	OpenGraph                = "open_graph"
	TwitterSummary           = "twitter_summary"
	TwitterSummaryLargeImage = "twitter_summary_large_image"
)

// Registry is a concurrency-safe Finder.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry returns a registry holding the built-in slots.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]Spec)}
	r.Register(Spec{Name: OpenGraph, Handle: "og_image", Width: 1200, Height: 628})
	r.Register(Spec{Name: TwitterSummary, Handle: "twitter_summary_image", Card: "summary", Width: 240, Height: 240})
	r.Register(Spec{Name: TwitterSummaryLargeImage, Handle: "twitter_summary_large_image", Card: "summary_large_image", Width: 1100, Height: 628})
	return r
}

// Register adds or replaces a slot.
func (r *Registry) Register(s Spec) {
	r.mu.Lock()
	r.specs[s.Name] = s
	r.mu.Unlock()
}

// Find returns the slot with the given name.
func (r *Registry) Find(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[name]
	return s, ok
}

var _ Finder = (*Registry)(nil)
