package content

import (
	"slices"
	"strings"
	"sync"
)

// StaticSite is a Site with fixed attributes.
type StaticSite struct {
	SiteHandle string
	SiteName   string
	SiteLocale string
	// Base is the absolute site URL, e.g. "https://acme.test/de".
	Base string
	// Path is the relative site URL, e.g. "/de". Defaults to "/".
	Path string
}

func (s *StaticSite) Handle() string      { return s.SiteHandle }
func (s *StaticSite) Name() string        { return s.SiteName }
func (s *StaticSite) Locale() string      { return s.SiteLocale }
func (s *StaticSite) AbsoluteURL() string { return Tidy(s.Base) }

func (s *StaticSite) URL() string {
	if s.Path == "" {
		return "/"
	}
	return Tidy(EnsureLeadingSlash(s.Path))
}

// StaticAsset is an Asset with fixed attributes.
type StaticAsset struct {
	Path string
	Base string
	W    int
	H    int
}

func (a *StaticAsset) URL() string         { return EnsureLeadingSlash(a.Path) }
func (a *StaticAsset) AbsoluteURL() string { return Assemble(a.Base, a.Path) }
func (a *StaticAsset) Width() int          { return a.W }
func (a *StaticAsset) Height() int         { return a.H }

// Item describes one localized entry or term stored in Memory.
type Item struct {
	ID   string
	Kind Kind
	// Parent is the collection (entries) or taxonomy (terms) handle.
	Parent string
	Site   string
	Title  string
	// Path is the item's route relative to its site; "" means unrouted.
	Path  string
	Draft bool
	// Origin is the id of the variant this one was localized from.
	Origin string
	Data   map[string]any
}

// Collection groups entries and lists the sites they may exist in.
type Collection struct {
	Handle string
	Sites  []string
}

// StaticTaxonomy is a Taxonomy held in Memory.
type StaticTaxonomy struct {
	TaxonomyHandle string
	TaxonomyTitle  string
	TaxonomySites  []string
	// CollectionHandle mounts the taxonomy below a collection URL.
	CollectionHandle string

	repo *Memory
}

func (t *StaticTaxonomy) Handle() string     { return t.TaxonomyHandle }
func (t *StaticTaxonomy) Title() string      { return t.TaxonomyTitle }
func (t *StaticTaxonomy) Sites() []string    { return slices.Clone(t.TaxonomySites) }
func (t *StaticTaxonomy) Collection() string { return t.CollectionHandle }

// AbsoluteURLIn returns the taxonomy index URL in site.
func (t *StaticTaxonomy) AbsoluteURLIn(site string) string {
	s, ok := t.repo.Site(site)
	if !ok {
		return ""
	}
	return Assemble(s.AbsoluteURL(), t.CollectionHandle, t.TaxonomyHandle)
}

// Memory is an in-memory Repository.
type Memory struct {
	mu          sync.RWMutex
	sites       map[string]Site
	siteOrder   []string
	collections map[string]Collection
	taxonomies  map[string]*StaticTaxonomy
	items       map[string]*Item
	itemOrder   []string
	assets      map[string]Asset
}

// NewMemory creates an empty repository.
func NewMemory() *Memory {
	return &Memory{
		sites:       make(map[string]Site),
		collections: make(map[string]Collection),
		taxonomies:  make(map[string]*StaticTaxonomy),
		items:       make(map[string]*Item),
		assets:      make(map[string]Asset),
	}
}

// AddSite registers a site. The first site added is the default site.
func (m *Memory) AddSite(s Site) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[s.Handle()]; !ok {
		m.siteOrder = append(m.siteOrder, s.Handle())
	}
	m.sites[s.Handle()] = s
	return m
}

// AddCollection registers a collection.
func (m *Memory) AddCollection(c Collection) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[c.Handle] = c
	return m
}

// AddTaxonomy registers a taxonomy.
func (m *Memory) AddTaxonomy(t StaticTaxonomy) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.repo = m
	m.taxonomies[t.TaxonomyHandle] = &t
	return m
}

// AddItem registers an entry or term variant.
func (m *Memory) AddItem(it Item) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[it.ID]; !ok {
		m.itemOrder = append(m.itemOrder, it.ID)
	}
	m.items[it.ID] = &it
	return m
}

// AddAsset registers an asset under path. Leading slashes are ignored.
func (m *Memory) AddAsset(path string, a Asset) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[strings.TrimLeft(path, "/")] = a
	return m
}

// FindAsset returns the asset registered under path.
func (m *Memory) FindAsset(path string) (Asset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[strings.TrimLeft(path, "/")]
	return a, ok
}

// Find returns the model with the given id.
func (m *Memory) Find(id string) (Localizable, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return nil, false
	}
	return &model{item: it, repo: m}, true
}

// FindByURI returns the routed model at uri in site.
func (m *Memory) FindByURI(uri, site string) (Localizable, bool) {
	uri = Tidy(EnsureLeadingSlash(uri))

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.itemOrder {
		it := m.items[id]
		if it.Site != site || it.Path == "" {
			continue
		}
		if Tidy(EnsureLeadingSlash(it.Path)) == uri {
			return &model{item: it, repo: m}, true
		}
	}
	return nil, false
}

// Site returns the site with the given handle.
func (m *Memory) Site(handle string) (Site, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sites[handle]
	return s, ok
}

// DefaultSite returns the first registered site, or nil.
func (m *Memory) DefaultSite() Site {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.siteOrder) == 0 {
		return nil
	}
	return m.sites[m.siteOrder[0]]
}

// Taxonomy returns the taxonomy with the given handle.
func (m *Memory) Taxonomy(handle string) (Taxonomy, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.taxonomies[handle]
	if !ok {
		return nil, false
	}
	return t, true
}

func (m *Memory) siteHandles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.siteOrder)
}

// variants returns every item sharing the root of it.
func (m *Memory) variants(rootID string) []*Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Item
	for _, id := range m.itemOrder {
		it := m.items[id]
		if m.rootOf(it).ID == rootID {
			out = append(out, it)
		}
	}
	return out
}

// rootOf follows origin links. Callers hold the read lock.
func (m *Memory) rootOf(it *Item) *Item {
	seen := map[string]bool{}
	for it.Origin != "" && !seen[it.ID] {
		seen[it.ID] = true
		origin, ok := m.items[it.Origin]
		if !ok {
			break
		}
		it = origin
	}
	return it
}

// model adapts an Item to Localizable.
type model struct {
	item *Item
	repo *Memory
}

func (e *model) ID() string      { return e.item.ID }
func (e *model) Kind() Kind      { return e.item.Kind }
func (e *model) Parent() string  { return e.item.Parent }
func (e *model) Title() string   { return e.item.Title }
func (e *model) Published() bool { return !e.item.Draft }

func (e *model) Site() Site {
	s, _ := e.repo.Site(e.item.Site)
	return s
}

func (e *model) URL() string {
	if e.item.Path == "" {
		return ""
	}
	site := e.Site()
	if site == nil {
		return Tidy(EnsureLeadingSlash(e.item.Path))
	}
	return Assemble(site.URL(), e.item.Path)
}

func (e *model) AbsoluteURL() string {
	if e.item.Path == "" {
		return ""
	}
	site := e.Site()
	if site == nil {
		return ""
	}
	return Assemble(site.AbsoluteURL(), e.item.Path)
}

func (e *model) Value(key string) (any, bool) {
	v, ok := e.item.Data[key]
	return v, ok
}

func (e *model) Keys() []string {
	keys := make([]string, 0, len(e.item.Data))
	for k := range e.item.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (e *model) In(site string) (Localizable, bool) {
	if e.item.Site == site {
		return e, true
	}
	root := e.Root()
	for _, it := range e.repo.variants(root.ID()) {
		if it.Site == site {
			return &model{item: it, repo: e.repo}, true
		}
	}
	return nil, false
}

func (e *model) Sites() []string {
	switch e.item.Kind {
	case KindTerm:
		if t, ok := e.repo.Taxonomy(e.item.Parent); ok {
			return t.Sites()
		}
	default:
		e.repo.mu.RLock()
		c, ok := e.repo.collections[e.item.Parent]
		e.repo.mu.RUnlock()
		if ok {
			return slices.Clone(c.Sites)
		}
	}
	return e.repo.siteHandles()
}

func (e *model) Root() Localizable {
	if e.item.Kind == KindTerm {
		// Terms resolve to their variant in the default site.
		if def := e.repo.DefaultSite(); def != nil && e.item.Site != def.Handle() {
			e.repo.mu.RLock()
			root := e.repo.rootOf(e.item)
			e.repo.mu.RUnlock()
			for _, it := range e.repo.variants(root.ID) {
				if it.Site == def.Handle() {
					return &model{item: it, repo: e.repo}
				}
			}
		}
	}
	e.repo.mu.RLock()
	root := e.repo.rootOf(e.item)
	e.repo.mu.RUnlock()
	return &model{item: root, repo: e.repo}
}

var (
	_ Repository  = (*Memory)(nil)
	_ Localizable = (*model)(nil)
	_ Site        = (*StaticSite)(nil)
	_ Asset       = (*StaticAsset)(nil)
	_ Taxonomy    = (*StaticTaxonomy)(nil)
)
