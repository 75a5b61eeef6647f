// Package fixture loads a content repository and its default value sets from
// one YAML document.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/defaults"
)

// Document is the YAML layout of a fixture.
type Document struct {
	Sites       []Site       `yaml:"sites"`
	Collections []Collection `yaml:"collections"`
	Taxonomies  []Taxonomy   `yaml:"taxonomies"`
	Items       []Item       `yaml:"items"`
	Assets      []Asset      `yaml:"assets"`
	Defaults    []Defaults   `yaml:"defaults"`
}

// Site declares one site. The first site is the default site.
type Site struct {
	Handle string `yaml:"handle"`
	Name   string `yaml:"name"`
	Locale string `yaml:"locale"`
	URL    string `yaml:"url"`
	Path   string `yaml:"path"`
}

// Collection declares the sites entries of a collection may exist in.
type Collection struct {
	Handle string   `yaml:"handle"`
	Sites  []string `yaml:"sites"`
}

// Taxonomy declares a taxonomy, optionally mounted on a collection.
type Taxonomy struct {
	Handle     string   `yaml:"handle"`
	Title      string   `yaml:"title"`
	Sites      []string `yaml:"sites"`
	Collection string   `yaml:"collection"`
}

// Item declares one localized entry or term.
type Item struct {
	ID     string         `yaml:"id"`
	Kind   string         `yaml:"kind"`
	Parent string         `yaml:"parent"`
	Site   string         `yaml:"site"`
	Title  string         `yaml:"title"`
	Path   string         `yaml:"path"`
	Draft  bool           `yaml:"draft"`
	Origin string         `yaml:"origin"`
	Data   map[string]any `yaml:"data"`
}

// Asset declares an image. Base defaults to the default site URL.
type Asset struct {
	Path   string `yaml:"path"`
	Base   string `yaml:"base"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Defaults declares the localization of a default value set in one site.
type Defaults struct {
	Type     string         `yaml:"type"`
	Handle   string         `yaml:"handle"`
	Site     string         `yaml:"site"`
	Origin   string         `yaml:"origin"`
	Disabled bool           `yaml:"disabled"`
	Values   map[string]any `yaml:"values"`
}

// Fixture is a loaded document.
type Fixture struct {
	Repository *content.Memory
	Defaults   *defaults.Store
}

// Load reads the fixture at path.
func Load(path string) (*Fixture, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture directory: %w", err)
	}
	defer root.Close()

	file, err := root.Open(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader decodes a fixture from r. ${VAR} references are expanded
// from the environment first. Unknown fields are rejected.
func LoadFromReader(r io.Reader) (*Fixture, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	expanded, err := expandEnv(string(raw))
	if err != nil {
		return nil, err
	}

	var doc Document
	decoder := yaml.NewDecoder(strings.NewReader(expanded))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	return Build(doc)
}

// Build turns doc into a repository and a default store whose augmenter
// resolves entries and assets against that repository.
func Build(doc Document) (*Fixture, error) {
	repo := content.NewMemory()
	known := make(map[string]bool, len(doc.Sites))
	var baseURL string
	for i, s := range doc.Sites {
		if s.Handle == "" {
			return nil, fmt.Errorf("%w: site %d has no handle", ErrInvalidFixture, i)
		}
		if baseURL == "" {
			baseURL = s.URL
		}
		known[s.Handle] = true
		repo.AddSite(&content.StaticSite{
			SiteHandle: s.Handle,
			SiteName:   s.Name,
			SiteLocale: s.Locale,
			Base:       s.URL,
			Path:       s.Path,
		})
	}
	site := func(handle string) error {
		if !known[handle] {
			return fmt.Errorf("%w: %q", ErrUnknownSite, handle)
		}
		return nil
	}

	for _, c := range doc.Collections {
		for _, s := range c.Sites {
			if err := site(s); err != nil {
				return nil, fmt.Errorf("collection %s: %w", c.Handle, err)
			}
		}
		repo.AddCollection(content.Collection{Handle: c.Handle, Sites: c.Sites})
	}
	for _, t := range doc.Taxonomies {
		repo.AddTaxonomy(content.StaticTaxonomy{
			TaxonomyHandle:   t.Handle,
			TaxonomyTitle:    t.Title,
			TaxonomySites:    t.Sites,
			CollectionHandle: t.Collection,
		})
	}

	for _, it := range doc.Items {
		if err := site(it.Site); err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		kind, err := parseKind(it.Kind)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		repo.AddItem(content.Item{
			ID:     it.ID,
			Kind:   kind,
			Parent: it.Parent,
			Site:   it.Site,
			Title:  it.Title,
			Path:   it.Path,
			Draft:  it.Draft,
			Origin: it.Origin,
			Data:   it.Data,
		})
	}

	for _, a := range doc.Assets {
		base := a.Base
		if base == "" {
			base = baseURL
		}
		repo.AddAsset(a.Path, &content.StaticAsset{Path: a.Path, Base: base, W: a.Width, H: a.Height})
	}

	store := defaults.NewStore(blueprint.NewAugmenter(blueprint.NewRegistry(
		blueprint.WithRepository(repo),
		blueprint.WithAssets(repo),
	)))
	if err := loadDefaults(store, doc.Defaults, site); err != nil {
		return nil, err
	}

	return &Fixture{Repository: repo, Defaults: store}, nil
}

func parseKind(s string) (content.Kind, error) {
	switch s {
	case "", "entry":
		return content.KindEntry, nil
	case "term":
		return content.KindTerm, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func loadDefaults(store *defaults.Store, docs []Defaults, site func(string) error) error {
	sets := make(map[string]defaults.Set)
	for _, d := range docs {
		if err := site(d.Site); err != nil {
			return fmt.Errorf("defaults %s/%s: %w", d.Type, d.Handle, err)
		}
		key := d.Type + "/" + d.Handle
		set, ok := sets[key]
		if !ok {
			created, err := defaults.NewSet(d.Type, d.Handle)
			if err != nil {
				return fmt.Errorf("defaults %s: %w", key, err)
			}
			set = created
		}
		if d.Disabled {
			set.Enabled = false
		}
		values := d.Values
		if values == nil {
			values = map[string]any{}
		}
		sets[key] = set.WithLocalization(defaults.Localization{Site: d.Site, Origin: d.Origin, Values: values})
	}

	keys := make([]string, 0, len(sets))
	for k := range sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := store.Save(sets[k]); err != nil {
			return fmt.Errorf("defaults %s: %w", k, err)
		}
	}
	return nil
}
