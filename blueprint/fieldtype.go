package blueprint

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jonwraymond/seocascade/content"
)

// Fieldtype handles known to the default registry.
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeSelect   = "select"
	TypeToggle   = "toggle"
	TypeCode     = "code"
	TypeAssets   = "assets"
	TypeEntries  = "entries"
	TypeSection  = "section"
	TypeSource   = "seo_source"
)

// Type augments the raw value of a declared field.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Augment must not panic; unusable input augments to nil.
type Type interface {
	Handle() string
	Augment(f Field, raw any, parent Container) any
}

// Container is the data a blueprint is augmented against.
type Container interface {
	Value(key string) (any, bool)
}

// AssetFinder resolves an asset path.
type AssetFinder interface {
	FindAsset(path string) (content.Asset, bool)
}

// Registry maps fieldtype handles to Types.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// RegistryOption configures the default fieldtypes.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	repo   content.Repository
	assets AssetFinder
}

// WithRepository lets the entries fieldtype resolve ids.
func WithRepository(repo content.Repository) RegistryOption {
	return func(c *registryConfig) { c.repo = repo }
}

// WithAssets lets the assets fieldtype resolve paths.
func WithAssets(assets AssetFinder) RegistryOption {
	return func(c *registryConfig) { c.assets = assets }
}

// NewRegistry returns a registry holding the built-in fieldtypes.
func NewRegistry(opts ...RegistryOption) *Registry {
	var cfg registryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{types: make(map[string]Type)}
	for _, t := range []Type{
		textType{handle: TypeText},
		textType{handle: TypeTextarea},
		textType{handle: TypeSelect},
		toggleType{},
		codeType{},
		assetsType{finder: cfg.assets},
		entriesType{repo: cfg.repo},
		sectionType{},
		sourceType{registry: r},
	} {
		r.types[t.Handle()] = t
	}
	return r
}

// Register adds a fieldtype.
func (r *Registry) Register(t Type) error {
	if t == nil || strings.TrimSpace(t.Handle()) == "" {
		return ErrInvalidType
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.Handle()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateType, t.Handle())
	}
	r.types[t.Handle()] = t
	return nil
}

// Get returns the fieldtype with the given handle.
func (r *Registry) Get(handle string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[handle]
	return t, ok
}

// List returns registered handles.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type textType struct{ handle string }

func (t textType) Handle() string { return t.handle }

func (textType) Augment(_ Field, raw any, _ Container) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return v
	case fmt.Stringer:
		return v.String()
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	default:
		return nil
	}
}

type toggleType struct{}

func (toggleType) Handle() string { return TypeToggle }

func (toggleType) Augment(_ Field, raw any, _ Container) any {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	case int:
		return v != 0
	default:
		return false
	}
}

// codeType accepts either a plain string or {"code": "...", "mode": "..."}.
type codeType struct{}

func (codeType) Handle() string { return TypeCode }

func (codeType) Augment(_ Field, raw any, _ Container) any {
	var code string
	switch v := raw.(type) {
	case string:
		code = v
	case map[string]any:
		code, _ = v["code"].(string)
	}
	if strings.TrimSpace(code) == "" {
		return nil
	}
	return code
}

type assetsType struct{ finder AssetFinder }

func (assetsType) Handle() string { return TypeAssets }

func (t assetsType) Augment(_ Field, raw any, _ Container) any {
	switch v := raw.(type) {
	case content.Asset:
		return v
	case []any:
		if len(v) == 0 {
			return nil
		}
		return t.Augment(Field{}, v[0], nil)
	case []string:
		if len(v) == 0 {
			return nil
		}
		return t.Augment(Field{}, v[0], nil)
	case string:
		if t.finder == nil || v == "" {
			return nil
		}
		if a, ok := t.finder.FindAsset(v); ok {
			return a
		}
	}
	return nil
}

type entriesType struct{ repo content.Repository }

func (entriesType) Handle() string { return TypeEntries }

func (t entriesType) Augment(_ Field, raw any, _ Container) any {
	switch v := raw.(type) {
	case content.Localizable:
		return v
	case []any:
		if len(v) == 0 {
			return nil
		}
		return t.Augment(Field{}, v[0], nil)
	case []string:
		if len(v) == 0 {
			return nil
		}
		return t.Augment(Field{}, v[0], nil)
	case string:
		if t.repo == nil || v == "" {
			return nil
		}
		if m, ok := t.repo.Find(v); ok {
			return m
		}
	}
	return nil
}

type sectionType struct{}

func (sectionType) Handle() string                    { return TypeSection }
func (sectionType) Augment(Field, any, Container) any { return nil }

// sourceType resolves the @default/@auto/@null sentinels and delegates the
// remaining values to the wrapped field's type.
type sourceType struct{ registry *Registry }

func (sourceType) Handle() string { return TypeSource }

func (t sourceType) Augment(f Field, raw any, parent Container) any {
	if f.Source == nil {
		return raw
	}
	inner, ok := t.registry.Get(f.Source.Type)
	if !ok {
		return nil
	}

	switch raw {
	case nil, SourceDefault:
		return inner.Augment(*f.Source, f.Source.Default, parent)
	case SourceNull:
		return inner.Augment(*f.Source, nil, parent)
	case SourceAuto:
		if f.Auto == "" || parent == nil {
			return nil
		}
		v, _ := parent.Value(f.Auto)
		return inner.Augment(*f.Source, v, parent)
	}
	return inner.Augment(*f.Source, raw, parent)
}
