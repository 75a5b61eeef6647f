package content

// Kind distinguishes the localizable models.
type Kind int

const (
	// KindEntry is a collection entry.
	KindEntry Kind = iota
	// KindTerm is a taxonomy term.
	KindTerm
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindTerm:
		return "term"
	default:
		return "unknown"
	}
}

// Linkable is anything with a relative and an absolute URL.
type Linkable interface {
	// URL returns the relative URL, or "" when the item has no route.
	URL() string

	// AbsoluteURL returns the URL including scheme and host.
	AbsoluteURL() string
}

// Site is one site of a multi-site installation.
type Site interface {
	Linkable
	Handle() string
	Name() string
	Locale() string
}

// Asset is an uploaded file, typically an image.
type Asset interface {
	Linkable
	Width() int
	Height() int
}

// Localizable is an entry or term in one site.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent reads.
// - Errors: lookups report absence with ok=false, never panic.
type Localizable interface {
	Linkable

	ID() string
	Kind() Kind

	// Parent returns the collection handle of an entry or the taxonomy
	// handle of a term.
	Parent() string

	Title() string
	Published() bool
	Site() Site

	// In returns the variant of this model in the given site.
	In(site string) (Localizable, bool)

	// Sites lists every site the model can exist in, whether or not a
	// variant is present there.
	Sites() []string

	// Root returns the origin variant (entries) or the default-locale
	// variant (terms).
	Root() Localizable

	// Value returns a stored field value.
	Value(key string) (any, bool)

	// Keys lists the handles of the stored field values.
	Keys() []string
}

// Taxonomy is a group of terms.
type Taxonomy interface {
	Handle() string
	Title() string
	Sites() []string

	// Collection returns the collection this taxonomy is mounted on, or "".
	Collection() string

	// AbsoluteURLIn returns the taxonomy index URL in the given site.
	AbsoluteURLIn(site string) string
}

// Repository looks up content.
type Repository interface {
	Find(id string) (Localizable, bool)
	FindByURI(uri, site string) (Localizable, bool)
	Site(handle string) (Site, bool)
	DefaultSite() Site
	Taxonomy(handle string) (Taxonomy, bool)
}

// Paginator exposes the pagination state of the current render.
type Paginator interface {
	CurrentPage() int
	LastPage() int
}
