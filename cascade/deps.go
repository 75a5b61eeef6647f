package cascade

import (
	"github.com/jonwraymond/seocascade/blueprint"
	"github.com/jonwraymond/seocascade/cache"
	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/defaults"
	"github.com/jonwraymond/seocascade/observe"
	"github.com/jonwraymond/seocascade/socialimage"
)

// Deps are the collaborators of a cascade. Every field is optional.
type Deps struct {
	// Repository resolves breadcrumbs and linked entries.
	Repository content.Repository

	// Assets resolves asset paths stored in page data.
	Assets blueprint.AssetFinder

	// Defaults provides the default value sets. Defaults to an empty store.
	Defaults defaults.Provider

	// Augmenter augments page data. Defaults to the built-in fieldtypes
	// bound to Repository and Assets.
	Augmenter blueprint.Augmenter

	// Images describes the social image slots. Defaults to the built-ins.
	Images socialimage.Finder

	// Memo memoizes layers per locale. Defaults to a memo private to the
	// cascade.
	Memo *cache.Memo

	// Observe instruments builds and evaluations. Defaults to a no-op.
	Observe *observe.Middleware

	Config Config
}

func (d Deps) withDefaults() Deps {
	if d.Augmenter == nil {
		var opts []blueprint.RegistryOption
		if d.Repository != nil {
			opts = append(opts, blueprint.WithRepository(d.Repository))
		}
		if d.Assets != nil {
			opts = append(opts, blueprint.WithAssets(d.Assets))
		}
		d.Augmenter = blueprint.NewAugmenter(blueprint.NewRegistry(opts...))
	}
	if d.Defaults == nil {
		d.Defaults = defaults.NewStore(d.Augmenter)
	}
	if d.Images == nil {
		d.Images = socialimage.NewRegistry()
	}
	if d.Memo == nil {
		d.Memo = cache.NewRequestMemo()
	}
	if d.Observe == nil {
		d.Observe = observe.Nop()
	}
	d.Config = d.Config.withDefaults()
	return d
}
