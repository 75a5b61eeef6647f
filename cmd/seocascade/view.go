package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/seocascade/cascade"
	"github.com/jonwraymond/seocascade/content"
)

type viewOptions struct {
	site      string
	taxonomy  string
	page      int
	lastPage  int
	status    int
	url       string
	homepage  bool
	overrides map[string]string
}

func newViewCmd(a *app) *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view [item-id]",
		Short: "Resolve the cascade of a live page render",
		Long: `Resolve the cascade the way a page render does. Pass an item id for an
entry or term page, or --taxonomy without an id for a taxonomy index page.
Pagination is simulated with --page and --last-page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			return a.runView(cmd, id, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.site, "site", "", "site handle (default: the item's site, or the default site)")
	f.StringVar(&opts.taxonomy, "taxonomy", "", "taxonomy handle of a term or taxonomy index page")
	f.IntVar(&opts.page, "page", 0, "requested page number")
	f.IntVar(&opts.lastPage, "last-page", 0, "last page of the active paginator (0: no paginator)")
	f.IntVar(&opts.status, "status", 0, "response status code")
	f.StringVar(&opts.url, "url", "", "current URL (default: the item URL)")
	f.BoolVar(&opts.homepage, "homepage", false, "mark the page as the site's homepage")
	f.StringToStringVar(&opts.overrides, "override", nil, "force final values (key=value)")
	return cmd
}

func (a *app) runView(cmd *cobra.Command, id string, opts viewOptions) error {
	ctx := cmd.Context()
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.close(ctx) }()

	render, err := s.render(id, opts)
	if err != nil {
		return err
	}
	return a.print(cascade.NewView(ctx, s.depsFor(), render))
}

func (s *session) render(id string, opts viewOptions) (cascade.Render, error) {
	render := cascade.Render{
		Page:       opts.page,
		StatusCode: opts.status,
		CurrentURL: opts.url,
		Homepage:   opts.homepage,
		Overrides:  overrides(opts.overrides),
	}
	if opts.lastPage > 0 {
		render.Paginator = pager{current: max(opts.page, 1), last: opts.lastPage}
	}

	if opts.taxonomy != "" {
		t, ok := s.repo.Taxonomy(opts.taxonomy)
		if !ok {
			return cascade.Render{}, fmt.Errorf("unknown taxonomy %q", opts.taxonomy)
		}
		render.Taxonomy = t
	}

	if id == "" {
		if render.Taxonomy == nil {
			return cascade.Render{}, fmt.Errorf("an item id or --taxonomy is required")
		}
		site, err := s.site(opts.site)
		if err != nil {
			return cascade.Render{}, err
		}
		render.Site = site
		render.Data = cascade.NewVars()
		render.Path = content.EnsureLeadingSlash(content.Assemble(render.Taxonomy.Collection(), render.Taxonomy.Handle()))
		return render, nil
	}

	model, ok := s.repo.Find(id)
	if !ok {
		return cascade.Render{}, fmt.Errorf("unknown item %q", id)
	}
	if opts.site != "" {
		if model, ok = model.In(opts.site); !ok {
			return cascade.Render{}, fmt.Errorf("item %q has no variant in site %q", id, opts.site)
		}
	}

	site := model.Site()
	if site == nil {
		return cascade.Render{}, fmt.Errorf("item %q has no site", id)
	}
	render.Model = model
	render.Site = site
	render.Data = modelData(model)
	render.Path = sitePath(site, model.URL())
	if !render.Homepage {
		render.Homepage = model.AbsoluteURL() != "" && model.AbsoluteURL() == site.AbsoluteURL()
	}
	return render, nil
}

func (s *session) site(handle string) (content.Site, error) {
	if handle == "" {
		if def := s.repo.DefaultSite(); def != nil {
			return def, nil
		}
		return nil, fmt.Errorf("fixture declares no site")
	}
	site, ok := s.repo.Site(handle)
	if !ok {
		return nil, fmt.Errorf("unknown site %q", handle)
	}
	return site, nil
}

// modelData is the template data of a model page: its stored values plus
// its title.
func modelData(m content.Localizable) *cascade.Vars {
	vars := cascade.NewVars().Set("title", m.Title())
	for _, key := range m.Keys() {
		v, _ := m.Value(key)
		vars.Set(key, v)
	}
	return vars
}

type pager struct{ current, last int }

func (p pager) CurrentPage() int { return p.current }
func (p pager) LastPage() int    { return p.last }
