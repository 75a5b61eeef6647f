package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/seocascade/cascade"
)

type queryOptions struct {
	site      string
	baseURL   string
	overrides map[string]string
}

func newQueryCmd(a *app) *cobra.Command {
	var opts queryOptions
	cmd := &cobra.Command{
		Use:   "query <item-id>...",
		Short: "Resolve the cascade of items read outside a page render",
		Long: `Resolve the cascade of each item the way a content API does. One item
prints a JSON object, several print a JSON array in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.close(ctx) }()

			out := make([]*cascade.Cascade, 0, len(args))
			for _, id := range args {
				c, err := s.query(ctx, id, opts)
				if err != nil {
					return err
				}
				out = append(out, c)
			}
			if len(out) == 1 {
				return a.print(out[0])
			}
			return a.print(out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.site, "site", "", "resolve each item's variant in this site")
	f.StringVar(&opts.baseURL, "base-url", "", "rebuild every URL on this host")
	f.StringToStringVar(&opts.overrides, "override", nil, "force final values (key=value)")
	return cmd
}

func (s *session) query(ctx context.Context, id string, opts queryOptions) (*cascade.Cascade, error) {
	model, ok := s.repo.Find(id)
	if !ok {
		return nil, fmt.Errorf("unknown item %q", id)
	}
	if opts.site != "" {
		if model, ok = model.In(opts.site); !ok {
			return nil, fmt.Errorf("item %q has no variant in site %q", id, opts.site)
		}
	}

	var qopts []cascade.QueryOption
	if opts.baseURL != "" {
		qopts = append(qopts, cascade.WithBaseURL(opts.baseURL))
	}
	if o := overrides(opts.overrides); o != nil {
		qopts = append(qopts, cascade.WithOverrides(o))
	}
	return cascade.NewQuery(ctx, s.depsFor(), model, qopts...), nil
}
