package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonwraymond/seocascade/cache"
	"github.com/jonwraymond/seocascade/cascade"
	"github.com/jonwraymond/seocascade/content"
	"github.com/jonwraymond/seocascade/internal/fixture"
	"github.com/jonwraymond/seocascade/observe"
	"github.com/jonwraymond/seocascade/observe/exporters"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	viper   *viper.Viper
	cfgFile string
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{viper: newViper(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "seocascade",
		Short: "Resolve the SEO cascade of a page",
		Long: `seocascade merges site defaults, page data and overrides for one page of a
content fixture and prints the resulting fields, raw and computed, as JSON.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfig(a.viper, a.cfgFile); err != nil {
				return err
			}
			if a.verbose {
				a.viper.Set("observe.logging.level", "debug")
			}
			return nil
		},
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.seocascade.yaml or $HOME/.seocascade.yaml)")
	flags.String("fixture", "", "YAML content fixture")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	_ = a.viper.BindPFlag("fixture", flags.Lookup("fixture"))

	root.AddCommand(newViewCmd(a), newQueryCmd(a), newVersionCmd(a))
	return root
}

// session is everything a resolution needs.
type session struct {
	repo     *content.Memory
	deps     cascade.Deps
	shared   *cache.TTLCache
	observer observe.Observer
}

func (a *app) open(ctx context.Context) (*session, error) {
	cfg, err := loadConfig(a.viper)
	if err != nil {
		return nil, err
	}

	fx, err := fixture.Load(cfg.Fixture)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	obs, err := observe.NewObserverWithFactory(ctx, cfg.Observe, exporters.Factory{Writer: a.stderr}, a.stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}
	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}

	return &session{
		repo:     fx.Repository,
		observer: obs,
		shared:   cfg.Memo.store(),
		deps: cascade.Deps{
			Repository: fx.Repository,
			Assets:     fx.Repository,
			Defaults:   fx.Defaults,
			Observe:    mw,
			Config:     cfg.Cascade,
		},
	}, nil
}

// depsFor returns the dependencies of one resolution, with a memo of its
// own over the session cache.
func (s *session) depsFor() cascade.Deps {
	d := s.deps
	if s.shared != nil {
		d.Memo = cascade.SharedMemo(s.shared)
	} else {
		d.Memo = cache.NewRequestMemo()
	}
	return d
}

func (s *session) close(ctx context.Context) error {
	if s.shared != nil {
		_ = s.shared.Close()
	}
	return s.observer.Shutdown(ctx)
}

func (a *app) print(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cascade: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, string(out))
	return err
}

// overrides converts --override key=value pairs.
func overrides(pairs map[string]string) map[string]any {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]any, len(pairs))
	for k, v := range pairs {
		out[k] = v
	}
	return out
}

// sitePath returns the path of u relative to site.
func sitePath(site content.Site, u string) string {
	prefix := strings.TrimSuffix(site.URL(), "/")
	if prefix != "" && (u == prefix || strings.HasPrefix(u, prefix+"/")) {
		u = strings.TrimPrefix(u, prefix)
	}
	return content.EnsureLeadingSlash(u)
}
