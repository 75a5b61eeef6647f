package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonwraymond/seocascade/cache"
	"github.com/jonwraymond/seocascade/cascade"
	"github.com/jonwraymond/seocascade/observe"
)

const (
	serviceName = "seocascade"
	envPrefix   = "SEOCASCADE"
)

// appConfig is the configuration file layout. Every key can be set from
// the environment, e.g. SEOCASCADE_CASCADE_TWITTER_CARD.
type appConfig struct {
	Fixture string         `mapstructure:"fixture"`
	Cascade cascade.Config `mapstructure:"cascade"`
	Observe observe.Config `mapstructure:"observe"`
	Memo    memoConfig     `mapstructure:"memo"`
}

// memoConfig selects the layer memo backend. With a positive TTL the
// flattened site default sets are shared by every resolution of one
// command, e.g. each item of a multi-item query. A zero TTL keeps layers
// for one resolution only.
type memoConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// store returns the cache shared across resolutions, or nil.
func (m memoConfig) store() *cache.TTLCache {
	if m.TTL <= 0 {
		return nil
	}
	return cache.NewTTLCache(m.TTL)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := cascade.DefaultConfig()
	v.SetDefault("fixture", "")
	v.SetDefault("memo.ttl", time.Duration(0))
	v.SetDefault("cascade.twitter_card", c.TwitterCard)
	v.SetDefault("cascade.title_separator", c.TitleSeparator)
	v.SetDefault("cascade.prefix", c.Prefix)

	o := observe.DefaultConfig(serviceName)
	v.SetDefault("observe.register_global", o.RegisterGlobal)
	v.SetDefault("observe.service_name", o.ServiceName)
	v.SetDefault("observe.version", version)
	v.SetDefault("observe.tracing.enabled", o.Tracing.Enabled)
	v.SetDefault("observe.tracing.exporter", o.Tracing.Exporter)
	v.SetDefault("observe.tracing.sample_pct", o.Tracing.SamplePct)
	v.SetDefault("observe.metrics.enabled", o.Metrics.Enabled)
	v.SetDefault("observe.metrics.exporter", o.Metrics.Exporter)
	v.SetDefault("observe.logging.enabled", o.Logging.Enabled)
	v.SetDefault("observe.logging.level", o.Logging.Level)
	return v
}

// readConfig reads cfgFile, or .seocascade.yaml from the working or home
// directory when cfgFile is empty. A missing default file is not an error.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".seocascade")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// loadConfig decodes and validates the configuration held by v.
func loadConfig(v *viper.Viper) (appConfig, error) {
	var cfg appConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Cascade.Validate(); err != nil {
		return appConfig{}, fmt.Errorf("cascade config: %w", err)
	}
	if err := cfg.Observe.Validate(); err != nil {
		return appConfig{}, fmt.Errorf("observe config: %w", err)
	}
	if cfg.Fixture == "" {
		return appConfig{}, errors.New("no fixture configured: pass --fixture or set fixture in the config file")
	}
	return cfg, nil
}
