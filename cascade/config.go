package cascade

import (
	"fmt"
	"slices"
	"strings"
)

// Config defaults.
const (
	DefaultTwitterCard    = "summary_large_image"
	DefaultTitleSeparator = "|"
	DefaultPrefix         = "seo_"
)

// TwitterCards lists the supported twitter card types.
var TwitterCards = []string{"summary", "summary_large_image"}

// Config holds the fallbacks used when no layer provides a value.
type Config struct {
	// TwitterCard is the card used when neither the page nor its images
	// select one.
	TwitterCard string `mapstructure:"twitter_card" yaml:"twitter_card"`

	// TitleSeparator joins page title and site name when no default set
	// configures one.
	TitleSeparator string `mapstructure:"title_separator" yaml:"title_separator"`

	// Prefix is stripped from page-level field handles.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// DefaultConfig returns the built-in fallbacks.
func DefaultConfig() Config {
	return Config{
		TwitterCard:    DefaultTwitterCard,
		TitleSeparator: DefaultTitleSeparator,
		Prefix:         DefaultPrefix,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	if !slices.Contains(TwitterCards, c.TwitterCard) {
		return fmt.Errorf("%w: unknown twitter card %q", ErrInvalidConfig, c.TwitterCard)
	}
	if strings.TrimSpace(c.TitleSeparator) == "" {
		return fmt.Errorf("%w: empty title separator", ErrInvalidConfig)
	}
	if c.Prefix == "" {
		return fmt.Errorf("%w: empty prefix", ErrInvalidConfig)
	}
	return nil
}

// withDefaults fills empty fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TwitterCard == "" {
		c.TwitterCard = def.TwitterCard
	}
	if c.TitleSeparator == "" {
		c.TitleSeparator = def.TitleSeparator
	}
	if c.Prefix == "" {
		c.Prefix = def.Prefix
	}
	return c
}
