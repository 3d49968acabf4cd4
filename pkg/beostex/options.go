// Package beostex fetches exercise pages and converts them to LaTeX.
package beostex

import (
	"time"

	"github.com/jmylchreest/beostex/pkg/exo"
	"github.com/jmylchreest/beostex/pkg/fetcher"
)

// Config holds all beostex configuration.
type Config struct {
	// Fetch settings
	BaseURL     string        `validate:"required,url"`
	FetchMode   fetcher.Mode  `validate:"oneof=static dynamic"`
	UserAgent   string        `validate:"required"`
	Timeout     time.Duration `validate:"gt=0"`
	MaxBodySize int           `validate:"gte=0"`

	// Page layout
	ContentSelector string `validate:"required"`
	HeaderSelector  string `validate:"required"`
	HeaderLimit     int    `validate:"min=1,max=10"`

	// Structure cues
	Separator   string `validate:"required"`
	ExerciseCue string `validate:"required"`
	HintCue     string `validate:"required"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	fc := fetcher.DefaultConfig()
	cues := exo.DefaultCues()
	return Config{
		BaseURL:         fetcher.DefaultBaseURL,
		FetchMode:       fetcher.ModeStatic,
		UserAgent:       fc.UserAgent,
		Timeout:         fc.Timeout,
		MaxBodySize:     fc.MaxBodySize,
		ContentSelector: exo.DefaultContentSelector,
		HeaderSelector:  exo.DefaultHeaderSelector,
		HeaderLimit:     exo.DefaultHeaderLimit,
		Separator:       cues.Separator,
		ExerciseCue:     cues.Exercise,
		HintCue:         cues.Hint,
	}
}

// Option configures beostex.
type Option func(*Config)

// WithBaseURL sets the URL exercise identifiers are appended to.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithFetchMode sets the fetch mode (static, dynamic).
func WithFetchMode(mode fetcher.Mode) Option {
	return func(c *Config) {
		c.FetchMode = mode
	}
}

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxBodySize limits the size of a fetched page.
func WithMaxBodySize(n int) Option {
	return func(c *Config) {
		c.MaxBodySize = n
	}
}

// WithContentSelector sets the selector of the exercise containers.
func WithContentSelector(sel string) Option {
	return func(c *Config) {
		c.ContentSelector = sel
	}
}

// WithHeaderSelector sets the selector of the metadata paragraphs.
func WithHeaderSelector(sel string) Option {
	return func(c *Config) {
		c.HeaderSelector = sel
	}
}

// WithHeaderLimit sets how many metadata strings go into the header.
func WithHeaderLimit(n int) Option {
	return func(c *Config) {
		c.HeaderLimit = n
	}
}

// WithCues replaces the separator and cue words.
func WithCues(cues exo.Cues) Option {
	return func(c *Config) {
		c.Separator = cues.Separator
		c.ExerciseCue = cues.Exercise
		c.HintCue = cues.Hint
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func (c Config) cues() exo.Cues {
	return exo.Cues{
		Separator: c.Separator,
		Exercise:  c.ExerciseCue,
		Hint:      c.HintCue,
	}
}

func (c Config) converterOptions() exo.Options {
	return exo.Options{
		Cues:            c.cues(),
		ContentSelector: c.ContentSelector,
		HeaderSelector:  c.HeaderSelector,
		HeaderLimit:     c.HeaderLimit,
		Rewrites:        exo.DefaultRewrites,
	}
}

func (c Config) fetcherConfig() fetcher.Config {
	return fetcher.Config{
		UserAgent:   c.UserAgent,
		Timeout:     c.Timeout,
		MaxBodySize: c.MaxBodySize,
	}
}
