package beostex

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmylchreest/beostex/internal/logger"
	"github.com/jmylchreest/beostex/pkg/exo"
	"github.com/jmylchreest/beostex/pkg/fetcher"
)

// Client fetches exercise pages and converts them.
type Client struct {
	config    Config
	fetcher   fetcher.Fetcher
	converter *exo.Converter
}

// Document is a converted page together with where it came from.
type Document struct {
	Source    string        `json:"source" yaml:"source"`
	Title     string        `json:"title,omitempty" yaml:"title,omitempty"`
	FetchedAt time.Time     `json:"fetched_at" yaml:"fetched_at"`
	Result    *exo.Result   `json:"result" yaml:"result"`
	FetchTime time.Duration `json:"fetch_duration_ns" yaml:"fetch_duration"`
}

// LaTeX returns the exo environments of every exercise.
func (d *Document) LaTeX() string {
	return d.Result.String()
}

var validate = validator.New()

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.cues().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// New creates a Client from DefaultConfig and the given options.
func New(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conv, err := exo.NewConverter(cfg.converterOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create converter: %w", err)
	}

	f, err := fetcher.New(cfg.FetchMode, cfg.fetcherConfig())
	if err != nil {
		return nil, err
	}

	logger.Debug("beostex client created",
		"base_url", cfg.BaseURL,
		"fetch_mode", cfg.FetchMode,
		"content_selector", cfg.ContentSelector)

	return &Client{
		config:    cfg,
		fetcher:   f,
		converter: conv,
	}, nil
}

// NewWithFetcher creates a Client that uses f instead of the configured fetch mode.
func NewWithFetcher(f fetcher.Fetcher, opts ...Option) (*Client, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	_ = c.fetcher.Close()
	c.fetcher = f
	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Converter returns the underlying converter.
func (c *Client) Converter() *exo.Converter {
	return c.converter
}

// Fetch retrieves exercise id and converts it.
func (c *Client) Fetch(ctx context.Context, id string) (*Document, error) {
	pageURL, err := fetcher.ExerciseURL(c.config.BaseURL, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	content, err := c.fetcher.Fetch(ctx, pageURL, fetcher.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exercise %s: %w", id, err)
	}
	fetchTime := time.Since(start)
	logger.Info("exercise page fetched", "id", id, "status", content.StatusCode, "duration", fetchTime.Round(time.Millisecond))

	result, err := c.converter.ConvertHTML(strings.NewReader(content.HTML))
	if err != nil {
		return nil, err
	}

	return &Document{
		Source:    pageURL,
		Title:     content.Title,
		FetchedAt: content.FetchedAt,
		Result:    result,
		FetchTime: fetchTime,
	}, nil
}

// ConvertFile converts a page saved on disk.
func (c *Client) ConvertFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	result, err := c.converter.ConvertHTML(f)
	if err != nil {
		return nil, err
	}

	return &Document{
		Source:    path,
		FetchedAt: info.ModTime(),
		Result:    result,
	}, nil
}

// Close releases fetcher resources.
func (c *Client) Close() error {
	return c.fetcher.Close()
}
