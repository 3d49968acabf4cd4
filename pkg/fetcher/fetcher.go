// Package fetcher retrieves exercise pages.
// Implement the Fetcher interface to plug in another retrieval strategy.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the page an exercise identifier is appended to.
const DefaultBaseURL = "https://beos.prepas.org/sujet.php?id="

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Mode selects a fetching strategy.
type Mode string

const (
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Options controls fetching behavior for one request.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	Headers         map[string]string
	MaxBodySize     int           // 0 means the fetcher setting
	WaitForSelector string        // CSS selector to wait for (dynamic fetchers)
	WaitDuration    time.Duration // Additional wait after load (dynamic fetchers)
}

// Config holds configuration shared by all fetchers.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int // 0 means unlimited
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:   defaultUserAgent,
		Timeout:     30 * time.Second,
		MaxBodySize: 10 * 1024 * 1024,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	return c
}

// Content represents a fetched page.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Error types for distinguishing failure reasons.
var (
	// ErrStatus indicates the server answered with a non-success status.
	ErrStatus = errors.New("unexpected HTTP status")
	// ErrEmptyID indicates a blank exercise identifier.
	ErrEmptyID = errors.New("empty exercise identifier")
	// ErrUnknownMode indicates an unsupported fetch mode.
	ErrUnknownMode = errors.New("unknown fetch mode")
)

// New creates the fetcher for mode.
func New(mode Mode, cfg Config) (Fetcher, error) {
	switch mode {
	case ModeStatic, "":
		return NewStatic(cfg), nil
	case ModeDynamic:
		return NewDynamic(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// ExerciseURL builds the page URL of exercise id.
func ExerciseURL(base, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return base + url.QueryEscape(id), nil
}
