package exo

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmylchreest/beostex/internal/logger"
)

// Options configures a Converter. Zero values fall back to the defaults.
type Options struct {
	Cues            Cues
	ContentSelector string
	HeaderSelector  string
	HeaderLimit     int
	Rewrites        []Rewrite
}

// DefaultOptions returns the settings matching beos.prepas.org pages.
func DefaultOptions() Options {
	return Options{
		Cues:            DefaultCues(),
		ContentSelector: DefaultContentSelector,
		HeaderSelector:  DefaultHeaderSelector,
		HeaderLimit:     DefaultHeaderLimit,
		Rewrites:        DefaultRewrites,
	}
}

// Converter runs the whole page-to-LaTeX pipeline.
type Converter struct {
	opts          Options
	segmenter     *Segmenter
	reconstructor *Reconstructor
}

// NewConverter creates a converter. It fails with a *PatternError when a
// rewrite does not compile, or when the cues are unusable.
func NewConverter(opts Options) (*Converter, error) {
	def := DefaultOptions()
	if opts.Cues == (Cues{}) {
		opts.Cues = def.Cues
	}
	if opts.ContentSelector == "" {
		opts.ContentSelector = def.ContentSelector
	}
	if opts.HeaderSelector == "" {
		opts.HeaderSelector = def.HeaderSelector
	}
	if opts.HeaderLimit <= 0 {
		opts.HeaderLimit = def.HeaderLimit
	}
	if opts.Rewrites == nil {
		opts.Rewrites = def.Rewrites
	}

	if err := opts.Cues.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cues: %w", err)
	}

	r, err := NewReconstructor(opts.Rewrites)
	if err != nil {
		return nil, err
	}

	return &Converter{
		opts:          opts,
		segmenter:     NewSegmenter(opts.Cues, opts.ContentSelector),
		reconstructor: r,
	}, nil
}

// Exercise is one converted exercise.
type Exercise struct {
	Index int    `json:"index" yaml:"index"`
	Raw   string `json:"raw" yaml:"raw"`
	Body  string `json:"body" yaml:"body"`
}

// Result holds everything produced from one page.
type Result struct {
	Header    Header     `json:"header" yaml:"header"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
	Warnings  []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Stats     *Stats     `json:"stats" yaml:"stats"`
}

// String renders every exercise inside its exo environment, in page order.
func (r *Result) String() string {
	var sb strings.Builder
	open, closing := r.Header.Open(), r.Header.Close()
	for _, ex := range r.Exercises {
		sb.WriteString(open)
		sb.WriteString(ex.Body)
		sb.WriteString(closing)
	}
	return sb.String()
}

// ConvertHTML parses r and converts it.
func (c *Converter) ConvertHTML(r io.Reader) (*Result, error) {
	start := time.Now()
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	parsed := time.Since(start)

	result := c.Convert(doc)
	result.Stats.ParseDuration = parsed
	return result, nil
}

// Convert turns a parsed page into exercises. It never fails: a page
// without content yields a single empty exercise.
func (c *Converter) Convert(doc *goquery.Document) *Result {
	start := time.Now()
	result := &Result{Stats: &Stats{}}

	headerStart := time.Now()
	result.Header = BuildHeader(doc, c.opts.HeaderSelector, c.opts.HeaderLimit)
	result.Stats.HeaderDuration = time.Since(headerStart)
	if len(result.Header.Fields) < c.opts.HeaderLimit {
		result.addWarning("header has %d of %d fields", len(result.Header.Fields), c.opts.HeaderLimit)
	}

	segmentStart := time.Now()
	containers := doc.Find(c.opts.ContentSelector)
	result.Stats.Containers = containers.Length()
	if result.Stats.Containers == 0 {
		result.addWarning("no element matches %q", c.opts.ContentSelector)
	}
	blocks := c.segmenter.Segment(doc)
	result.Stats.SegmentDuration = time.Since(segmentStart)

	rebuildStart := time.Now()
	result.Exercises = make([]Exercise, 0, len(blocks))
	for i, block := range blocks {
		if dups := DuplicateNumbering(block); len(dups) > 0 {
			result.addWarning("exercise %d: numbers %v appear more than once", i+1, dups)
		}
		body := c.reconstructor.Reconstruct(block)
		result.Exercises = append(result.Exercises, Exercise{
			Index: i + 1,
			Raw:   block,
			Body:  body,
		})
		result.Stats.InputBytes += len(block)
		result.Stats.OutputBytes += len(body)
	}
	result.Stats.ReconstructDuration = time.Since(rebuildStart)
	result.Stats.Exercises = len(result.Exercises)
	result.Stats.TotalDuration = time.Since(start)

	logger.Debug("page converted",
		"exercises", result.Stats.Exercises,
		"containers", result.Stats.Containers,
		"header", result.Header.Comment(),
		"warnings", len(result.Warnings))

	return result
}

// Segments exposes the raw blocks of doc, before reconstruction.
func (c *Converter) Segments(doc *goquery.Document) []string {
	return c.segmenter.Segment(doc)
}

// Reconstructor returns the rewrite chain used by c.
func (c *Converter) Reconstructor() *Reconstructor {
	return c.reconstructor
}

func (r *Result) addWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	logger.Warn(msg)
}
