package exo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmylchreest/beostex/internal/logger"
)

// DefaultContentSelector matches the containers holding exercise statements.
const DefaultContentSelector = ".latex"

// Segmenter splits a page into raw exercise blocks.
type Segmenter struct {
	visitor  *Visitor
	cues     Cues
	selector string
}

// NewSegmenter creates a segmenter. An empty selector means DefaultContentSelector.
func NewSegmenter(cues Cues, selector string) *Segmenter {
	if selector == "" {
		selector = DefaultContentSelector
	}
	return &Segmenter{
		visitor:  NewVisitor(cues),
		cues:     cues,
		selector: selector,
	}
}

// Segment visits every content container of doc and splits the result
// into exercise blocks. It always returns at least one block.
func (s *Segmenter) Segment(doc *goquery.Document) []string {
	matches := doc.Find(s.selector)
	logger.Debug("segmenting document", "selector", s.selector, "containers", matches.Length())

	roots := make([]Node, 0, matches.Length())
	for _, n := range matches.Nodes {
		roots = append(roots, FromHTML(n))
	}
	return s.SegmentNodes(roots)
}

// SegmentNodes is Segment over already selected containers.
func (s *Segmenter) SegmentNodes(roots []Node) []string {
	return s.Split(s.Linearize(roots))
}

// Linearize visits each root in order and concatenates the results.
func (s *Segmenter) Linearize(roots []Node) string {
	var sb strings.Builder
	for _, root := range roots {
		sb.WriteString(s.visitor.Visit(root))
	}
	return sb.String()
}

// Split cuts a visitor stream on the separator. A stream without any
// separator is treated as a single exercise. Whatever precedes the first
// separator is dropped, even when it is not empty.
func (s *Segmenter) Split(stream string) []string {
	if !strings.Contains(stream, s.cues.Separator) {
		stream = s.cues.Separator + stream
	}
	parts := strings.Split(stream, s.cues.Separator)
	if lead := strings.TrimSpace(parts[0]); lead != "" {
		logger.Debug("dropping text before first exercise", "bytes", len(lead))
	}
	return parts[1:]
}
