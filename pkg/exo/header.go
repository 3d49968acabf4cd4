package exo

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// DefaultHeaderSelector matches the paragraphs listing the page metadata.
	DefaultHeaderSelector = "div > div > p"

	// DefaultHeaderLimit is how many metadata strings the header keeps.
	DefaultHeaderLimit = 3
)

// Header is the metadata shared by every exercise of a page,
// ordered least specific first.
type Header struct {
	Fields []string `json:"fields" yaml:"fields"`
}

// BuildHeader collects the first limit text nodes directly under elements
// matching selector. The page lists them most specific first, so they are
// reversed. Missing strings just make the header shorter.
func BuildHeader(doc *goquery.Document, selector string, limit int) Header {
	if selector == "" {
		selector = DefaultHeaderSelector
	}
	if limit <= 0 {
		limit = DefaultHeaderLimit
	}

	fields := make([]string, 0, limit)
	doc.Find(selector).Contents().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Nodes[0].Type != html.TextNode {
			return true
		}
		fields = append(fields, strings.TrimSpace(s.Nodes[0].Data))
		return len(fields) < limit
	})
	slices.Reverse(fields)

	return Header{Fields: fields}
}

// Comment returns the fields joined by single spaces.
func (h Header) Comment() string {
	return strings.Join(h.Fields, " ")
}

// Open returns the line opening an exo environment.
func (h Header) Open() string {
	return `\begin{exo}[comment=` + h.Comment() + "]\n"
}

// Close returns the line closing an exo environment.
func (h Header) Close() string {
	return EndExo + "\n"
}
