package exo

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is the read-only view of a DOM node used by the visitor.
// Text nodes have an empty tag and own text; elements have a tag and no own text.
type Node interface {
	// Tag returns the lowercase element name, or "" for non-element nodes.
	Tag() string

	// OwnText returns the node's direct text, if it carries any.
	OwnText() (string, bool)

	// Children returns the direct children in document order.
	Children() []Node

	// Text returns the text of the node and all its descendants.
	Text() string
}

// FromHTML wraps an x/net/html node.
func FromHTML(n *html.Node) Node {
	return htmlNode{n: n}
}

type htmlNode struct {
	n *html.Node
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return h.n.Data
}

func (h htmlNode) OwnText() (string, bool) {
	if h.n.Type != html.TextNode {
		return "", false
	}
	return h.n.Data, true
}

func (h htmlNode) Children() []Node {
	var children []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, htmlNode{n: c})
	}
	return children
}

func (h htmlNode) Text() string {
	var sb strings.Builder
	collectText(&sb, h.n)
	return sb.String()
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

// Element is an in-memory element node, handy for building trees by hand.
type Element struct {
	Name  string
	Nodes []Node
}

// El builds an Element.
func El(name string, children ...Node) *Element {
	return &Element{Name: strings.ToLower(name), Nodes: children}
}

func (e *Element) Tag() string             { return e.Name }
func (e *Element) OwnText() (string, bool) { return "", false }
func (e *Element) Children() []Node        { return e.Nodes }

func (e *Element) Text() string {
	var sb strings.Builder
	for _, c := range e.Nodes {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// TextNode is an in-memory text node.
type TextNode string

// Txt builds a TextNode.
func Txt(s string) TextNode { return TextNode(s) }

func (t TextNode) Tag() string             { return "" }
func (t TextNode) OwnText() (string, bool) { return string(t), true }
func (t TextNode) Children() []Node        { return nil }
func (t TextNode) Text() string            { return string(t) }
