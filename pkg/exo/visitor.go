package exo

import (
	"strings"
)

// Visitor linearizes a DOM subtree into LaTeX-annotated text.
// It keeps no state between calls.
type Visitor struct {
	cues Cues
}

// NewVisitor creates a visitor using the given cues.
func NewVisitor(cues Cues) *Visitor {
	return &Visitor{cues: cues}
}

// childFilter decides whether the child walk continues with the given child.
// The walk stops at the first child for which it returns false.
type childFilter func(Node) bool

func allChildren(Node) bool { return true }

// Visit returns the annotated text for n and its descendants.
func (v *Visitor) Visit(n Node) string {
	var sb strings.Builder
	v.visit(&sb, n)
	return sb.String()
}

func (v *Visitor) visit(sb *strings.Builder, n Node) {
	kind := KindOf(n.Tag())

	switch kind {
	case KindOrderedList:
		sb.WriteString(BeginQuestion + "\n")
		v.visitChildren(sb, n, allChildren)
		sb.WriteString(EndQuestion + "\n")

	case KindUnorderedList:
		sb.WriteString(BeginItemize + "\n")
		v.visitChildren(sb, n, allChildren)
		sb.WriteString(EndItemize + "\n")

	case KindListItem:
		sb.WriteString(Item + "\n")
		if text, ok := n.OwnText(); ok {
			sb.WriteString(text)
		}
		v.visitChildren(sb, n, allChildren)
		sb.WriteString("\n")

	case KindLineBreak:
		sb.WriteString("\n")

	case KindUnderline:
		// Underlined titles carry the cue; their children are never visited.
		if strings.Contains(n.Text(), v.cues.Exercise) {
			v.writeSeparator(sb)
		}

	default:
		if kind == KindBlock {
			sb.WriteString("\n")
		}
		if text, ok := n.OwnText(); ok {
			if strings.Contains(text, v.cues.Exercise) {
				v.writeSeparator(sb)
			} else {
				sb.WriteString(text)
			}
		}
		v.visitChildren(sb, n, v.untilHint)
	}
}

func (v *Visitor) visitChildren(sb *strings.Builder, n Node, keep childFilter) {
	for _, child := range n.Children() {
		if !keep(child) {
			return
		}
		v.visit(sb, child)
	}
}

// untilHint stops the walk at the first child opening a hint section;
// that child and its later siblings are dropped.
func (v *Visitor) untilHint(child Node) bool {
	return !strings.HasPrefix(child.Text(), v.cues.Hint)
}

func (v *Visitor) writeSeparator(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(v.cues.Separator)
	sb.WriteString("\n")
}
