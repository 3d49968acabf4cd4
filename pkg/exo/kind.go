package exo

// Kind classifies a node for the visitor's dispatch.
type Kind int

const (
	KindOther Kind = iota
	KindOrderedList
	KindUnorderedList
	KindListItem
	KindLineBreak
	KindUnderline
	KindBlock
)

// KindOf maps a tag name to its Kind. Unknown tags and text nodes are KindOther.
func KindOf(tag string) Kind {
	switch tag {
	case "ol":
		return KindOrderedList
	case "ul":
		return KindUnorderedList
	case "li":
		return KindListItem
	case "br":
		return KindLineBreak
	case "u":
		return KindUnderline
	case "div":
		return KindBlock
	default:
		return KindOther
	}
}

func (k Kind) String() string {
	switch k {
	case KindOrderedList:
		return "ordered-list"
	case KindUnorderedList:
		return "unordered-list"
	case KindListItem:
		return "list-item"
	case KindLineBreak:
		return "line-break"
	case KindUnderline:
		return "underline"
	case KindBlock:
		return "block"
	default:
		return "other"
	}
}
