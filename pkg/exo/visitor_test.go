package exo

import (
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"ol", KindOrderedList},
		{"ul", KindUnorderedList},
		{"li", KindListItem},
		{"br", KindLineBreak},
		{"u", KindUnderline},
		{"div", KindBlock},
		{"p", KindOther},
		{"", KindOther},
	}

	for _, tt := range tests {
		if got := KindOf(tt.tag); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestVisitor_Visit(t *testing.T) {
	v := NewVisitor(DefaultCues())

	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "text node",
			node: Txt("Soit f."),
			want: "Soit f.",
		},
		{
			name: "line break",
			node: El("br"),
			want: "\n",
		},
		{
			name: "div starts on a new line",
			node: El("div", Txt("a"), El("span", Txt("b"))),
			want: "\nab",
		},
		{
			name: "ordered list becomes question",
			node: El("ol", El("li", Txt("one")), El("li", Txt("two"))),
			want: "\\begin{question}\n\\item\none\n\\item\ntwo\n\\end{question}\n",
		},
		{
			name: "unordered list becomes itemize",
			node: El("ul", El("li", Txt("x"))),
			want: "\\begin{itemize}\n\\item\nx\n\\end{itemize}\n",
		},
		{
			name: "underline with cue emits separator",
			node: El("u", Txt("Exercice 3")),
			want: "\n-----\n",
		},
		{
			name: "underline without cue emits nothing",
			node: El("u", Txt("important")),
			want: "",
		},
		{
			name: "text with cue emits separator",
			node: El("p", Txt("Exercice 2 (difficile)")),
			want: "\n-----\n",
		},
		{
			name: "element containing cue is descended into",
			node: El("p", El("b", Txt("Exercice 1")), Txt(" suite")),
			want: "\n-----\n suite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Visit(tt.node); got != tt.want {
				t.Errorf("Visit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVisitor_EveryCueEmitsItsOwnSeparator(t *testing.T) {
	v := NewVisitor(DefaultCues())
	node := El("div",
		El("u", Txt("Exercice 1")), Txt("a"),
		El("u", Txt("Exercice 2")), Txt("b"),
	)

	got := v.Visit(node)
	if n := strings.Count(got, "-----"); n != 2 {
		t.Errorf("expected 2 separators, got %d in %q", n, got)
	}
}

func TestVisitor_TruncatesAtHint(t *testing.T) {
	v := NewVisitor(DefaultCues())
	node := El("div",
		Txt("keep me"),
		El("p", Txt("Indication : poser u = x")),
		Txt("dropped too"),
		El("ol", El("li", Txt("also dropped"))),
	)

	got := v.Visit(node)
	if got != "\nkeep me" {
		t.Errorf("Visit() = %q, want %q", got, "\nkeep me")
	}
	for _, s := range []string{"Indication", "dropped too", "also dropped"} {
		if strings.Contains(got, s) {
			t.Errorf("output should not contain %q: %q", s, got)
		}
	}
}

func TestVisitor_HintMustStartTheChild(t *testing.T) {
	v := NewVisitor(DefaultCues())
	node := El("div", El("p", Txt(" Indication")), Txt("kept"))

	got := v.Visit(node)
	if !strings.Contains(got, "kept") {
		t.Errorf("leading space should prevent truncation: %q", got)
	}
}

func TestVisitor_ListsDoNotTruncate(t *testing.T) {
	v := NewVisitor(DefaultCues())
	node := El("ul", El("li", Txt("Indication visible")), El("li", Txt("next")))

	got := v.Visit(node)
	if !strings.Contains(got, "Indication visible") || !strings.Contains(got, "next") {
		t.Errorf("list children should all be visited: %q", got)
	}
}

func TestVisitor_BalancedMarkup(t *testing.T) {
	v := NewVisitor(DefaultCues())
	node := El("div",
		El("ol",
			El("li", Txt("a"), El("ul", El("li", Txt("b")), El("li", Txt("c")))),
			El("li", El("ol", El("li", Txt("d")))),
		),
		El("ul"),
	)

	got := v.Visit(node)
	assertBalanced(t, got)
}

func TestVisitor_CustomCues(t *testing.T) {
	v := NewVisitor(Cues{Separator: "@@@", Exercise: "Problem", Hint: "Hint"})
	node := El("div", El("u", Txt("Problem 1")), Txt("body"), El("p", Txt("Hint: none")))

	got := v.Visit(node)
	if got != "\n\n@@@\nbody" {
		t.Errorf("Visit() = %q", got)
	}
}

func TestCues_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cues    Cues
		wantErr bool
	}{
		{"defaults", DefaultCues(), false},
		{"blank separator", Cues{Separator: "  ", Exercise: "E", Hint: "H"}, true},
		{"empty exercise", Cues{Separator: "--", Exercise: "", Hint: "H"}, true},
		{"empty hint", Cues{Separator: "--", Exercise: "E", Hint: ""}, true},
		{"separator contains cue", Cues{Separator: "--Exercice--", Exercise: "Exercice", Hint: "H"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cues.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// assertBalanced checks that every environment opened in s is closed.
func assertBalanced(t *testing.T, s string) {
	t.Helper()
	pairs := [][2]string{
		{BeginQuestion, EndQuestion},
		{BeginItemize, EndItemize},
	}
	for _, p := range pairs {
		open, closing := strings.Count(s, p[0]), strings.Count(s, p[1])
		if open != closing {
			t.Errorf("%s opened %d times, %s closed %d times in %q", p[0], open, p[1], closing, s)
		}
	}
}
