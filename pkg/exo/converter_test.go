package exo

import (
	"errors"
	"strings"
	"testing"
)

const samplePage = `<html><body>
<div><div><p>Analyse</p><p>PCSI</p></div></div>
<div class="latex"><u>Exercice 1</u>Soit f.<br>1. Montrer.<br>2. Calculer.</div>
<div class="latex"><u>Exercice 2</u>Rien.</div>
</body></html>`

func TestConverter_ConvertHTML(t *testing.T) {
	c, err := NewConverter(DefaultOptions())
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	result, err := c.ConvertHTML(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("ConvertHTML() error = %v", err)
	}

	if len(result.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(result.Exercises))
	}
	if got := result.Header.Comment(); got != "PCSI Analyse" {
		t.Errorf("header = %q, want %q", got, "PCSI Analyse")
	}

	open := "\\begin{exo}[comment=PCSI Analyse]\n"
	want := open +
		"\nSoit f.\n\\begin{question}\n\\item  Montrer.\n\\item  Calculer.\n\n\\end{question}\n" +
		"\\end{exo}\n" +
		open +
		"\nRien." +
		"\\end{exo}\n"
	if got := result.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}

	for i, ex := range result.Exercises {
		if ex.Index != i+1 {
			t.Errorf("exercise %d has index %d", i, ex.Index)
		}
	}
	if result.Stats.Exercises != 2 || result.Stats.Containers != 2 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning for the short header, got %q", result.Warnings)
	}
}

func TestConverter_EmptyPage(t *testing.T) {
	c, err := NewConverter(Options{})
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	result, err := c.ConvertHTML(strings.NewReader(`<html><body></body></html>`))
	if err != nil {
		t.Fatalf("ConvertHTML() error = %v", err)
	}

	if len(result.Exercises) != 1 {
		t.Fatalf("expected a single exercise, got %d", len(result.Exercises))
	}
	if got := result.String(); got != "\\begin{exo}[comment=]\n\\end{exo}\n" {
		t.Errorf("String() = %q", got)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("expected warnings for header and content, got %q", result.Warnings)
	}
}

func TestConverter_DuplicateNumberingWarns(t *testing.T) {
	c, err := NewConverter(DefaultOptions())
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	page := `<html><body><div><div><p>a</p><p>b</p><p>c</p></div></div>
<div class="latex">1. un<br>1. encore</div></body></html>`
	result, err := c.ConvertHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ConvertHTML() error = %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "[1]") {
		t.Errorf("expected a duplicate numbering warning, got %q", result.Warnings)
	}
	assertBalanced(t, result.String())
}

func TestNewConverter_Errors(t *testing.T) {
	t.Run("malformed rewrite", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Rewrites = []Rewrite{{Name: "bad", Pattern: `[`}}

		_, err := NewConverter(opts)
		var pe *PatternError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *PatternError, got %v", err)
		}
	})

	t.Run("invalid cues", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Cues.Separator = " "

		if _, err := NewConverter(opts); err == nil {
			t.Fatal("expected error for blank separator")
		}
	})
}

func TestResult_StringKeepsOrder(t *testing.T) {
	r := &Result{
		Header: Header{Fields: []string{"X"}},
		Exercises: []Exercise{
			{Index: 1, Body: "premier"},
			{Index: 2, Body: "second"},
		},
	}

	got := r.String()
	if strings.Index(got, "premier") > strings.Index(got, "second") {
		t.Errorf("exercises out of order: %q", got)
	}
	if n := strings.Count(got, `\begin{exo}`); n != 2 {
		t.Errorf("expected 2 exo environments, got %d", n)
	}
}
