package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/beostex/pkg/beostex"
	"github.com/jmylchreest/beostex/pkg/exo"
	"gopkg.in/yaml.v3"
)

func testDoc(source, body string) *beostex.Document {
	return &beostex.Document{
		Source: source,
		Result: &exo.Result{
			Header:    exo.Header{Fields: []string{"2020", "PC"}},
			Exercises: []exo.Exercise{{Index: 1, Raw: body, Body: body}},
			Stats:     &exo.Stats{Exercises: 1},
		},
	}
}

// --- NewWriter Factory Tests ---

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format Format
		check  func(Writer) bool
	}{
		{FormatLaTeX, func(w Writer) bool { _, ok := w.(*LaTeXWriter); return ok }},
		{"", func(w Writer) bool { _, ok := w.(*LaTeXWriter); return ok }},
		{FormatJSON, func(w Writer) bool { _, ok := w.(*JSONWriter); return ok }},
		{FormatYAML, func(w Writer) bool { _, ok := w.(*YAMLWriter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if !tt.check(w) {
				t.Errorf("unexpected writer type %T", w)
			}
		})
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("docx"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

// --- LaTeXWriter Tests ---

func TestLaTeXWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewLaTeXWriter(buf)

	if err := w.Write(testDoc("a", "premier")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(testDoc("b", "second")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	open := "\\begin{exo}[comment=2020 PC]\n"
	want := open + "premier\\end{exo}\n" + open + "second\\end{exo}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

// --- JSONWriter Tests ---

func TestJSONWriter_SingleDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(testDoc("page", "x < y")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got struct {
		Source string `json:"source"`
		Result struct {
			Exercises []struct {
				Body string `json:"body"`
			} `json:"exercises"`
		} `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if got.Source != "page" || len(got.Result.Exercises) != 1 || got.Result.Exercises[0].Body != "x < y" {
		t.Errorf("unexpected result: %+v", got)
	}
	if strings.Contains(buf.String(), `\u003c`) {
		t.Error("HTML characters should not be escaped")
	}
}

func TestJSONWriter_MultipleDocuments_OutputsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	_ = w.Write(testDoc("first", "1"))
	_ = w.Write(testDoc("second", "2"))
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var got []struct {
		Source string `json:"source"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(got) != 2 || got[0].Source != "first" || got[1].Source != "second" {
		t.Errorf("unexpected result: %+v", got)
	}
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 1 {
		t.Errorf("expected compact output on one line, got %d lines", len(lines))
	}
}

func TestJSONWriter_FlushTwiceWritesOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	_ = w.Write(testDoc("only", "x"))
	_ = w.Flush()
	_ = w.Close()

	if n := strings.Count(buf.String(), `"source"`); n != 1 {
		t.Errorf("expected the document once, got %d times", n)
	}
}

// --- YAMLWriter Tests ---

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(testDoc("page", "corps")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if got["source"] != "page" {
		t.Errorf("source = %v", got["source"])
	}
	if !strings.Contains(buf.String(), "body: corps") {
		t.Errorf("expected exercise body in %q", buf.String())
	}
}

// --- Sink Tests ---

func TestNewSink(t *testing.T) {
	tests := []struct {
		dest     string
		wantName string
	}{
		{"clipboard", "clipboard"},
		{"-", "stdout"},
		{"stdout", "stdout"},
		{"", "stdout"},
		{"out.tex", "out.tex"},
	}

	for _, tt := range tests {
		if got := NewSink(tt.dest).Name(); got != tt.wantName {
			t.Errorf("NewSink(%q).Name() = %q, want %q", tt.dest, got, tt.wantName)
		}
	}
}

func TestWriterSink(t *testing.T) {
	buf := &bytes.Buffer{}
	s := &WriterSink{W: buf, Label: "buf"}

	if err := s.Deliver([]byte("payload")); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if buf.String() != "payload" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exo.tex")
	s := NewSink(path)

	if err := s.Deliver([]byte("\\begin{exo}")); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\\begin{exo}" {
		t.Errorf("file content = %q", data)
	}

	bad := &FileSink{Path: filepath.Join(t.TempDir(), "missing", "exo.tex")}
	if err := bad.Deliver([]byte("x")); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestClipboardSink(t *testing.T) {
	origInit, origWrite := clipboardInit, clipboardWrite
	defer func() { clipboardInit, clipboardWrite = origInit, origWrite }()

	t.Run("copies payload", func(t *testing.T) {
		var copied []byte
		clipboardInit = func() error { return nil }
		clipboardWrite = func(data []byte) { copied = data }

		if err := (&ClipboardSink{}).Deliver([]byte("exo")); err != nil {
			t.Fatalf("Deliver() error = %v", err)
		}
		if string(copied) != "exo" {
			t.Errorf("copied %q", copied)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		clipboardInit = func() error { return errors.New("no display") }
		clipboardWrite = func([]byte) { t.Error("write should not be called") }

		err := (&ClipboardSink{}).Deliver([]byte("exo"))
		if !errors.Is(err, ErrClipboardUnavailable) {
			t.Errorf("expected ErrClipboardUnavailable, got %v", err)
		}
	})
}
