package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/jmylchreest/beostex/pkg/beostex"
	"gopkg.in/yaml.v3"
)

// LaTeXWriter writes the exo environments of each document as they come.
type LaTeXWriter struct {
	w *bufio.Writer
}

// NewLaTeXWriter creates a LaTeX writer.
func NewLaTeXWriter(w io.Writer) *LaTeXWriter {
	return &LaTeXWriter{w: bufio.NewWriter(w)}
}

// Write appends the document's LaTeX.
func (w *LaTeXWriter) Write(doc *beostex.Document) error {
	_, err := w.w.WriteString(doc.LaTeX())
	return err
}

// Flush flushes the buffer.
func (w *LaTeXWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *LaTeXWriter) Close() error {
	return w.Flush()
}

// buffered collects documents until Flush; a single document is encoded
// on its own, several as a list.
type buffered struct {
	docs []*beostex.Document
}

func (b *buffered) Write(doc *beostex.Document) error {
	b.docs = append(b.docs, doc)
	return nil
}

func (b *buffered) payload() any {
	if len(b.docs) == 1 {
		return b.docs[0]
	}
	return b.docs
}

// JSONWriter writes JSON output.
type JSONWriter struct {
	buffered
	w      *bufio.Writer
	pretty bool
	indent string
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

// Flush writes the buffered documents as JSON.
func (w *JSONWriter) Flush() error {
	if len(w.docs) == 0 {
		return w.w.Flush()
	}

	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(w.payload()); err != nil {
		return err
	}
	w.docs = nil
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// YAMLWriter writes YAML output.
type YAMLWriter struct {
	buffered
	w *bufio.Writer
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: bufio.NewWriter(w)}
}

// Flush writes the buffered documents as YAML.
func (w *YAMLWriter) Flush() error {
	if len(w.docs) == 0 {
		return w.w.Flush()
	}

	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(w.payload()); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	w.docs = nil
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
