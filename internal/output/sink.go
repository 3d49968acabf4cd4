package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.design/x/clipboard"
)

// Destination names understood by NewSink besides file paths.
const (
	DestClipboard = "clipboard"
	DestStdout    = "-"
)

// ErrClipboardUnavailable indicates the system clipboard cannot be used
// (no display, missing X11 libraries, ...).
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Sink delivers a finished payload, once.
type Sink interface {
	Deliver(payload []byte) error
	Name() string
}

// NewSink returns the sink for dest: "clipboard", "-" or "stdout" for
// standard output, anything else is a file path.
func NewSink(dest string) Sink {
	switch strings.TrimSpace(dest) {
	case DestClipboard:
		return &ClipboardSink{}
	case DestStdout, "stdout", "":
		return &WriterSink{W: os.Stdout, Label: "stdout"}
	default:
		return &FileSink{Path: dest}
	}
}

// WriterSink writes to an io.Writer.
type WriterSink struct {
	W     io.Writer
	Label string
}

// Deliver writes payload.
func (s *WriterSink) Deliver(payload []byte) error {
	_, err := s.W.Write(payload)
	return err
}

// Name returns the sink label.
func (s *WriterSink) Name() string {
	return s.Label
}

// FileSink writes to a file, replacing it.
type FileSink struct {
	Path string
}

// Deliver writes payload to the file.
func (s *FileSink) Deliver(payload []byte) error {
	if err := os.WriteFile(s.Path, payload, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// Name returns the file path.
func (s *FileSink) Name() string {
	return s.Path
}

// Swapped in tests; the real clipboard needs a display.
var (
	clipboardInit  = clipboard.Init
	clipboardWrite = func(data []byte) { clipboard.Write(clipboard.FmtText, data) }
)

// ClipboardSink copies the payload to the system clipboard.
type ClipboardSink struct{}

// Deliver copies payload as text.
func (s *ClipboardSink) Deliver(payload []byte) error {
	if err := clipboardInit(); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	clipboardWrite(payload)
	return nil
}

// Name returns "clipboard".
func (s *ClipboardSink) Name() string {
	return DestClipboard
}
