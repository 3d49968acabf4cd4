// Package exo turns the HTML of an exercise page into LaTeX exo environments.
//
// The conversion runs in three stages. A Visitor linearizes the content nodes
// into text carrying LaTeX list markup and separator tokens. A Segmenter splits
// that stream into one raw block per exercise. A Reconstructor rewrites each
// block, turning free-text numbering ("1.", "a)") into nested question and
// item markup. The Converter ties the stages together with the page header.
package exo

import (
	"errors"
	"strings"
)

// LaTeX markup emitted by the visitor and the reconstructor.
const (
	BeginQuestion = `\begin{question}`
	EndQuestion   = `\end{question}`
	BeginItemize  = `\begin{itemize}`
	EndItemize    = `\end{itemize}`
	Item          = `\item`
	EndExo        = `\end{exo}`
)

// Cues holds the literal markers used to find structure in a page.
type Cues struct {
	// Separator delimits exercises in the visitor output. It must never
	// appear in exercise text and never reaches the final output.
	Separator string `json:"separator" yaml:"separator"`

	// Exercise marks the start of a new exercise.
	Exercise string `json:"exercise" yaml:"exercise"`

	// Hint marks the start of a hint section; nothing from there on is kept.
	Hint string `json:"hint" yaml:"hint"`
}

// DefaultCues returns the cues used by beos.prepas.org pages.
func DefaultCues() Cues {
	return Cues{
		Separator: "-----",
		Exercise:  "Exercice",
		Hint:      "Indication",
	}
}

// Validate checks that the cues can be used together.
func (c Cues) Validate() error {
	if strings.TrimSpace(c.Separator) == "" {
		return errors.New("separator must not be blank")
	}
	if c.Exercise == "" {
		return errors.New("exercise cue must not be empty")
	}
	if c.Hint == "" {
		return errors.New("hint cue must not be empty")
	}
	if strings.Contains(c.Separator, c.Exercise) || strings.Contains(c.Separator, c.Hint) {
		return errors.New("separator must not contain a cue word")
	}
	return nil
}
