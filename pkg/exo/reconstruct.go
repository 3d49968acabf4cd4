package exo

import (
	"fmt"
	"regexp"
	"strconv"
)

// space matches Unicode white space; pages use non-breaking spaces freely.
const space = `[\s\v\x{85}\p{Z}]`

// Rewrite is one named regular-expression rewrite step.
type Rewrite struct {
	Name        string
	Pattern     string
	Replacement string
}

// DefaultRewrites is the ordered rewrite chain. The steps are not
// idempotent and only work in this order: lettered-run relies on the
// question markup inserted by numbered-run, and the item steps rely on
// both runs having been wrapped already.
var DefaultRewrites = []Rewrite{
	{
		// Everything from the first "1." to the end of the block.
		Name:        "numbered-run",
		Pattern:     `(?s)(1\..*)`,
		Replacement: BeginQuestion + "\n${1}" + EndQuestion + "\n",
	},
	{
		// A run of lettered parts up to the next top-level number.
		Name:        "lettered-run",
		Pattern:     `(?s)(a\).*?)(\n` + space + `*\d\.)`,
		Replacement: "\n" + BeginQuestion + "\n${1}" + EndQuestion + "\n${2}",
	},
	{
		Name:        "numbered-item",
		Pattern:     `(?s)(` + space + `+)\d\.`,
		Replacement: "${1}" + Item + " ",
	},
	{
		// Only indented letters, i.e. preceded by a newline and more white space.
		Name:        "lettered-item",
		Pattern:     `(?s)(\n` + space + `+)[a-z]\)`,
		Replacement: "${1}" + Item + " ",
	},
}

// PatternError reports a rewrite step whose pattern does not compile.
type PatternError struct {
	Step    string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("rewrite %q: invalid pattern %q: %v", e.Step, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

type compiledRewrite struct {
	name        string
	re          *regexp.Regexp
	replacement string
}

// Reconstructor rebuilds question/item structure inside a raw exercise block.
type Reconstructor struct {
	steps []compiledRewrite
}

// NewReconstructor compiles the rewrite steps, in order.
func NewReconstructor(rewrites []Rewrite) (*Reconstructor, error) {
	steps := make([]compiledRewrite, 0, len(rewrites))
	for _, rw := range rewrites {
		re, err := regexp.Compile(rw.Pattern)
		if err != nil {
			return nil, &PatternError{Step: rw.Name, Pattern: rw.Pattern, Err: err}
		}
		steps = append(steps, compiledRewrite{name: rw.Name, re: re, replacement: rw.Replacement})
	}
	return &Reconstructor{steps: steps}, nil
}

// Reconstruct applies every step to block. A block without numbering
// comes back unchanged.
func (r *Reconstructor) Reconstruct(block string) string {
	for _, step := range r.steps {
		block = step.re.ReplaceAllString(block, step.replacement)
	}
	return block
}

// StepOutput is the text after one rewrite step.
type StepOutput struct {
	Step   string
	Output string
}

// Trace is Reconstruct, keeping the intermediate text after each step.
func (r *Reconstructor) Trace(block string) []StepOutput {
	trace := make([]StepOutput, 0, len(r.steps))
	for _, step := range r.steps {
		block = step.re.ReplaceAllString(block, step.replacement)
		trace = append(trace, StepOutput{Step: step.name, Output: block})
	}
	return trace
}

var lineNumber = regexp.MustCompile(`(?m)^` + space + `*(\d+)\.` + space)

// DuplicateNumbering returns the top-level numbers that start more than one
// line of block, in order of their first repetition. The rewrites accept
// such blocks; this is only used to warn about them.
func DuplicateNumbering(block string) []int {
	seen := make(map[int]int)
	var dups []int
	for _, m := range lineNumber.FindAllStringSubmatch(block, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}
