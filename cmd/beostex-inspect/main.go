// beostex-inspect is a standalone tool for debugging the exercise conversion.
//
// Usage:
//
//	beostex-inspect [options] <url-or-file>
//
// Examples:
//
//	# Inspect a saved page
//	beostex-inspect sujet.html
//
//	# Inspect exercise 4521 as served by the site
//	beostex-inspect -id 4521
//
//	# Show the output of every rewrite step
//	beostex-inspect -trace sujet.html
//
//	# Stats only, as JSON
//	beostex-inspect -stats-only -json sujet.html
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/beostex/internal/logger"
	"github.com/jmylchreest/beostex/pkg/exo"
	"github.com/jmylchreest/beostex/pkg/fetcher"
)

var (
	// Input options
	fileInput = flag.String("f", "", "Read HTML from file instead of URL")
	idInput   = flag.String("id", "", "Fetch this exercise id from the BEOS site")
	baseURL   = flag.String("base-url", fetcher.DefaultBaseURL, "URL the exercise id is appended to")
	timeout   = flag.Duration("timeout", 30*time.Second, "Fetch timeout")

	// Conversion options
	selector = flag.String("selector", exo.DefaultContentSelector, "CSS selector of the exercise containers")

	// Output options
	trace     = flag.Bool("trace", false, "Show the output of every rewrite step")
	statsOnly = flag.Bool("stats-only", false, "Only show stats, don't output blocks")
	jsonStats = flag.Bool("json", false, "Output stats as JSON")
	verbose   = flag.Bool("v", false, "Debug logging")
)

type inspectOptions struct {
	Selector  string
	Trace     bool
	StatsOnly bool
	JSON      bool
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "beostex-inspect - Debug tool for the beostex conversion\n\n")
		fmt.Fprintf(os.Stderr, "Usage: beostex-inspect [options] <url-or-file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  beostex-inspect sujet.html\n")
		fmt.Fprintf(os.Stderr, "  beostex-inspect -id 4521 -trace\n")
		fmt.Fprintf(os.Stderr, "  cat sujet.html | beostex-inspect -stats-only\n")
	}

	flag.Parse()

	_ = logger.Init(logger.Options{Debug: *verbose})

	html, source, err := readInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(html) == 0 {
		fmt.Fprintf(os.Stderr, "Error: empty input\n")
		os.Exit(1)
	}

	opts := inspectOptions{
		Selector:  *selector,
		Trace:     *trace,
		StatsOnly: *statsOnly,
		JSON:      *jsonStats,
	}
	if err := inspect(os.Stdout, html, source, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readInput() (html, source string, err error) {
	switch {
	case *fileInput != "":
		html, err = readFile(*fileInput)
		return html, *fileInput, err
	case *idInput != "":
		pageURL, err := fetcher.ExerciseURL(*baseURL, *idInput)
		if err != nil {
			return "", "", err
		}
		html, err = fetchURL(pageURL)
		return html, pageURL, err
	case flag.NArg() > 0:
		arg := flag.Arg(0)
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			html, err = fetchURL(arg)
		} else {
			html, err = readFile(arg)
		}
		return html, arg, err
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func fetchURL(url string) (string, error) {
	f := fetcher.NewStatic(fetcher.Config{Timeout: *timeout})
	defer func() { _ = f.Close() }()

	content, err := f.Fetch(context.Background(), url, fetcher.Options{})
	if err != nil {
		return "", err
	}
	return content.HTML, nil
}

func inspect(w io.Writer, html, source string, opts inspectOptions) error {
	conv, err := exo.NewConverter(exo.Options{ContentSelector: opts.Selector})
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}
	result := conv.Convert(doc)

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"source":   source,
			"header":   result.Header.Fields,
			"stats":    result.Stats,
			"warnings": result.Warnings,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "=== %s ===\n", source)
		fmt.Fprintf(w, "Header:     %s", result.Header.Open())
		fmt.Fprint(w, result.Stats.String())
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "Warning:    %s\n", warning)
		}
	}

	if opts.StatsOnly {
		return nil
	}

	rec := conv.Reconstructor()
	for _, ex := range result.Exercises {
		fmt.Fprintf(w, "\n--- Exercise %d: raw ---\n%s\n", ex.Index, ex.Raw)
		if opts.Trace {
			for _, step := range rec.Trace(ex.Raw) {
				fmt.Fprintf(w, "--- Exercise %d: after %s ---\n%s\n", ex.Index, step.Step, step.Output)
			}
		}
		fmt.Fprintf(w, "--- Exercise %d: body ---\n%s\n", ex.Index, ex.Body)
	}
	return nil
}
