package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/beostex/internal/batch"
	"github.com/jmylchreest/beostex/internal/logger"
	"github.com/jmylchreest/beostex/internal/output"
	"github.com/jmylchreest/beostex/pkg/beostex"
	"github.com/jmylchreest/beostex/pkg/fetcher"
)

var convertCmd = &cobra.Command{
	Use:     "convert [id...]",
	Aliases: []string{"fetch"},
	Short:   "Convert an exercise page to LaTeX",
	Long: `Fetch the exercise page for each id and rewrite it as exo environments.
Several ids are fetched concurrently and written in the order given.

The result goes to the clipboard unless --to names another destination:
"-" for stdout, anything else is a file path.

Examples:
  beostex convert 4521
  beostex convert 4521 --to - --format json
  beostex convert 4521 4522 4530 --to td3.tex
  beostex convert -f saved.html --to saved.tex
  beostex convert 4521 --fetch-mode dynamic --timeout 1m`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	defaults := beostex.DefaultConfig()

	// Input
	flags.StringP("file", "f", "", "convert a saved HTML page instead of fetching")

	// Output settings
	flags.StringP("to", "t", output.DestClipboard, `destination: clipboard, "-" for stdout, or a file path`)
	flags.String("format", string(output.FormatLaTeX), "output format: latex, json, yaml")
	flags.Bool("compact", false, "compact JSON output")

	// Fetch settings
	flags.String("base-url", defaults.BaseURL, "URL the exercise id is appended to")
	flags.String("fetch-mode", string(defaults.FetchMode), "fetch mode: static, dynamic")
	flags.Duration("timeout", defaults.Timeout, "request timeout")
	flags.String("user-agent", defaults.UserAgent, "HTTP user agent")
	flags.String("max-size", humanize.IBytes(uint64(defaults.MaxBodySize)), "max page size (e.g., 2MB, 0=unlimited)")

	// Batch settings
	batchDefaults := batch.DefaultConfig()
	flags.IntP("concurrency", "c", batchDefaults.Concurrency, "concurrent fetches when converting several ids")
	flags.Duration("delay", batchDefaults.Delay, "delay between requests")

	// Page layout
	flags.String("selector", defaults.ContentSelector, "CSS selector of the exercise containers")
	flags.String("header-selector", defaults.HeaderSelector, "CSS selector of the metadata paragraphs")
	flags.Int("header-limit", defaults.HeaderLimit, "number of metadata strings in the header")

	for key, name := range map[string]string{
		"to":              "to",
		"format":          "format",
		"compact":         "compact",
		"base_url":        "base-url",
		"fetch_mode":      "fetch-mode",
		"timeout":         "timeout",
		"user_agent":      "user-agent",
		"max_size":        "max-size",
		"selector":        "selector",
		"header_selector": "header-selector",
		"header_limit":    "header-limit",
		"concurrency":     "concurrency",
		"delay":           "delay",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// convertRequest is one invocation of the convert command.
type convertRequest struct {
	IDs     []string
	File    string
	Dest    string
	Format  output.Format
	Compact bool
	Config  beostex.Config
	Batch   batch.Config
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := configFromViper()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	req := convertRequest{
		IDs:     args,
		Dest:    viper.GetString("to"),
		Format:  output.Format(viper.GetString("format")),
		Compact: viper.GetBool("compact"),
		Config:  cfg,
		Batch: batch.Config{
			Concurrency: viper.GetInt("concurrency"),
			Delay:       viper.GetDuration("delay"),
		},
	}
	req.File, _ = cmd.Flags().GetString("file")
	if len(req.IDs) == 0 && req.File == "" {
		return cmd.Help()
	}

	if err := execConvert(ctx, req); err != nil {
		logger.ErrorContext(ctx, "conversion failed", "error", err)
		if errors.Is(err, output.ErrClipboardUnavailable) {
			logger.Info("use --to - to print the result instead")
		}
		return err
	}
	return nil
}

// configFromViper builds the library configuration from flags, environment
// and config file.
func configFromViper() (beostex.Config, error) {
	cfg := beostex.DefaultConfig()

	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(viper.GetString(key)); v != "" {
			*dst = v
		}
	}
	setString("base_url", &cfg.BaseURL)
	setString("user_agent", &cfg.UserAgent)
	setString("selector", &cfg.ContentSelector)
	setString("header_selector", &cfg.HeaderSelector)
	setString("separator", &cfg.Separator)
	setString("exercise_cue", &cfg.ExerciseCue)
	setString("hint_cue", &cfg.HintCue)

	if mode := viper.GetString("fetch_mode"); mode != "" {
		cfg.FetchMode = fetcher.Mode(mode)
	}
	if d := viper.GetDuration("timeout"); d != 0 {
		cfg.Timeout = d
	}
	if viper.IsSet("header_limit") {
		cfg.HeaderLimit = viper.GetInt("header_limit")
	}

	if sizeStr := strings.TrimSpace(viper.GetString("max_size")); sizeStr != "" {
		if sizeStr == "0" {
			cfg.MaxBodySize = 0
		} else {
			size, err := humanize.ParseBytes(sizeStr)
			if err != nil {
				return cfg, fmt.Errorf("invalid max-size %q: %w", sizeStr, err)
			}
			cfg.MaxBodySize = int(size)
		}
	}

	return cfg, cfg.Validate()
}

func execConvert(ctx context.Context, req convertRequest) error {
	client, err := beostex.New(beostex.WithConfig(req.Config))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	docs, fetchErr := collectDocuments(ctx, client, req)
	if len(docs) == 0 {
		return fetchErr
	}

	var buf bytes.Buffer
	writer, err := output.NewWriter(&buf, req.Format, output.WithPretty(!req.Compact))
	if err != nil {
		return err
	}
	exercises, warnings := 0, 0
	for _, doc := range docs {
		if err := writer.Write(doc); err != nil {
			return err
		}
		exercises += len(doc.Result.Exercises)
		warnings += len(doc.Result.Warnings)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	sink := output.NewSink(req.Dest)
	if err := sink.Deliver(buf.Bytes()); err != nil {
		return err
	}

	logger.Info("exercises delivered",
		"pages", len(docs),
		"exercises", exercises,
		"to", sink.Name(),
		"size", humanize.Bytes(uint64(buf.Len())),
		"warnings", warnings)
	return fetchErr
}

// collectDocuments converts the local file, or every requested id. Pages
// that fail are left out and reported in the returned error.
func collectDocuments(ctx context.Context, client *beostex.Client, req convertRequest) ([]*beostex.Document, error) {
	if req.File != "" {
		logger.Debug("converting local page", "path", req.File)
		doc, err := client.ConvertFile(req.File)
		if err != nil {
			return nil, err
		}
		return []*beostex.Document{doc}, nil
	}

	logger.Debug("fetching exercises", "ids", req.IDs, "mode", req.Config.FetchMode)
	results := batch.New(client, req.Batch).Collect(ctx, req.IDs)

	var docs []*beostex.Document
	var errs []error
	for _, res := range results {
		if res.Error != nil {
			errs = append(errs, fmt.Errorf("exercise %s: %w", res.ID, res.Error))
			continue
		}
		logger.Debug("exercise fetched",
			"id", res.ID,
			"source", res.Document.Source,
			"took", res.Duration.Round(time.Millisecond))
		docs = append(docs, res.Document)
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	if len(results) == 0 && len(errs) == 0 {
		errs = append(errs, fetcher.ErrEmptyID)
	}
	if len(errs) > 0 && len(docs) > 0 {
		logger.Warn("some exercises failed", "failed", len(errs), "converted", len(docs))
	}
	return docs, errors.Join(errs...)
}
