package batch

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jmylchreest/beostex/internal/logger"
	"github.com/jmylchreest/beostex/pkg/beostex"
)

// Fetcher converts one exercise id. *beostex.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*beostex.Document, error)
}

// Result is the outcome for a single id.
type Result struct {
	ID       string
	Index    int
	Document *beostex.Document
	Error    error
	Duration time.Duration
}

// Config holds batch configuration.
type Config struct {
	Concurrency int           // Max concurrent fetches
	Delay       time.Duration // Delay before each fetch
	MaxIDs      int           // Max ids to process (0 = unlimited)
}

// DefaultConfig returns polite defaults for a small academic site.
func DefaultConfig() Config {
	return Config{
		Concurrency: 2,
		Delay:       200 * time.Millisecond,
	}
}

// Runner fetches a list of ids through a Fetcher.
type Runner struct {
	fetcher Fetcher
	config  Config
	log     *slog.Logger
}

// New creates a Runner.
func New(f Fetcher, cfg Config) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Runner{fetcher: f, config: cfg, log: logger.Component("batch")}
}

// Run fetches every distinct id and streams results as they complete.
// The channel is closed once all work is done or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, ids []string) <-chan Result {
	results := make(chan Result, len(ids))

	go func() {
		defer close(results)
		r.run(ctx, ids, results)
	}()

	return results
}

// Collect runs the batch and returns the results in input order.
func (r *Runner) Collect(ctx context.Context, ids []string) []Result {
	var all []Result
	for res := range r.Run(ctx, ids) {
		all = append(all, res)
	}
	slices.SortFunc(all, func(a, b Result) int { return a.Index - b.Index })
	return all
}

func (r *Runner) run(ctx context.Context, ids []string, results chan<- Result) {
	queue := NewIDQueue()
	for _, id := range ids {
		if !queue.Add(id) {
			r.log.Debug("skipping id", "id", id)
		}
	}

	r.log.Debug("starting",
		"ids", queue.Len(),
		"concurrency", r.config.Concurrency,
		"delay", r.config.Delay)

	sem := make(chan struct{}, r.config.Concurrency)
	var wg sync.WaitGroup
	processed := 0

	for {
		if ctx.Err() != nil {
			break
		}
		if r.config.MaxIDs > 0 && processed >= r.config.MaxIDs {
			r.log.Debug("reached max ids", "max_ids", r.config.MaxIDs)
			break
		}

		id, index, ok := queue.Pop()
		if !ok {
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		processed++

		go func(id string, index int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := sleep(ctx, r.config.Delay); err != nil {
				results <- Result{ID: id, Index: index, Error: err}
				return
			}
			results <- r.process(ctx, id, index)
		}(id, index)
	}

	wg.Wait()
}

func (r *Runner) process(ctx context.Context, id string, index int) Result {
	start := time.Now()
	doc, err := r.fetcher.Fetch(ctx, id)
	res := Result{ID: id, Index: index, Document: doc, Error: err, Duration: time.Since(start)}

	if err != nil {
		r.log.InfoContext(ctx, "exercise failed", "id", id, "error", err)
	} else {
		r.log.DebugContext(ctx, "exercise converted",
			"id", id,
			"exercises", len(doc.Result.Exercises),
			"duration", res.Duration.Round(time.Millisecond))
	}
	return res
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
