// Package app runs the preserve/parse/resolve pipeline over sets of files.
// It is what the CLI drives; the preserver package itself is single-file.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/corey/rustwriter/internal/ports"
	"github.com/corey/rustwriter/preserver"
)

// Result is the outcome for one file.
type Result struct {
	Path    string
	Err     error
	Changed bool   // resolved text differs from the file on disk
	Diff    string // unified diff, dry runs only
}

// OK reports whether the file went through without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// Runner applies one preserver set to many files.
type Runner struct {
	pipeline   *preserver.Pipeline
	preservers []*preserver.Preserver
	logger     *slog.Logger
	workers    int
}

// NewRunner returns a runner using up to GOMAXPROCS workers.
func NewRunner(pl *preserver.Pipeline, preservers []*preserver.Preserver, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		pipeline:   pl,
		preservers: preservers,
		logger:     logger,
		workers:    runtime.GOMAXPROCS(0),
	}
}

// SetWorkers bounds the number of files processed at once.
func (r *Runner) SetWorkers(n int) {
	if n > 0 {
		r.workers = n
	}
}

// Preserve returns the placeholder-encoded text of path without parsing it.
func (r *Runner) Preserve(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", &preserver.IOError{Err: err}
	}
	return preserver.Apply(string(source), r.preservers), nil
}

// Check parses every file with the preservers applied and reports which
// ones are preservable. Per-file failures are in the results; the returned
// error is only set when ctx is cancelled.
func (r *Runner) Check(ctx context.Context, files []string) ([]Result, error) {
	return r.each(ctx, files, func(path string) Result {
		_, err := r.pipeline.PreserveAndParse(path, r.preservers...)
		return Result{Path: path, Err: err}
	})
}

// RoundTrip preserves, parses and resolves every file in place. With dryRun
// nothing is written and each result carries a unified diff instead.
func (r *Runner) RoundTrip(ctx context.Context, files []string, dryRun bool) ([]Result, error) {
	return r.each(ctx, files, func(path string) Result {
		return r.roundTrip(path, dryRun)
	})
}

func (r *Runner) roundTrip(path string, dryRun bool) Result {
	res := Result{Path: path}

	original, err := os.ReadFile(path)
	if err != nil {
		res.Err = &preserver.IOError{Err: err}
		return res
	}
	tree, err := r.pipeline.ParseSource(path, original, r.preservers...)
	if err != nil {
		res.Err = err
		return res
	}

	resolved := r.pipeline.Resolve(tree)
	res.Changed = resolved != string(original)
	if dryRun {
		if res.Changed {
			res.Diff, res.Err = unifiedDiff(path, string(original), resolved)
		}
		return res
	}
	if !res.Changed {
		return res
	}
	res.Err = r.pipeline.ResolvePreserved(tree, path)
	return res
}

// each runs fn over files with bounded concurrency, keeping input order.
func (r *Runner) each(ctx context.Context, files []string, fn func(path string) Result) ([]Result, error) {
	results := make([]Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = fn(path)
			r.log(results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) log(res Result) {
	if res.Err != nil {
		r.logger.Debug("file failed", "path", res.Path, "err", res.Err)
		return
	}
	r.logger.Debug("file done", "path", res.Path, "changed", res.Changed)
}

// Watch checks files again whenever one of them changes below root and
// passes each result to report. An empty files list tracks every Rust file
// the watcher reports. Watch blocks until ctx is done.
func (r *Runner) Watch(ctx context.Context, w ports.Watcher, root string, files []string, report func(Result)) error {
	tracked := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		tracked[abs] = true
	}

	var mu sync.Mutex // serializes report
	err := w.Watch(root, func(path string) {
		if len(tracked) > 0 && !tracked[path] {
			return
		}
		if _, err := os.Stat(path); err != nil {
			r.logger.Debug("watched file gone", "path", path)
			return
		}
		_, err := r.pipeline.PreserveAndParse(path, r.preservers...)
		res := Result{Path: path, Err: err}
		r.log(res)

		mu.Lock()
		defer mu.Unlock()
		report(res)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	defer w.Stop()

	r.logger.Info("watching", "root", root, "files", len(tracked))
	<-ctx.Done()
	return nil
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (resolved)",
		Context:  3,
	})
}
