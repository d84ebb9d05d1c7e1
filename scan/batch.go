// Package scan: sequential batch runner.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gaurav-prasanna/issuepipe/core"
)

// Result is the outcome for one source file.
type Result struct {
	Path   string
	Record *core.Newsletter
	Err    error
}

// Summary collects the results of a batch.
type Summary struct {
	Results   []Result
	Processed int
	Failed    int
}

// Err joins the errors of every failed file, or returns nil.
func (s *Summary) Err() error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// Batch processes files one after another.
type Batch struct {
	Processor core.Processor

	// Isolate keeps going after a failure. When false the batch stops at
	// the first failing file and returns its error.
	Isolate bool

	// Progress receives one line per file. Nil disables progress output.
	Progress io.Writer
}

// Scan discovers the PDFs in dir and runs them through the batch.
func (b *Batch) Scan(ctx context.Context, dir string) (*Summary, error) {
	paths, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	slog.Info("sources discovered", "dir", dir, "count", len(paths))
	return b.Run(ctx, paths)
}

// Run processes paths in order, skipping duplicates. The context is checked
// before each file; a cancelled batch returns the summary so far with the
// context's error.
func (b *Batch) Run(ctx context.Context, paths []string) (*Summary, error) {
	q := NewQueue(paths...)
	summary := &Summary{}

	for q.HasNext() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		path := q.Next()
		b.progressf("[%d/%d] Processing %s\n", q.Position(), q.Len(), path)

		rec, err := b.Processor.Process(ctx, path)
		summary.Results = append(summary.Results, Result{Path: path, Record: rec, Err: err})

		if err != nil {
			summary.Failed++
			slog.Error("processing failed", "path", path, "error", err)
			b.progressf("  ✗ Error: %v\n", err)
			if !b.Isolate {
				return summary, err
			}
			continue
		}

		summary.Processed++
		slog.Info("processed", "path", path, "slug", rec.Slug)
		b.progressf("  ✓ Processed: %s\n", rec.Slug)
	}

	return summary, nil
}

func (b *Batch) progressf(format string, args ...any) {
	if b.Progress == nil {
		return
	}
	fmt.Fprintf(b.Progress, format, args...)
}
