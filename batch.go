package audiotag

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Request is one file's worth of work for WriteMany.
type Request struct {
	Path    string
	Fields  []Field
	Options []WriteOption
}

// Outcome pairs a request's path with its result or error.
type Outcome struct {
	Path   string
	Result *Result
	Err    error
}

// WriteMany applies metadata to multiple files concurrently.
//
// Files are processed in parallel using up to runtime.NumCPU() goroutines;
// outcomes are returned in request order. Requests naming the same file are
// serialized against each other, since two concurrent in-place writers on
// one file produce non-deterministic corruption. Per-file failures land in
// the matching Outcome and never stop the rest of the batch.
//
// Cancelling the context stops pipelines that have not started; a commit
// already in flight always runs to completion, because interrupting a
// half-renamed file is a data-loss event.
func WriteMany(ctx context.Context, requests []Request) []Outcome {
	outcomes := make([]Outcome, len(requests))
	if len(requests) == 0 {
		return outcomes
	}

	// One lock per distinct cleaned path within this batch.
	locks := make(map[string]*sync.Mutex, len(requests))
	for _, req := range requests {
		key := lockKey(req.Path)
		if locks[key] == nil {
			locks[key] = &sync.Mutex{}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			outcomes[i].Path = req.Path

			select {
			case <-ctx.Done():
				outcomes[i].Err = ctx.Err()
				return nil
			default:
			}

			mu := locks[lockKey(req.Path)]
			mu.Lock()
			defer mu.Unlock()

			outcomes[i].Result, outcomes[i].Err = WriteMetadata(req.Path, req.Fields, req.Options...)
			return nil
		})
	}

	g.Wait()
	return outcomes
}

// lockKey normalizes a path so duplicate spellings of the same file share a
// lock. Symlinked duplicates are the caller's responsibility.
func lockKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
