// Package pipeline fans independent decode jobs out over a bounded set of
// workers. Decoding shares no state, so jobs need no coordination beyond
// result ordering.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/danmuck/fieldtext/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ItemError ties a failure to the position of its input.
type ItemError struct {
	Index int
	Name  string
	Err   error
}

func (e *ItemError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("item %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Result pairs an output with its error. Exactly one is meaningful.
type Result[O any] struct {
	Out O
	Err error
}

// Run calls fn for every item with at most workers calls in flight.
// Results keep input order. Per-item failures do not stop other items;
// they are joined into the returned error. Cancelling ctx stops items
// that have not started yet.
func Run[I, O any](ctx context.Context, items []I, workers int, name func(I) string, fn func(context.Context, I) (O, error)) ([]Result[O], error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result[O], len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			out, err := fn(gctx, item)
			results[i] = Result[O]{Out: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	errs := make([]error, 0)
	for i, res := range results {
		if res.Err == nil {
			continue
		}
		ie := &ItemError{Index: i, Err: res.Err}
		if name != nil {
			ie.Name = name(items[i])
		}
		errs = append(errs, ie)
	}
	logging.Debugf("pipeline.Run items=%d workers=%d failed=%d", len(items), workers, len(errs))
	return results, errors.Join(errs...)
}
