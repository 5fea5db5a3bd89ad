package collect

import (
	"context"
	"fmt"

	"github.com/fwojciec/ecidata"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of lookups a Collector runs at once
// when Concurrency is not set.
const DefaultConcurrency = 3

// Collector looks up many constituencies concurrently.
type Collector struct {
	Results     ecidata.ResultService
	Concurrency int

	// StopOnError cancels the remaining lookups on the first failure and
	// returns it. Otherwise failures are recorded per outcome.
	StopOnError bool
}

// Outcome is the result of one lookup. Exactly one of Result and Err is set.
type Outcome struct {
	Ref    ecidata.ConstituencyRef
	Result *ecidata.ConstituencyResult
	Err    error
}

// ProgressEvent reports progress during a collection.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Ref       ecidata.ConstituencyRef
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
// It is always called from the goroutine that called Collect.
type ProgressFunc func(event ProgressEvent)

type indexedOutcome struct {
	position int
	outcome  Outcome
}

// Collect looks up every ref and returns the outcomes in input order.
// The progress callback, if provided, receives events as lookups finish.
//
// With StopOnError the first failure is returned along with the outcomes
// gathered so far; lookups that never ran carry the cancellation error.
// Without it the error is non-nil only when ctx ends.
func (c *Collector) Collect(ctx context.Context, refs []ecidata.ConstituencyRef, progress ProgressFunc) ([]Outcome, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(refs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan indexedOutcome, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	errCh := make(chan error, 1)
	go func() {
		for i, ref := range refs {
			g.Go(func() error {
				out := c.lookup(gctx, ref)
				resultCh <- indexedOutcome{position: i, outcome: out}
				if out.Err != nil && c.StopOnError {
					return fmt.Errorf("%s: %w", ref, out.Err)
				}
				return nil
			})
		}
		errCh <- g.Wait()
		close(resultCh)
	}()

	outcomes := make([]Outcome, total)
	var completed int
	for r := range resultCh {
		completed++
		outcomes[r.position] = r.outcome

		if progress == nil {
			continue
		}
		ev := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Ref:       r.outcome.Ref,
		}
		if r.outcome.Err != nil {
			ev.Type = ProgressFailed
			ev.Error = r.outcome.Err
		}
		progress(ev)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := <-errCh; err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

// lookup runs one lookup unless the collection has been canceled.
func (c *Collector) lookup(ctx context.Context, ref ecidata.ConstituencyRef) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Ref: ref, Err: err}
	}
	r, err := c.Results.GetConstituencyResults(ctx, ref.State, ref.Constituency)
	if err != nil {
		return Outcome{Ref: ref, Err: err}
	}
	return Outcome{Ref: ref, Result: r}
}

// Refs returns the refs of constituencies from through to in one state.
func Refs(state, from, to int) []ecidata.ConstituencyRef {
	if from > to {
		return nil
	}
	refs := make([]ecidata.ConstituencyRef, 0, to-from+1)
	for ac := from; ac <= to; ac++ {
		refs = append(refs, ecidata.ConstituencyRef{State: state, Constituency: ac})
	}
	return refs
}

// Summary aggregates the outcomes of a collection.
type Summary struct {
	Total    int
	Declared int
	Pending  int
	Failed   int
	Votes    int
}

// Summarize counts declared, pending and failed outcomes and totals the
// votes of the successful ones.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil || o.Result == nil:
			s.Failed++
		case o.Result.Declared():
			s.Declared++
			s.Votes += o.Result.TotalVotes()
		default:
			s.Pending++
			s.Votes += o.Result.TotalVotes()
		}
	}
	return s
}
