package collect

import (
	"context"
	"time"

	"github.com/fwojciec/ecidata"
)

// DefaultWatchInterval is the polling interval used when none is given.
const DefaultWatchInterval = 30 * time.Second

// ChangeFunc is called with each result that differs from the previous one.
type ChangeFunc func(r *ecidata.ConstituencyResult)

// Watch polls the result of ref until it is declared. onChange is called
// with the first result and again whenever the fingerprint changes.
// Transient fetch errors are passed to onError, if set, and polling
// continues; any other error stops the watch.
//
// Watch returns the last result seen. When ctx ends first the error is
// ctx.Err().
func Watch(ctx context.Context, svc ecidata.ResultService, ref ecidata.ConstituencyRef, interval time.Duration, onChange ChangeFunc, onError func(error)) (*ecidata.ConstituencyResult, error) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	var last *ecidata.ConstituencyResult
	var lastPrint string
	for {
		r, err := svc.GetConstituencyResults(ctx, ref.State, ref.Constituency)
		switch {
		case err != nil && ctx.Err() != nil:
			return last, ctx.Err()
		case err != nil && ecidata.IsTransient(err):
			if onError != nil {
				onError(err)
			}
		case err != nil:
			return last, err
		default:
			if fp := Fingerprint(r); fp != lastPrint {
				lastPrint = fp
				if onChange != nil {
					onChange(r)
				}
			}
			last = r
			if r.Declared() {
				return r, nil
			}
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(interval):
		}
	}
}
