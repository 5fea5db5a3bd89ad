package collect

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/ecidata"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, ref ecidata.ConstituencyRef) (io.ReadCloser, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return RetryDelays(3)
}

// RetryDelays returns n doubling delays starting at one second.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays attempts a fetch, retrying after each delay in
// delays. Invalid references are not retried.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetryDelays(ctx context.Context, ref ecidata.ConstituencyRef, fetch FetchFunc, logger LogFunc, delays []time.Duration) (io.ReadCloser, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, ref)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ecidata.ErrorCode(err) == ecidata.EINVALID {
			break
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", ref, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

// Ensure RetryFetcher implements ecidata.PageFetcher at compile time.
var _ ecidata.PageFetcher = (*RetryFetcher)(nil)

// RetryFetcher wraps a PageFetcher with retries and exponential backoff.
type RetryFetcher struct {
	next   ecidata.PageFetcher
	delays []time.Duration
	logger LogFunc
}

// NewRetryFetcher creates a new RetryFetcher. A nil delays slice uses
// DefaultRetryDelays. The logger may be nil.
func NewRetryFetcher(next ecidata.PageFetcher, delays []time.Duration, logger LogFunc) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch delegates to the wrapped fetcher, retrying failed attempts.
func (f *RetryFetcher) Fetch(ctx context.Context, ref ecidata.ConstituencyRef) (io.ReadCloser, error) {
	return FetchWithRetryDelays(ctx, ref, f.next.Fetch, f.logger, f.delays)
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
