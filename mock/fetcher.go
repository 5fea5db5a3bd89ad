package mock

import (
	"context"
	"io"

	"github.com/fwojciec/ecidata"
)

var _ ecidata.PageFetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ecidata.PageFetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, ref ecidata.ConstituencyRef) (io.ReadCloser, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, ref ecidata.ConstituencyRef) (io.ReadCloser, error) {
	return f.FetchFn(ctx, ref)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
