package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/ecidata"
)

// Ensure Fetcher implements ecidata.PageFetcher at compile time.
var _ ecidata.PageFetcher = (*Fetcher)(nil)

// Fetcher serves pages previously saved by a FileStore.
type Fetcher struct {
	dir string
}

// NewFetcher creates a Fetcher reading from a committed store directory.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{dir: dir}
}

// Fetch opens the saved page for ref.
func (f *Fetcher) Fetch(ctx context.Context, ref ecidata.ConstituencyRef) (io.ReadCloser, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(f.dir, PagePath(ref)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ecidata.Errorf(ecidata.EFETCH, "no saved page for %s", ref)
	} else if err != nil {
		return nil, ecidata.WrapError(ecidata.EFETCH, err, "opening saved page for %s", ref)
	}
	return file, nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
