package fs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/ecidata"
)

// Ensure FileStore implements ecidata.PageStore at compile time.
var _ ecidata.PageStore = (*FileStore)(nil)

// FileStore implements ecidata.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page under the temporary directory.
func (s *FileStore) Save(ctx context.Context, ref ecidata.ConstituencyRef, page []byte) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), PagePath(ref))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, page, 0644)
}

// Commit replaces the final directory with everything saved so far.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// Ensure ArchivingFetcher implements ecidata.PageFetcher at compile time.
var _ ecidata.PageFetcher = (*ArchivingFetcher)(nil)

// ArchivingFetcher saves every page it fetches to a PageStore before
// handing it to the caller.
type ArchivingFetcher struct {
	next  ecidata.PageFetcher
	store ecidata.PageStore
}

// NewArchivingFetcher wraps next so fetched pages are saved to store.
func NewArchivingFetcher(next ecidata.PageFetcher, store ecidata.PageStore) *ArchivingFetcher {
	return &ArchivingFetcher{next: next, store: store}
}

// Fetch reads the whole page, saves it, and returns it from memory.
func (f *ArchivingFetcher) Fetch(ctx context.Context, ref ecidata.ConstituencyRef) (io.ReadCloser, error) {
	body, err := f.next.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	page, err := io.ReadAll(body)
	if err != nil {
		return nil, ecidata.WrapError(ecidata.EFETCH, err, "reading %s", ref)
	}
	if err := f.store.Save(ctx, ref, page); err != nil {
		return nil, ecidata.WrapError(ecidata.EINTERNAL, err, "archiving %s", ref)
	}
	return io.NopCloser(bytes.NewReader(page)), nil
}

// Close closes the wrapped fetcher.
func (f *ArchivingFetcher) Close() error {
	return f.next.Close()
}
