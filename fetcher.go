package ecidata

import (
	"context"
	"fmt"
	"io"
)

// ConstituencyRef identifies the results page of one constituency.
type ConstituencyRef struct {
	State        int `json:"state"`
	Constituency int `json:"constituency"`
}

// Validate returns an error if the reference cannot name a page.
func (r ConstituencyRef) Validate() error {
	if r.State <= 0 {
		return Errorf(EINVALID, "state id must be positive, got %d", r.State)
	}
	if r.Constituency <= 0 {
		return Errorf(EINVALID, "constituency id must be positive, got %d", r.Constituency)
	}
	return nil
}

func (r ConstituencyRef) String() string {
	return fmt.Sprintf("S%d/%d", r.State, r.Constituency)
}

// PageFetcher retrieves the raw results page of a constituency.
// Implementations own connection handling, timeouts and retries.
type PageFetcher interface {
	// Fetch returns the page body. The caller must close it.
	Fetch(ctx context.Context, ref ConstituencyRef) (io.ReadCloser, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	Wait(ctx context.Context, domain string) error
}

// PageStore archives raw result pages. Saved pages become visible
// together on Commit; Abort discards them.
type PageStore interface {
	Save(ctx context.Context, ref ConstituencyRef, page []byte) error
	Commit() error
	Abort() error
}
