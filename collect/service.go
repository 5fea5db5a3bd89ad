// Package collect looks up constituency results. It joins the fetch
// collaborator, the line locator and the extractor into the public entry
// point, and runs lookups in batches.
package collect

import (
	"context"
	"errors"

	"github.com/fwojciec/ecidata"
)

// Ensure Service implements ecidata.ResultService at compile time.
var _ ecidata.ResultService = (*Service)(nil)

// Service fetches a constituency page, locates its results line and
// extracts the result. It keeps no state between lookups.
type Service struct {
	Fetcher   ecidata.PageFetcher
	Extractor ecidata.Extractor
}

// NewService creates a new Service.
func NewService(fetcher ecidata.PageFetcher, extractor ecidata.Extractor) *Service {
	return &Service{Fetcher: fetcher, Extractor: extractor}
}

// GetConstituencyResults returns the result of one constituency.
// Locate and extract errors are returned unchanged. Fetch errors that do
// not already carry a code are reported as EFETCH.
func (s *Service) GetConstituencyResults(ctx context.Context, state, constituency int) (*ecidata.ConstituencyResult, error) {
	ref := ecidata.ConstituencyRef{State: state, Constituency: constituency}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	body, err := s.Fetcher.Fetch(ctx, ref)
	if err != nil {
		var appErr *ecidata.Error
		if !errors.As(err, &appErr) {
			return nil, ecidata.WrapError(ecidata.EFETCH, err, "fetching %s", ref)
		}
		return nil, err
	}
	defer body.Close()

	line, err := ecidata.LocateResultsLineReader(body)
	if err != nil {
		return nil, err
	}

	return s.Extractor.Extract(line)
}
