package mock

import (
	"context"

	"github.com/fwojciec/ecidata"
)

var _ ecidata.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of ecidata.ResultService.
type ResultService struct {
	GetConstituencyResultsFn func(ctx context.Context, state, constituency int) (*ecidata.ConstituencyResult, error)
}

func (s *ResultService) GetConstituencyResults(ctx context.Context, state, constituency int) (*ecidata.ConstituencyResult, error) {
	return s.GetConstituencyResultsFn(ctx, state, constituency)
}
