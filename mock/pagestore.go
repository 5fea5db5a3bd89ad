package mock

import (
	"context"

	"github.com/fwojciec/ecidata"
)

var _ ecidata.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of ecidata.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, ref ecidata.ConstituencyRef, page []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, ref ecidata.ConstituencyRef, page []byte) error {
	return s.SaveFn(ctx, ref, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
