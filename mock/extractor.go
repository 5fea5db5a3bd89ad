package mock

import "github.com/fwojciec/ecidata"

var _ ecidata.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ecidata.Extractor.
type Extractor struct {
	ExtractFn func(line []byte) (*ecidata.ConstituencyResult, error)
}

func (e *Extractor) Extract(line []byte) (*ecidata.ConstituencyResult, error) {
	return e.ExtractFn(line)
}
