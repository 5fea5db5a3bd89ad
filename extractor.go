package ecidata

import "context"

// Extractor converts the results line of a page into a result.
type Extractor interface {
	// Extract parses line and returns the constituency result.
	// Extraction is all-or-nothing: on error the result is nil.
	Extract(line []byte) (*ConstituencyResult, error)
}

// ResultService looks up constituency results.
type ResultService interface {
	// GetConstituencyResults fetches and parses the results page of one
	// constituency. Errors carry the code of the stage that failed.
	GetConstituencyResults(ctx context.Context, state, constituency int) (*ConstituencyResult, error)
}
