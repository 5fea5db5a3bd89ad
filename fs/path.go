// Package fs stores result pages on disk and serves them back as a
// PageFetcher for offline runs.
package fs

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/ecidata"
)

// PagePath returns the path of a saved page relative to the store root.
// Example: state 10, constituency 150 → S10/150.htm
func PagePath(ref ecidata.ConstituencyRef) string {
	return filepath.Join(fmt.Sprintf("S%d", ref.State), fmt.Sprintf("%d.htm", ref.Constituency))
}
