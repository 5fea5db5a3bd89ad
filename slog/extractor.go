package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ecidata"
)

// Ensure LoggingExtractor implements ecidata.Extractor.
var _ ecidata.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   ecidata.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next ecidata.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
// Failures are logged at warn level with their error code.
func (e *LoggingExtractor) Extract(line []byte) (r *ecidata.ConstituencyResult, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Warn("extract",
				"bytes", len(line),
				"code", ecidata.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		e.logger.Info("extract",
			"bytes", len(line),
			"candidates", r.Len(),
			"declared", r.Declared(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(line)
}
