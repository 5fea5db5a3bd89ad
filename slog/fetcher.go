// Package slog provides decorators that log ecidata operations with
// log/slog.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ecidata"
)

// Ensure LoggingFetcher implements ecidata.PageFetcher.
var _ ecidata.PageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a PageFetcher with logging.
type LoggingFetcher struct {
	next   ecidata.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next ecidata.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, ref ecidata.ConstituencyRef) (body io.ReadCloser, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"ref", ref.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, ref)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
