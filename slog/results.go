package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ecidata"
)

// Ensure LoggingResultService implements ecidata.ResultService.
var _ ecidata.ResultService = (*LoggingResultService)(nil)

// LoggingResultService wraps a ResultService with logging.
type LoggingResultService struct {
	next   ecidata.ResultService
	logger *slog.Logger
}

// NewLoggingResultService creates a new LoggingResultService.
func NewLoggingResultService(next ecidata.ResultService, logger *slog.Logger) *LoggingResultService {
	return &LoggingResultService{next: next, logger: logger}
}

// GetConstituencyResults delegates to the wrapped service and logs the
// lookup with the stage that failed, if any.
func (s *LoggingResultService) GetConstituencyResults(ctx context.Context, state, constituency int) (r *ecidata.ConstituencyResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"state", state,
			"constituency", constituency,
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "stage", string(ecidata.ErrorStage(err)), "err", err)
			s.logger.Warn("constituency results", attrs...)
			return
		}
		attrs = append(attrs, "total", r.TotalVotes(), "declared", r.Declared())
		s.logger.Info("constituency results", attrs...)
	}(time.Now())
	return s.next.GetConstituencyResults(ctx, state, constituency)
}
