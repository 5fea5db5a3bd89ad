package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/ecidata"
	"github.com/fwojciec/ecidata/mock"
	ecislog "github.com/fwojciec/ecidata/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs candidates and status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := ecidata.NewConstituencyResult("Goa", "Panaji", []ecidata.CandidateVotes{
			{Candidate: "X", Party: "Y", Votes: 1},
			{Candidate: "Z", Party: "W", Votes: 2},
		}, true)
		inner := &mock.Extractor{
			ExtractFn: func(_ []byte) (*ecidata.ConstituencyResult, error) {
				return want, nil
			},
		}

		r, err := ecislog.NewLoggingExtractor(inner, logger).Extract([]byte("<table/>"))

		require.NoError(t, err)
		assert.Same(t, want, r)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "bytes=8")
		assert.Contains(t, output, "candidates=2")
		assert.Contains(t, output, "declared=true")
	})

	t.Run("logs error code at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(_ []byte) (*ecidata.ConstituencyResult, error) {
				return nil, ecidata.Errorf(ecidata.EMALFORMEDMARKUP, "parsing sanitized results line")
			},
		}

		_, err := ecislog.NewLoggingExtractor(inner, logger).Extract([]byte("<tr>"))

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=malformed_markup")
		assert.NotContains(t, output, "candidates=")
	})
}
