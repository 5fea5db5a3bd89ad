package ecidata

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
)

// ResultsMarker begins the line that precedes the results line. The page
// wraps its computed results in this div.
var ResultsMarker = []byte(`<div id="div1"`)

// Lines returns an iterator over the lines of r, including the trailing
// newline. There is no limit on line length. A read error is yielded once
// and ends the sequence.
func Lines(r io.Reader) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadBytes('\n')
			if len(line) > 0 {
				if !yield(line, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// LocateResultsLine returns the line that follows the first line beginning
// with ResultsMarker. Lines are stripped of surrounding whitespace before
// comparison, and the returned line is stripped too. The sequence is
// consumed only up to the results line.
//
// Returns EMARKERNOTFOUND if no line begins with the marker, and
// ENORESULTSLINE if the marker line is the last line.
func LocateResultsLine(lines iter.Seq2[[]byte, error]) ([]byte, error) {
	var markerSeen bool
	for line, err := range lines {
		if err != nil {
			return nil, WrapError(EFETCH, err, "reading page")
		}
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, ResultsMarker) {
			markerSeen = true
			continue
		}
		if markerSeen {
			return line, nil
		}
	}
	if !markerSeen {
		return nil, Errorf(EMARKERNOTFOUND, "results marker %s not found", ResultsMarker)
	}
	return nil, Errorf(ENORESULTSLINE, "page ends after results marker")
}

// LocateResultsLineReader is like LocateResultsLine but reads lines from r.
func LocateResultsLineReader(r io.Reader) ([]byte, error) {
	return LocateResultsLine(Lines(r))
}
