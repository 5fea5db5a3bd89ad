package ecidata

import (
	"context"
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	EFETCH    = "fetch"

	EMARKERNOTFOUND   = "marker_not_found"
	ENORESULTSLINE    = "no_results_line"
	EMALFORMEDMARKUP  = "malformed_markup"
	EUNEXPECTEDSHAPE  = "unexpected_shape"
	EINVALIDVOTECOUNT = "invalid_vote_count"
)

// Stage names the pipeline step that produced an error.
type Stage string

// Pipeline stages, in the order a page passes through them.
const (
	StageUnknown  Stage = ""
	StageInput    Stage = "input"
	StageFetch    Stage = "fetch"
	StageLocate   Stage = "locate"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
	StageExtract  Stage = "extract"
)

var stages = map[string]Stage{
	EINVALID:          StageInput,
	EFETCH:            StageFetch,
	EMARKERNOTFOUND:   StageLocate,
	ENORESULTSLINE:    StageLocate,
	EMALFORMEDMARKUP:  StageParse,
	EUNEXPECTEDSHAPE:  StageValidate,
	EINVALIDVOTECOUNT: StageExtract,
}

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// Underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ecidata error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("ecidata error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code that wraps err.
func WrapError(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// ErrorStage returns the pipeline stage that produced err.
func ErrorStage(err error) Stage {
	return stages[ErrorCode(err)]
}

// IsLayoutChange reports whether err means the source page no longer has
// the layout this package understands. Retrying will not help.
func IsLayoutChange(err error) bool {
	switch ErrorStage(err) {
	case StageLocate, StageParse, StageValidate, StageExtract:
		return true
	}
	return false
}

// IsTransient reports whether err came from the fetch collaborator and may
// succeed on retry. Cancellation is never transient.
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return ErrorCode(err) == EFETCH
}
