package appvet

import (
	"errors"
	"fmt"
)

// ErrNoPayload reports that no JSON object could be located anywhere in the
// model response. It is wrapped in an AnalysisError when the whole
// structured payload is unrecoverable; individual fields that fail to
// normalize never produce an error.
var ErrNoPayload = errors.New("no JSON payload in model response")

// SearchError reports a failed search request. Zero results is not a
// SearchError; it is a valid empty outcome.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// AnalysisError reports a failed analysis: either the upstream call failed
// or the response carried no recoverable JSON payload.
type AnalysisError struct {
	App string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze %q: %v", e.App, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ChatError reports a failed chat turn. The conversation itself survives;
// callers typically surface the failure as an assistant-role turn.
type ChatError struct {
	App string
	Err error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("chat about %q: %v", e.App, e.Err)
}

func (e *ChatError) Unwrap() error { return e.Err }
