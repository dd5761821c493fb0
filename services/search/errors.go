package search

import "fmt"

// SearchError is the typed failure surfaced by the search pipeline.
type SearchError struct {
	Code    string
	Message string
	Cause   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}

// NewFetchError wraps a failed backend fetch. The caller decides whether to
// show stale data or an explicit error state; no retry happens here.
func NewFetchError(cause error) error {
	return &SearchError{
		Code:    "fetchFailed",
		Message: "failed to fetch providers",
		Cause:   cause,
	}
}

// NewSessionError flags a missing or expired search session.
func NewSessionError(msg string) error {
	return &SearchError{
		Code:    "sessionError",
		Message: msg,
	}
}
