package api

import (
	"errors"
	"fmt"
)

// Error codes for failures surfaced by the backend client.
const (
	CodeAuth    = "authError"
	CodeNetwork = "networkError"
	CodeServer  = "serverError"
	CodeDecode  = "decodeError"
)

// APIError is the typed failure returned by every backend call. Message
// carries the backend's own text verbatim when one was provided.
type APIError struct {
	Code    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAuthError(msg string) error {
	return &APIError{Code: CodeAuth, Status: 401, Message: msg}
}

func NewNetworkError(msg string) error {
	return &APIError{Code: CodeNetwork, Message: msg}
}

func NewServerError(status int, msg string) error {
	return &APIError{Code: CodeServer, Status: status, Message: msg}
}

func codeOf(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsAuthError reports whether err is an authentication/authorization failure.
func IsAuthError(err error) bool { return codeOf(err) == CodeAuth }

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool { return codeOf(err) == CodeNetwork }

// ServerMessage extracts the backend's own error text, or "" when the
// failure carried none (transport errors, decode errors).
func ServerMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Code == CodeServer {
		return ae.Message
	}
	return ""
}
