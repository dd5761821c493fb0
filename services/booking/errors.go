package booking

import (
	"errors"
	"fmt"

	"servicehub/api"
)

// BookingError is the typed failure for the booking flow.
type BookingError struct {
	Code    string
	Message string
	Cause   error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Cause
}

const (
	// CodeValidation: rejected locally, before any network call.
	CodeValidation = "validationError"
	// CodeInFlight: a submission is already pending; refused, not queued.
	CodeInFlight = "submissionInFlight"
	// CodeTerminal: this attempt already produced a booking.
	CodeTerminal = "alreadyConfirmed"
	// CodeSubmit: the network submission failed; submission re-enabled.
	CodeSubmit = "submitFailed"
)

func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func newInFlightError() error {
	return &BookingError{Code: CodeInFlight, Message: "a booking submission is already in progress"}
}

func newTerminalError() error {
	return &BookingError{Code: CodeTerminal, Message: "this booking attempt is already confirmed"}
}

func newSubmitError(cause error) error {
	return &BookingError{Code: CodeSubmit, Message: UserMessage(cause), Cause: cause}
}

// IsValidation reports whether err was caught before the network layer.
func IsValidation(err error) bool {
	var be *BookingError
	return errors.As(err, &be) && be.Code == CodeValidation
}

// UserMessage derives the user-facing text for a failed submission: the
// server's own message verbatim when one exists, otherwise a generic one
// per failure class.
func UserMessage(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	if api.IsAuthError(err) {
		return "Please sign in to book this provider."
	}
	return "Something went wrong while booking. Please try again."
}
