package lifecycle

import (
	"fmt"
	"strings"
)

const (
	// ValidationMessage is shown when a submission is attempted with a blank query.
	ValidationMessage = "User Query cannot be empty."
	// UnknownErrorMessage is shown when a failure carries no description.
	UnknownErrorMessage = "An unknown error occurred."

	failurePrefix = "Failed to generate response: "
)

// ValidationError reports a submission rejected before any request was made.
type ValidationError struct{}

func (e *ValidationError) Error() string {
	return ValidationMessage
}

// RequestFailure reports an accepted submission whose API call failed.
type RequestFailure struct {
	SubmissionID string
	Cause        error
}

func (e *RequestFailure) Error() string {
	return FailureMessage(e.Cause)
}

// Unwrap returns the client error.
func (e *RequestFailure) Unwrap() error {
	return e.Cause
}

// FailureMessage formats the user-facing message for a failed request.
func FailureMessage(cause error) string {
	if cause == nil {
		return UnknownErrorMessage
	}
	description := strings.TrimSpace(cause.Error())
	if description == "" {
		return UnknownErrorMessage
	}
	return failurePrefix + description
}

// panicCause converts a recovered panic value into a failure cause.
func panicCause(recovered interface{}) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("client panic: %w", err)
	}
	if description := strings.TrimSpace(fmt.Sprint(recovered)); description != "" {
		return fmt.Errorf("client panic: %s", description)
	}
	return fmt.Errorf("client panic")
}
