package lifecycle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		expected string
	}{
		{name: "nil", cause: nil, expected: UnknownErrorMessage},
		{name: "empty", cause: errors.New(""), expected: UnknownErrorMessage},
		{name: "described", cause: errors.New("quota exceeded"), expected: "Failed to generate response: quota exceeded"},
		{name: "wrapped", cause: fmt.Errorf("gemini request failed: %w", errors.New("401")), expected: "Failed to generate response: gemini request failed: 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FailureMessage(tt.cause))
		})
	}
}

func TestRequestFailure_Unwrap(t *testing.T) {
	cause := errors.New("network down")
	err := error(&RequestFailure{SubmissionID: "id", Cause: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to generate response: network down", err.Error())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestState_CanSubmit(t *testing.T) {
	assert.False(t, State{}.CanSubmit())
	assert.False(t, State{UserQuery: "   "}.CanSubmit())
	assert.False(t, State{UserQuery: "q", IsLoading: true}.CanSubmit())
	assert.True(t, State{UserQuery: "q"}.CanSubmit())
}
