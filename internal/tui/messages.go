package tui

import "promptsim/internal/lifecycle"

// resultMsg carries a finished API call back to the event loop.
type resultMsg struct {
	submission *lifecycle.Submission
	outcome    lifecycle.Outcome
}

// statusClearMsg clears a transient status note if it is still the current one.
type statusClearMsg struct {
	seq int
}
