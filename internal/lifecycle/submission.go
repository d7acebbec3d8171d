package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"promptsim/pkg/simtypes"
)

// Submission is one accepted request. Its inputs are fixed at acceptance and
// are not affected by later edits to the session.
type Submission struct {
	ID           string
	SystemPrompt string
	UserQuery    string

	client  simtypes.LLMClient
	timeout time.Duration
	log     *log.Logger
}

// Outcome is the result of Submission.Call.
type Outcome struct {
	Response string
	Err      error
	Duration time.Duration
}

// Call sends the captured inputs to the client. It touches no session state and
// may run on any goroutine. A panicking client is reported as a failed outcome.
func (s *Submission) Call(ctx context.Context) (outcome Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("LLM client panicked", "submission", s.ID, "error", r)
			outcome = Outcome{Err: panicCause(r)}
		}
		outcome.Duration = time.Since(start)
	}()

	if s.client == nil {
		return Outcome{Err: fmt.Errorf("no LLM client configured")}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.log.Debug("Calling LLM client", "submission", s.ID, "provider", s.client.GetProviderName())
	response, err := s.client.GenerateResponse(ctx, s.SystemPrompt, s.UserQuery)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Response: response}
}
