// Package lifecycle implements the request lifecycle of a prompt session:
// validate the query, enter loading, call the model, record the outcome.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"promptsim/internal/logger"
	"promptsim/pkg/simtypes"
)

// Controller owns the session state and runs submissions against an LLM client.
// It performs no de-duplication: callers are expected to disable their trigger
// while a submission is loading. Overlapping submissions resolve last-writer-wins.
type Controller struct {
	mu        sync.Mutex
	state     State
	client    simtypes.LLMClient
	timeout   time.Duration
	observers []func(State)
	log       *log.Logger
	newID     func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefaultSystemPrompt sets the initial System Context.
func WithDefaultSystemPrompt(prompt string) Option {
	return func(c *Controller) {
		c.state.SystemPrompt = prompt
	}
}

// WithTimeout bounds each API call. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithObserver registers fn to receive a snapshot after every state change.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIDGenerator replaces the submission ID source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a Controller in the idle state.
func New(client simtypes.LLMClient, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.NewStyledLogger("Lifecycle")
	}
	return c
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetSystemPrompt records an edit of the System Context field.
func (c *Controller) SetSystemPrompt(prompt string) {
	c.update(func(s *State) bool {
		if s.SystemPrompt == prompt {
			return false
		}
		s.SystemPrompt = prompt
		return true
	})
}

// SetUserQuery records an edit of the User Query field.
func (c *Controller) SetUserQuery(query string) {
	c.update(func(s *State) bool {
		if s.UserQuery == query {
			return false
		}
		s.UserQuery = query
		return true
	})
}

// Generate validates the current inputs, calls the client and records the outcome.
// It returns a *ValidationError when the query is blank and a *RequestFailure when
// the call fails. Loading is always cleared before Generate returns.
func (c *Controller) Generate(ctx context.Context) error {
	sub, err := c.Begin()
	if err != nil {
		return err
	}
	return c.Finish(sub, sub.Call(ctx))
}

// Begin validates the current inputs and, if the query is non-blank, enters
// loading and captures the inputs into a Submission. Response and error are
// cleared before the submission is returned.
func (c *Controller) Begin() (*Submission, error) {
	var sub *Submission
	rejected := false

	c.update(func(s *State) bool {
		if !hasText(s.UserQuery) {
			rejected = true
			if s.ErrorMessage == ValidationMessage {
				return false
			}
			s.ErrorMessage = ValidationMessage
			return true
		}

		s.IsLoading = true
		s.ErrorMessage = ""
		s.Response = ""
		s.SubmissionID = c.newID()
		sub = &Submission{
			ID:           s.SubmissionID,
			SystemPrompt: s.SystemPrompt,
			UserQuery:    s.UserQuery,
			client:       c.client,
			timeout:      c.timeout,
			log:          c.log,
		}
		return true
	})

	if rejected {
		c.log.Debug("Submission rejected", "phase", PhaseError, "error", ValidationMessage)
		return nil, &ValidationError{}
	}

	c.log.Debug("Submission accepted", "submission", sub.ID, "phase", PhaseLoading)
	return sub, nil
}

// Finish records the outcome of sub and leaves loading. Any resolving
// submission overwrites the result, including one that is no longer the latest.
func (c *Controller) Finish(sub *Submission, outcome Outcome) error {
	if sub == nil {
		return fmt.Errorf("finish called without a submission")
	}

	var result error
	stale := false
	c.update(func(s *State) bool {
		stale = s.SubmissionID != sub.ID
		if outcome.Err != nil {
			s.Response = ""
			s.ErrorMessage = FailureMessage(outcome.Err)
			result = &RequestFailure{SubmissionID: sub.ID, Cause: outcome.Err}
		} else {
			s.Response = outcome.Response
			s.ErrorMessage = ""
		}
		s.IsLoading = false
		return true
	})

	if stale {
		c.log.Warn("Superseded submission resolved", "submission", sub.ID)
	}
	if result != nil {
		c.log.Debug("Submission failed", "submission", sub.ID, "phase", PhaseError, "error", outcome.Err)
	} else {
		c.log.Debug("Submission succeeded", "submission", sub.ID, "phase", PhaseSuccess,
			"duration", outcome.Duration.Round(time.Millisecond))
	}
	return result
}

// update applies fn under the lock and notifies observers when fn reports a change.
func (c *Controller) update(fn func(*State) bool) {
	c.mu.Lock()
	changed := fn(&c.state)
	snapshot := c.state
	observers := c.observers
	c.mu.Unlock()

	if !changed {
		return
	}
	for _, observe := range observers {
		observe(snapshot)
	}
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
