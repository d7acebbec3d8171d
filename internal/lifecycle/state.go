package lifecycle

// Phase is the derived status of a session.
type Phase int

const (
	// PhaseIdle means nothing has been submitted or validated yet.
	PhaseIdle Phase = iota
	// PhaseLoading means a submission is in flight.
	PhaseLoading
	// PhaseSuccess means the last resolution produced a response.
	PhaseSuccess
	// PhaseError means the last resolution or validation produced an error.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session.
type State struct {
	SystemPrompt string
	UserQuery    string
	Response     string
	IsLoading    bool
	ErrorMessage string
	// SubmissionID is the ID of the most recently accepted submission.
	SubmissionID string
}

// Phase derives the session phase from the state fields.
func (s State) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.ErrorMessage != "":
		return PhaseError
	case s.Response != "":
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

// CanSubmit reports whether a Generate trigger should be enabled.
func (s State) CanSubmit() bool {
	return !s.IsLoading && hasText(s.UserQuery)
}
