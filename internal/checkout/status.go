package checkout

type Status string

const (
	StatusIdle          Status = "IDLE"
	StatusAddressPrompt Status = "ADDRESS_PROMPT"
	StatusSubmitting    Status = "SUBMITTING"
	StatusSucceeded     Status = "SUCCEEDED"
	StatusFailed        Status = "FAILED"
)

var transitions = map[Status][]Status{
	StatusIdle:          {StatusAddressPrompt, StatusSubmitting},
	StatusAddressPrompt: {StatusSubmitting, StatusIdle},
	StatusSubmitting:    {StatusSucceeded, StatusFailed},
	StatusSucceeded:     {StatusIdle},
	StatusFailed:        {StatusSubmitting, StatusIdle},
}

func CanTransitionTo(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsSettled reports whether a submission attempt has finished, one way or
// the other.
func (s Status) IsSettled() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
