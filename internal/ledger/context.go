package ledger

// State is the lifecycle position of a transaction context.
type State int

// Context states. Every context is single use and ends in StateRevoked,
// whether Execute succeeded or not.
const (
	StateCreated State = iota
	StateGranted
	StateExecuted
	StateRevoked
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateGranted:
		return "granted"
	case StateExecuted:
		return "executed"
	case StateRevoked:
		return "revoked"
	}

	return "unknown"
}

type lifecycle struct {
	op    string
	state State
}

// begin claims the context for its only execution.
func (l *lifecycle) begin() error {
	if l.state != StateCreated {
		return &InvalidStateError{Operation: l.op, State: l.state}
	}

	return nil
}

// State returns the current lifecycle state.
func (l *lifecycle) State() State {
	return l.state
}

func (l *lifecycle) granted()  { l.state = StateGranted }
func (l *lifecycle) executed() { l.state = StateExecuted }
func (l *lifecycle) finish()   { l.state = StateRevoked }
