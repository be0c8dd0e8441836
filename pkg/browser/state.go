package browser

import "fmt"

// SessionState tracks where a session is in its lifecycle.
type SessionState int

const (
	// StateUnconfigured is the zero state before a connection is attempted.
	StateUnconfigured SessionState = iota

	// StateConnecting means a connection attempt is in flight.
	StateConnecting

	// StateConnected means the remote browser handle is held and idle.
	StateConnected

	// StateInUse means a page operation is executing.
	StateInUse

	// StateFailed is terminal: the connection attempt failed. A failed
	// session never reconnects.
	StateFailed

	// StateClosed is terminal: the browser handle has been released.
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateInUse:
		return "in-use"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// validTransitions enumerates the allowed lifecycle edges. Failed has no
// outgoing edges: there is no automatic retry.
var validTransitions = map[SessionState][]SessionState{
	StateUnconfigured: {StateConnecting},
	StateConnecting:   {StateConnected, StateFailed},
	StateConnected:    {StateInUse, StateClosed},
	StateInUse:        {StateConnected, StateClosed},
	StateFailed:       {},
	StateClosed:       {},
}

// canTransition reports whether moving from one state to another is legal.
func canTransition(from, to SessionState) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transition moves the session to the next state, enforcing the lifecycle.
// Callers must hold s.mu.
func (s *Session) transition(to SessionState) error {
	if !canTransition(s.state, to) {
		return fmt.Errorf("invalid session transition %s -> %s", s.state, to)
	}
	s.state = to
	return nil
}
