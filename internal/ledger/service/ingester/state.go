package ingester

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrInvalidTransition is returned when a state change is not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid ingestion state transition")

// State is the lifecycle phase of the continuous ingester.
type State int32

const (
	StateIdle State = iota
	StateCatchingUp
	StateLive
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCatchingUp:
		return "catching_up"
	case StateLive:
		return "live"
	case StateStopping:
		return "stopping"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

var transitions = map[State][]State{
	StateIdle:       {StateCatchingUp},
	StateCatchingUp: {StateLive, StateStopping},
	StateLive:       {StateStopping},
	StateStopping:   {StateIdle},
}

// stateMachine guards the ingester lifecycle. Concurrent callers racing on the same
// transition see exactly one winner.
type stateMachine struct {
	state atomic.Int32
}

func (m *stateMachine) Current() State {
	return State(m.state.Load())
}

// Transition moves from the current state to next, or fails with ErrInvalidTransition.
func (m *stateMachine) Transition(next State) error {
	for {
		cur := m.Current()
		if !allowed(cur, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, next)
		}
		if m.state.CompareAndSwap(int32(cur), int32(next)) {
			return nil
		}
	}
}

func allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
