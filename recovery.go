package pitchtrack

import "fmt"

// CycleState is the state a capture cycle ended in.
type CycleState int

const (
	// CycleDraining ends a cycle because the engine was stopped.
	CycleDraining CycleState = iota
	// CycleStuck ends a float cycle whose input sat at hardware zero for
	// too many frames.
	CycleStuck
	CycleReadError
	CycleOpenFailed
)

func (s CycleState) String() string {
	switch s {
	case CycleDraining:
		return "draining"
	case CycleStuck:
		return "stuck"
	case CycleReadError:
		return "read_error"
	case CycleOpenFailed:
		return "open_failed"
	default:
		return fmt.Sprintf("CycleState(%d)", int(s))
	}
}

// Action is what the engine does after a cycle ends.
type Action int

const (
	// ActionStop ends the worker normally.
	ActionStop Action = iota
	// ActionReopen tears down and opens a new cycle immediately.
	ActionReopen
	// ActionFail ends the worker and reports an error.
	ActionFail
)

func (a Action) String() string {
	switch a {
	case ActionStop:
		return "stop"
	case ActionReopen:
		return "reopen"
	case ActionFail:
		return "fail"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// RecoveryPolicy decides what follows each capture cycle. Stuck input and
// read errors share one restart budget per Start.
type RecoveryPolicy struct {
	maxRestarts int
	restarts    int
}

// NewRecoveryPolicy returns a policy allowing maxRestarts reopens.
// A negative value allows none.
func NewRecoveryPolicy(maxRestarts int) *RecoveryPolicy {
	return &RecoveryPolicy{maxRestarts: max(maxRestarts, 0)}
}

// CanRestart reports whether budget remains. A streaming float cycle
// only leaves as stuck while this holds; otherwise it degrades to silence.
func (p *RecoveryPolicy) CanRestart() bool {
	return p.restarts < p.maxRestarts
}

// Restarts is the number of reopens granted so far.
func (p *RecoveryPolicy) Restarts() int {
	return p.restarts
}

// Next returns the action for a cycle that ended in outcome, spending
// budget on every reopen it grants. Cancellation always stops.
func (p *RecoveryPolicy) Next(outcome CycleState) Action {
	switch outcome {
	case CycleDraining:
		return ActionStop
	case CycleStuck:
		if p.CanRestart() {
			p.restarts++
			return ActionReopen
		}
		// A cycle never leaves as stuck once the budget is spent.
		return ActionStop
	case CycleReadError:
		if p.CanRestart() {
			p.restarts++
			return ActionReopen
		}
		return ActionFail
	default:
		return ActionFail
	}
}
