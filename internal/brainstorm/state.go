// Package brainstorm runs the multi-phase requirement conversation.
//
// A Session alternates between sending the transcript to a chat backend
// and collecting the user's answer to the structured question it returns.
// The model drives the phase; the session records what it reports and
// ends when a validated turn says isComplete or the user quits.
package brainstorm

import "fmt"

// State is the position of a session in the conversation.
type State int

const (
	StatePhase1 State = iota + 1
	StatePhase2
	StatePhase3
	StatePhase4
	StateComplete
	StateAborted
)

var phaseNames = [...]string{"Context", "Explore", "Solution", "Testing"}

// PhaseName returns the display name of phase 1..4.
func PhaseName(phase int) string {
	if phase < 1 || phase > len(phaseNames) {
		return fmt.Sprintf("Phase %d", phase)
	}
	return phaseNames[phase-1]
}

// PhaseNames returns the display names in order.
func PhaseNames() []string {
	return append([]string(nil), phaseNames[:]...)
}

// StateForPhase maps a reported phase to its state. Out of range values
// clamp to the nearest phase.
func StateForPhase(phase int) State {
	switch {
	case phase <= 1:
		return StatePhase1
	case phase >= 4:
		return StatePhase4
	default:
		return State(phase)
	}
}

// Terminal reports whether no further rounds follow.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateAborted
}

func (s State) String() string {
	switch s {
	case StatePhase1, StatePhase2, StatePhase3, StatePhase4:
		return "phase_" + PhaseName(int(s))
	case StateComplete:
		return "complete"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
