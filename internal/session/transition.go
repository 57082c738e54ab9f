package session

import "time"

// Phase is the stage of a screen transition.
type Phase int

const (
	// PhaseIdle means no transition is in flight.
	PhaseIdle Phase = iota
	// PhaseExiting plays the exit animation of the old screen.
	PhaseExiting
	// PhaseEntering plays the enter animation of the new screen.
	PhaseEntering
)

func (p Phase) String() string {
	switch p {
	case PhaseExiting:
		return "exiting"
	case PhaseEntering:
		return "entering"
	default:
		return "idle"
	}
}

// Transition is the in-flight screen change. From is still displayed while
// exiting; To is displayed from the swap on.
type Transition struct {
	From  Screen
	To    Screen
	Phase Phase
}

// transitioner enforces at most one transition at a time.
type transitioner struct {
	current Screen
	active  Transition
	exit    time.Duration
	enter   time.Duration
}

// begin starts a change to target. It is ignored, not queued, while another
// change is in flight or when target is already shown.
func (t *transitioner) begin(target Screen) bool {
	if t.active.Phase != PhaseIdle || sameScreen(t.current, target) {
		return false
	}
	t.active = Transition{From: t.current, To: target, Phase: PhaseExiting}
	return true
}

// advance moves to the next phase. It reports whether the screen was swapped
// by this step.
func (t *transitioner) advance() (swapped bool) {
	switch t.active.Phase {
	case PhaseExiting:
		t.current = t.active.To
		t.active.Phase = PhaseEntering
		return true
	case PhaseEntering:
		t.active = Transition{}
	}
	return false
}

// duration returns how long the current phase lasts.
func (t *transitioner) duration() time.Duration {
	switch t.active.Phase {
	case PhaseExiting:
		return t.exit
	case PhaseEntering:
		return t.enter
	default:
		return 0
	}
}
