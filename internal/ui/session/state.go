package session

import "time"

// State is where the session controls are in their start/stop cycle
type State int

const (
	Idle State = iota
	Activating
	Active
	TransitioningIn
	TransitioningOut
)

// Presentation timers
const (
	TransitionHold = 1000 * time.Millisecond // Fade between the default and active panels
	SettleDelay    = 50 * time.Millisecond   // Fade-in after the panel swap
	StopHold       = 500 * time.Millisecond  // Fade after a user stop
)

const (
	LabelStart    = "Start Experience"
	LabelStarting = "Starting..."
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Activating:
		return "activating"
	case Active:
		return "active"
	case TransitioningIn:
		return "transitioning-in"
	case TransitioningOut:
		return "transitioning-out"
	default:
		return "unknown"
	}
}

// Transitioning reports whether the panel is mid-fade
func (s State) Transitioning() bool {
	return s == TransitioningIn || s == TransitioningOut
}

// View is everything needed to render the controls
type View struct {
	State          State
	ShowActive     bool   // Active (stop) panel instead of the default (start) panel
	Faded          bool   // Panel is faded out and scaled down
	ButtonLabel    string // Start button label
	ButtonDisabled bool   // Start button disabled
}
