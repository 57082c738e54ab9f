package core

// Action represents a semantic UI action, abstracted from physical key presses.
// Screens react to intents rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // H, Left arrow - previous item / map node
	ActionRight          // L, Right arrow - next item / map node
	ActionConfirm        // Enter - confirm selection or submit answer
	ActionBack           // Escape - go back to hub
	ActionHint           // Ctrl+G - spend a hint
	ActionSkip           // Ctrl+S - spend a skip
	ActionTimeBoost      // Ctrl+T - spend a time boost
	ActionDismiss        // Ctrl+D - dismiss notice banner
	ActionQuit           // Ctrl+C - exit application
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionHint:
		return "Hint"
	case ActionSkip:
		return "Skip"
	case ActionTimeBoost:
		return "TimeBoost"
	case ActionDismiss:
		return "Dismiss"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsPowerUp reports whether the action spends inventory.
func (a Action) IsPowerUp() bool {
	return a == ActionHint || a == ActionSkip || a == ActionTimeBoost
}
