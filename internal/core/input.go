package core

// Action represents a semantic input action, abstracted from physical key presses.
// This allows puzzles to work with high-level intents rather than raw keys.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - shift falling piece left
	ActionRight            // D, Right arrow - shift falling piece right
	ActionRotateCW         // E, X, Up arrow - rotate clockwise
	ActionRotateCCW        // Z - rotate anticlockwise
	ActionDrop             // S, Down arrow - soft drop one row
	ActionReset            // R - send all pieces home
	ActionForfeit          // F - ask to forfeit the puzzle
	ActionConfirm          // Enter, Y - confirm forfeit
	ActionBack             // Esc, N - cancel forfeit / back to menu
	ActionPause            // P - pause/unpause the elapsed clock
	ActionQuit             // Q, Ctrl+C - exit program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionDrop:
		return "Drop"
	case ActionReset:
		return "Reset"
	case ActionForfeit:
		return "Forfeit"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
