package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone            Action = iota
	ActionUp                     // W, Up arrow - move up in menus
	ActionDown                   // S, Down arrow - move down in menus
	ActionJump                   // Space, W, Up - jump (double jump while airborne)
	ActionDuck                   // S, Down - duck while grounded
	ActionConfirm                // Enter - confirm selection / start run
	ActionBack                   // B, Escape - go back to menu
	ActionRestart                // R key - restart run after game over
	ActionQuit                   // Q, Ctrl+C - exit game/session
	ActionPause                  // P - pause/unpause game
	ActionToggleObstacles        // O - switch obstacle spawning on or off
	ActionDebug                  // D - show the debug panel
	ActionMute                   // M - mute or unmute audio
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
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionToggleObstacles:
		return "ToggleObstacles"
	case ActionDebug:
		return "Debug"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
