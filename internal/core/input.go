package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Move one lane left
	ActionRight          // Move one lane right
	ActionJump           // Hop over jumpable obstacles
	ActionConfirm        // Enter
	ActionBack           // Leave to the menu
	ActionRestart        // New run after game over
	ActionQuit           // Exit the session
	ActionPause          // Toggle pause

	numActions
)

var actionNames = [numActions]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns a frame with the given actions set.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= numActions {
		return
	}
	f.bits |= 1 << uint(a)
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= numActions {
		return false
	}
	return f.bits&(1<<uint(a)) != 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}
