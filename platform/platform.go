package platform

import (
	"context"
)

// Action identifies which registered hotkey fired
type Action int

const (
	ActionPolish Action = iota
	ActionCycle
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionPolish:
		return "polish"
	case ActionCycle:
		return "cycle"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// KeyCombo represents a keyboard key combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   int // Virtual key code
}

// Binding maps a key combination to an action
type Binding struct {
	Combo  KeyCombo
	Action Action
}

// Event is delivered when a bound combination is pressed
type Event struct {
	Action Action
}

// Hotkey provides global hotkey detection for a set of bindings
type Hotkey interface {
	Listen(ctx context.Context, bindings []Binding) (<-chan Event, error)
}

// Clipboard provides clipboard access
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Paster simulates paste operation
type Paster interface {
	Paste() error
}
