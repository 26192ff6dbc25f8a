package platform

import (
	"context"
	"errors"
	"fmt"

	"markestedt/menukeys/keyboard"
)

// ErrUnsupported is returned by primitives the current OS does not provide.
var ErrUnsupported = errors.New("not supported on this platform")

// EventType represents the kind of an Event
type EventType int

const (
	KeyInput EventType = iota
	MenuActivated
	URLOpened
)

func (t EventType) String() string {
	switch t {
	case KeyInput:
		return "key"
	case MenuActivated:
		return "menu"
	case URLOpened:
		return "url"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is the portable event stream produced by the keyboard, menus,
// accelerators and URL activation.
type Event struct {
	Type   EventType
	Key    keyboard.KeyEvent // KeyInput
	MenuID int               // MenuActivated
	URL    string            // URLOpened
	Source string            // "keyboard", "accelerator", "tray", "global", "url", ...
}

// KeyboardHook delivers raw keyboard messages from a system-wide hook
type KeyboardHook interface {
	Listen(ctx context.Context) (<-chan keyboard.RawKeyMessage, error)
}
