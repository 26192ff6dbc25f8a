package keyboard

import "fmt"

// ScanCode is the raw, layout-independent hardware code of a key. Extended
// keys carry 0xE0 in the high byte.
type ScanCode uint32

// KeyState is the direction of a key event.
type KeyState int

const (
	Pressed KeyState = iota
	Released
)

func (s KeyState) String() string {
	if s == Released {
		return "released"
	}
	return "pressed"
}

// KeyEvent is the portable key event emitted once per raw key message.
type KeyEvent struct {
	ScanCode  ScanCode
	Key       SymbolicKey // KeyNone when the key has no symbolic identity
	Modifiers ModifiersState
	State     KeyState
}

// HasKey reports whether the event carries a symbolic key.
func (e KeyEvent) HasKey() bool {
	return e.Key != KeyNone
}

func (e KeyEvent) String() string {
	return fmt.Sprintf("%s %s scancode=0x%04X mods=%s", e.Key, e.State, uint32(e.ScanCode), e.Modifiers)
}

// Window messages carrying keyboard input.
const (
	WMKeyDown    = 0x0100
	WMKeyUp      = 0x0101
	WMSysKeyDown = 0x0104
	WMSysKeyUp   = 0x0105
)

// RawKeyMessage is a keyboard window message as delivered by the OS: WParam
// holds the virtual key, LParam the repeat count, scancode and flags.
type RawKeyMessage struct {
	Message uint32
	WParam  uintptr
	LParam  uintptr
}

// MakeLParam packs a scancode and the extended flag the way WM_KEYDOWN does.
// Hooks that receive the fields separately use it to build a RawKeyMessage.
func MakeLParam(scancode uint32, extended, released bool) uintptr {
	lparam := uintptr(1) | uintptr(scancode&0xFF)<<16
	if extended {
		lparam |= 1 << 24
	}
	if released {
		lparam |= 1<<30 | 1<<31
	}
	return lparam
}
