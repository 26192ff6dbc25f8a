package hotkey

import "markestedt/menukeys/keyboard"

// ACCEL fVirt flags, see winuser.h.
const (
	FVirtKey = 0x01
	FShift   = 0x04
	FControl = 0x08
	FAlt     = 0x10
)

// Native holds the fields of a Win32 ACCEL entry derived from a hotkey.
type Native struct {
	Flags uint8
	Key   uint16
}

// ToNative encodes h as accelerator flags and a virtual key. It reports false
// when h cannot be an accelerator: the key has no virtual key, or the hotkey
// uses the logo modifier, which accelerator tables cannot express.
func ToNative(h Hotkey) (Native, bool) {
	if h.Modifiers.Logo() {
		return Native{}, false
	}
	vk, ok := keyboard.ToVirtualKey(h.Key)
	if !ok {
		return Native{}, false
	}

	flags := uint8(FVirtKey)
	if h.Modifiers.Shift() {
		flags |= FShift
	}
	if h.Modifiers.Ctrl() {
		flags |= FControl
	}
	if h.Modifiers.Alt() {
		flags |= FAlt
	}
	return Native{Flags: flags, Key: uint16(vk)}, true
}

// FromNative decodes accelerator fields back into a hotkey. Entries without
// FVirtKey name a character code, not a key, and are rejected.
func FromNative(n Native) (Hotkey, bool) {
	if n.Flags&FVirtKey == 0 {
		return Hotkey{}, false
	}
	key := keyboard.FromVirtualKey(keyboard.VirtualKey(n.Key))
	if key == keyboard.KeyNone {
		return Hotkey{}, false
	}

	var mods keyboard.ModifiersState
	mods = mods.Set(keyboard.ModShift, n.Flags&FShift != 0)
	mods = mods.Set(keyboard.ModCtrl, n.Flags&FControl != 0)
	mods = mods.Set(keyboard.ModAlt, n.Flags&FAlt != 0)
	return Hotkey{Modifiers: mods, Key: key}, true
}

// Representable reports whether h can be compiled into an accelerator.
func Representable(h Hotkey) bool {
	_, ok := ToNative(h)
	return ok
}
