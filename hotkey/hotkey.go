// Package hotkey holds the application-level hotkey value and translates it
// to display labels and to native accelerator fields.
package hotkey

import "markestedt/menukeys/keyboard"

// Hotkey is a modifier set plus a symbolic key. It is a comparable value and
// can be used as a map key.
type Hotkey struct {
	Modifiers keyboard.ModifiersState
	Key       keyboard.SymbolicKey
}

// New creates a hotkey.
func New(mods keyboard.ModifiersState, key keyboard.SymbolicKey) Hotkey {
	return Hotkey{Modifiers: mods, Key: key}
}

// String renders the hotkey with the style of the running platform.
func (h Hotkey) String() string {
	return DefaultStyle().Render(h)
}

// Matches reports whether a pressed key event triggers this hotkey.
func (h Hotkey) Matches(ev keyboard.KeyEvent) bool {
	return ev.State == keyboard.Pressed && ev.Key == h.Key && ev.Modifiers == h.Modifiers
}
