package hotkey

import (
	"runtime"
	"strings"

	"markestedt/menukeys/keyboard"
)

// LabelStyle controls how a hotkey is spelled in menu labels.
type LabelStyle struct {
	Name  string
	Logo  string
	Ctrl  string
	Shift string
	Alt   string
	// Keys overrides display names where platform conventions differ.
	Keys map[keyboard.SymbolicKey]string
}

var (
	WindowsStyle = LabelStyle{
		Name:  "windows",
		Logo:  "Windows",
		Ctrl:  "Ctrl",
		Shift: "Shift",
		Alt:   "Alt",
		Keys: map[keyboard.SymbolicKey]string{
			keyboard.KeyEscape:   "Esc",
			keyboard.KeyBack:     "Backspace",
			keyboard.KeyReturn:   "Enter",
			keyboard.KeyDelete:   "Del",
			keyboard.KeyInsert:   "Ins",
			keyboard.KeyPageUp:   "PgUp",
			keyboard.KeyPageDown: "PgDn",
		},
	}

	X11Style = LabelStyle{
		Name:  "x11",
		Logo:  "Super",
		Ctrl:  "Ctrl",
		Shift: "Shift",
		Alt:   "Alt",
		Keys: map[keyboard.SymbolicKey]string{
			keyboard.KeyBack:     "BackSpace",
			keyboard.KeyReturn:   "Return",
			keyboard.KeyPageUp:   "Page_Up",
			keyboard.KeyPageDown: "Page_Down",
		},
	}

	MacStyle = LabelStyle{
		Name:  "mac",
		Logo:  "Cmd",
		Ctrl:  "Ctrl",
		Shift: "Shift",
		Alt:   "Option",
		Keys: map[keyboard.SymbolicKey]string{
			keyboard.KeyBack:   "Delete",
			keyboard.KeyDelete: "ForwardDelete",
			keyboard.KeyReturn: "Return",
		},
	}
)

// DefaultStyle returns the label style of the running platform.
func DefaultStyle() LabelStyle {
	switch runtime.GOOS {
	case "windows":
		return WindowsStyle
	case "darwin":
		return MacStyle
	default:
		return X11Style
	}
}

// StyleByName looks up a style by its configuration name. An empty name
// selects DefaultStyle.
func StyleByName(name string) (LabelStyle, bool) {
	switch strings.ToLower(name) {
	case "":
		return DefaultStyle(), true
	case WindowsStyle.Name:
		return WindowsStyle, true
	case X11Style.Name:
		return X11Style, true
	case MacStyle.Name:
		return MacStyle, true
	}
	return LabelStyle{}, false
}

// Render spells h as "Logo+Ctrl+Shift+Alt+Key". The modifier order is fixed
// and does not depend on how the modifier set was built.
func (s LabelStyle) Render(h Hotkey) string {
	var b strings.Builder
	if h.Modifiers.Logo() {
		b.WriteString(s.Logo)
		b.WriteByte('+')
	}
	if h.Modifiers.Ctrl() {
		b.WriteString(s.Ctrl)
		b.WriteByte('+')
	}
	if h.Modifiers.Shift() {
		b.WriteString(s.Shift)
		b.WriteByte('+')
	}
	if h.Modifiers.Alt() {
		b.WriteString(s.Alt)
		b.WriteByte('+')
	}
	b.WriteString(s.KeyName(h.Key))
	return b.String()
}

// KeyName returns the display name of a key under this style.
func (s LabelStyle) KeyName(k keyboard.SymbolicKey) string {
	if name, ok := s.Keys[k]; ok {
		return name
	}
	return k.String()
}

// Label renders h with the platform's default style.
func Label(h Hotkey) string {
	return DefaultStyle().Render(h)
}
