//go:build darwin

package globalhotkey

import (
	"golang.design/x/hotkey"

	"markestedt/menukeys/keyboard"
)

var modifierMap = map[keyboard.ModifiersState]hotkey.Modifier{
	keyboard.ModCtrl:  hotkey.ModCtrl,
	keyboard.ModShift: hotkey.ModShift,
	keyboard.ModAlt:   hotkey.ModOption,
}
