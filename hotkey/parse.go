package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"markestedt/menukeys/keyboard"
)

var (
	ErrEmpty           = errors.New("hotkey spec is empty")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrUnknownKey      = errors.New("unknown key")
)

var modifierByName = map[string]keyboard.ModifiersState{
	"ctrl":    keyboard.ModCtrl,
	"control": keyboard.ModCtrl,
	"shift":   keyboard.ModShift,
	"alt":     keyboard.ModAlt,
	"option":  keyboard.ModAlt,
	"win":     keyboard.ModLogo,
	"windows": keyboard.ModLogo,
	"super":   keyboard.ModLogo,
	"cmd":     keyboard.ModLogo,
	"command": keyboard.ModLogo,
	"logo":    keyboard.ModLogo,
}

var keyAliases = map[string]keyboard.SymbolicKey{
	"esc":       keyboard.KeyEscape,
	"del":       keyboard.KeyDelete,
	"ins":       keyboard.KeyInsert,
	"pgup":      keyboard.KeyPageUp,
	"pgdn":      keyboard.KeyPageDown,
	"page_up":   keyboard.KeyPageUp,
	"page_down": keyboard.KeyPageDown,
	"bksp":      keyboard.KeyBack,
	"cr":        keyboard.KeyReturn,
	"grave":     keyboard.KeyGrave,
	"backquote": keyboard.KeyGrave,
	"plus":      keyboard.KeyPlus,
	"equal":     keyboard.KeyEquals,
	"prtsc":     keyboard.KeySnapshot,
}

// Parse parses a spec like "Ctrl+Shift+F12" or "ctrl++". Names are
// case-insensitive, repeated modifiers are folded and a bare key without
// modifiers is accepted.
func Parse(spec string) (Hotkey, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Hotkey{}, ErrEmpty
	}

	var parts []string
	if strings.HasSuffix(raw, "++") {
		parts = append(strings.Split(strings.TrimSuffix(raw, "++"), "+"), "+")
	} else {
		parts = strings.Split(raw, "+")
	}

	var mods keyboard.ModifiersState
	for _, token := range parts[:len(parts)-1] {
		name := strings.ToLower(strings.TrimSpace(token))
		mod, ok := modifierByName[name]
		if !ok {
			return Hotkey{}, fmt.Errorf("%w %q in hotkey %q", ErrUnknownModifier, token, raw)
		}
		mods |= mod
	}

	keyToken := strings.TrimSpace(parts[len(parts)-1])
	if keyToken == "" {
		return Hotkey{}, fmt.Errorf("%w: missing key in hotkey %q", ErrUnknownKey, raw)
	}
	key, ok := keyAliases[strings.ToLower(keyToken)]
	if !ok {
		key, ok = keyboard.ParseKey(keyToken)
	}
	if !ok {
		return Hotkey{}, fmt.Errorf("%w %q in hotkey %q", ErrUnknownKey, keyToken, raw)
	}
	return Hotkey{Modifiers: mods, Key: key}, nil
}
