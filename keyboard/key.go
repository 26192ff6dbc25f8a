package keyboard

import (
	"fmt"
	"strings"
)

// SymbolicKey is the portable identity of a key, independent of any OS numbering.
// KeyNone means the key has no symbolic identity; the scancode still identifies it.
type SymbolicKey uint16

const (
	KeyNone SymbolicKey = iota

	// Digits on the main row
	KeyKey1
	KeyKey2
	KeyKey3
	KeyKey4
	KeyKey5
	KeyKey6
	KeyKey7
	KeyKey8
	KeyKey9
	KeyKey0

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Function and navigation
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeySnapshot
	KeyScroll
	KeyPause
	KeyInsert
	KeyHome
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyPageUp
	KeyLeft
	KeyUp
	KeyRight
	KeyDown

	// Editing
	KeyBack
	KeyReturn
	KeySpace
	KeyCompose
	KeyCaret

	// Numpad
	KeyNumlock
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadAdd
	KeyNumpadDivide
	KeyNumpadDecimal
	KeyNumpadComma
	KeyNumpadEnter
	KeyNumpadEquals
	KeyNumpadMultiply
	KeyNumpadSubtract

	// Punctuation, modifiers, media and IME keys
	KeyAbntC1
	KeyAbntC2
	KeyApostrophe
	KeyApps
	KeyAsterisk
	KeyAt
	KeyAx
	KeyBackslash
	KeyCalculator
	KeyCapital
	KeyColon
	KeyComma
	KeyConvert
	KeyEquals
	KeyGrave
	KeyKana
	KeyKanji
	KeyLAlt
	KeyLBracket
	KeyLControl
	KeyLShift
	KeyLWin
	KeyMail
	KeyMediaSelect
	KeyMediaStop
	KeyMinus
	KeyMute
	KeyMyComputer
	KeyNavigateForward
	KeyNavigateBackward
	KeyNextTrack
	KeyNoConvert
	KeyOEM102
	KeyPeriod
	KeyPlayPause
	KeyPlus
	KeyPower
	KeyPrevTrack
	KeyRAlt
	KeyRBracket
	KeyRControl
	KeyRShift
	KeyRWin
	KeySemicolon
	KeySlash
	KeySleep
	KeyStop
	KeySysrq
	KeyTab
	KeyUnderline
	KeyUnlabeled
	KeyVolumeDown
	KeyVolumeUp
	KeyWake
	KeyWebBack
	KeyWebFavorites
	KeyWebForward
	KeyWebHome
	KeyWebRefresh
	KeyWebSearch
	KeyWebStop
	KeyYen
	KeyCopy
	KeyPaste
	KeyCut

	keyCount
)

var keyIdents = [keyCount]string{
	KeyKey1:             "Key1",
	KeyKey2:             "Key2",
	KeyKey3:             "Key3",
	KeyKey4:             "Key4",
	KeyKey5:             "Key5",
	KeyKey6:             "Key6",
	KeyKey7:             "Key7",
	KeyKey8:             "Key8",
	KeyKey9:             "Key9",
	KeyKey0:             "Key0",
	KeyA:                "A",
	KeyB:                "B",
	KeyC:                "C",
	KeyD:                "D",
	KeyE:                "E",
	KeyF:                "F",
	KeyG:                "G",
	KeyH:                "H",
	KeyI:                "I",
	KeyJ:                "J",
	KeyK:                "K",
	KeyL:                "L",
	KeyM:                "M",
	KeyN:                "N",
	KeyO:                "O",
	KeyP:                "P",
	KeyQ:                "Q",
	KeyR:                "R",
	KeyS:                "S",
	KeyT:                "T",
	KeyU:                "U",
	KeyV:                "V",
	KeyW:                "W",
	KeyX:                "X",
	KeyY:                "Y",
	KeyZ:                "Z",
	KeyEscape:           "Escape",
	KeyF1:               "F1",
	KeyF2:               "F2",
	KeyF3:               "F3",
	KeyF4:               "F4",
	KeyF5:               "F5",
	KeyF6:               "F6",
	KeyF7:               "F7",
	KeyF8:               "F8",
	KeyF9:               "F9",
	KeyF10:              "F10",
	KeyF11:              "F11",
	KeyF12:              "F12",
	KeyF13:              "F13",
	KeyF14:              "F14",
	KeyF15:              "F15",
	KeyF16:              "F16",
	KeyF17:              "F17",
	KeyF18:              "F18",
	KeyF19:              "F19",
	KeyF20:              "F20",
	KeyF21:              "F21",
	KeyF22:              "F22",
	KeyF23:              "F23",
	KeyF24:              "F24",
	KeySnapshot:         "Snapshot",
	KeyScroll:           "Scroll",
	KeyPause:            "Pause",
	KeyInsert:           "Insert",
	KeyHome:             "Home",
	KeyDelete:           "Delete",
	KeyEnd:              "End",
	KeyPageDown:         "PageDown",
	KeyPageUp:           "PageUp",
	KeyLeft:             "Left",
	KeyUp:               "Up",
	KeyRight:            "Right",
	KeyDown:             "Down",
	KeyBack:             "Back",
	KeyReturn:           "Return",
	KeySpace:            "Space",
	KeyCompose:          "Compose",
	KeyCaret:            "Caret",
	KeyNumlock:          "Numlock",
	KeyNumpad0:          "Numpad0",
	KeyNumpad1:          "Numpad1",
	KeyNumpad2:          "Numpad2",
	KeyNumpad3:          "Numpad3",
	KeyNumpad4:          "Numpad4",
	KeyNumpad5:          "Numpad5",
	KeyNumpad6:          "Numpad6",
	KeyNumpad7:          "Numpad7",
	KeyNumpad8:          "Numpad8",
	KeyNumpad9:          "Numpad9",
	KeyNumpadAdd:        "NumpadAdd",
	KeyNumpadDivide:     "NumpadDivide",
	KeyNumpadDecimal:    "NumpadDecimal",
	KeyNumpadComma:      "NumpadComma",
	KeyNumpadEnter:      "NumpadEnter",
	KeyNumpadEquals:     "NumpadEquals",
	KeyNumpadMultiply:   "NumpadMultiply",
	KeyNumpadSubtract:   "NumpadSubtract",
	KeyAbntC1:           "AbntC1",
	KeyAbntC2:           "AbntC2",
	KeyApostrophe:       "Apostrophe",
	KeyApps:             "Apps",
	KeyAsterisk:         "Asterisk",
	KeyAt:               "At",
	KeyAx:               "Ax",
	KeyBackslash:        "Backslash",
	KeyCalculator:       "Calculator",
	KeyCapital:          "Capital",
	KeyColon:            "Colon",
	KeyComma:            "Comma",
	KeyConvert:          "Convert",
	KeyEquals:           "Equals",
	KeyGrave:            "Grave",
	KeyKana:             "Kana",
	KeyKanji:            "Kanji",
	KeyLAlt:             "LAlt",
	KeyLBracket:         "LBracket",
	KeyLControl:         "LControl",
	KeyLShift:           "LShift",
	KeyLWin:             "LWin",
	KeyMail:             "Mail",
	KeyMediaSelect:      "MediaSelect",
	KeyMediaStop:        "MediaStop",
	KeyMinus:            "Minus",
	KeyMute:             "Mute",
	KeyMyComputer:       "MyComputer",
	KeyNavigateForward:  "NavigateForward",
	KeyNavigateBackward: "NavigateBackward",
	KeyNextTrack:        "NextTrack",
	KeyNoConvert:        "NoConvert",
	KeyOEM102:           "OEM102",
	KeyPeriod:           "Period",
	KeyPlayPause:        "PlayPause",
	KeyPlus:             "Plus",
	KeyPower:            "Power",
	KeyPrevTrack:        "PrevTrack",
	KeyRAlt:             "RAlt",
	KeyRBracket:         "RBracket",
	KeyRControl:         "RControl",
	KeyRShift:           "RShift",
	KeyRWin:             "RWin",
	KeySemicolon:        "Semicolon",
	KeySlash:            "Slash",
	KeySleep:            "Sleep",
	KeyStop:             "Stop",
	KeySysrq:            "Sysrq",
	KeyTab:              "Tab",
	KeyUnderline:        "Underline",
	KeyUnlabeled:        "Unlabeled",
	KeyVolumeDown:       "VolumeDown",
	KeyVolumeUp:         "VolumeUp",
	KeyWake:             "Wake",
	KeyWebBack:          "WebBack",
	KeyWebFavorites:     "WebFavorites",
	KeyWebForward:       "WebForward",
	KeyWebHome:          "WebHome",
	KeyWebRefresh:       "WebRefresh",
	KeyWebSearch:        "WebSearch",
	KeyWebStop:          "WebStop",
	KeyYen:              "Yen",
	KeyCopy:             "Copy",
	KeyPaste:            "Paste",
	KeyCut:              "Cut",
}

var keyDisplay = [keyCount]string{
	KeyKey1:             "1",
	KeyKey2:             "2",
	KeyKey3:             "3",
	KeyKey4:             "4",
	KeyKey5:             "5",
	KeyKey6:             "6",
	KeyKey7:             "7",
	KeyKey8:             "8",
	KeyKey9:             "9",
	KeyKey0:             "0",
	KeyA:                "A",
	KeyB:                "B",
	KeyC:                "C",
	KeyD:                "D",
	KeyE:                "E",
	KeyF:                "F",
	KeyG:                "G",
	KeyH:                "H",
	KeyI:                "I",
	KeyJ:                "J",
	KeyK:                "K",
	KeyL:                "L",
	KeyM:                "M",
	KeyN:                "N",
	KeyO:                "O",
	KeyP:                "P",
	KeyQ:                "Q",
	KeyR:                "R",
	KeyS:                "S",
	KeyT:                "T",
	KeyU:                "U",
	KeyV:                "V",
	KeyW:                "W",
	KeyX:                "X",
	KeyY:                "Y",
	KeyZ:                "Z",
	KeyEscape:           "Escape",
	KeyF1:               "F1",
	KeyF2:               "F2",
	KeyF3:               "F3",
	KeyF4:               "F4",
	KeyF5:               "F5",
	KeyF6:               "F6",
	KeyF7:               "F7",
	KeyF8:               "F8",
	KeyF9:               "F9",
	KeyF10:              "F10",
	KeyF11:              "F11",
	KeyF12:              "F12",
	KeyF13:              "F13",
	KeyF14:              "F14",
	KeyF15:              "F15",
	KeyF16:              "F16",
	KeyF17:              "F17",
	KeyF18:              "F18",
	KeyF19:              "F19",
	KeyF20:              "F20",
	KeyF21:              "F21",
	KeyF22:              "F22",
	KeyF23:              "F23",
	KeyF24:              "F24",
	KeySnapshot:         "PrintScreen",
	KeyScroll:           "ScrollLock",
	KeyPause:            "Pause",
	KeyInsert:           "Insert",
	KeyHome:             "Home",
	KeyDelete:           "Delete",
	KeyEnd:              "End",
	KeyPageDown:         "PageDown",
	KeyPageUp:           "PageUp",
	KeyLeft:             "Left",
	KeyUp:               "Up",
	KeyRight:            "Right",
	KeyDown:             "Down",
	KeyBack:             "Backspace",
	KeyReturn:           "Enter",
	KeySpace:            "Space",
	KeyCompose:          "Compose",
	KeyCaret:            "^",
	KeyNumlock:          "NumLock",
	KeyNumpad0:          "Num0",
	KeyNumpad1:          "Num1",
	KeyNumpad2:          "Num2",
	KeyNumpad3:          "Num3",
	KeyNumpad4:          "Num4",
	KeyNumpad5:          "Num5",
	KeyNumpad6:          "Num6",
	KeyNumpad7:          "Num7",
	KeyNumpad8:          "Num8",
	KeyNumpad9:          "Num9",
	KeyNumpadAdd:        "Num+",
	KeyNumpadDivide:     "Num/",
	KeyNumpadDecimal:    "Num.",
	KeyNumpadComma:      "Num,",
	KeyNumpadEnter:      "NumEnter",
	KeyNumpadEquals:     "Num=",
	KeyNumpadMultiply:   "Num*",
	KeyNumpadSubtract:   "Num-",
	KeyAbntC1:           "AbntC1",
	KeyAbntC2:           "AbntC2",
	KeyApostrophe:       "'",
	KeyApps:             "Apps",
	KeyAsterisk:         "*",
	KeyAt:               "@",
	KeyAx:               "Ax",
	KeyBackslash:        "\\",
	KeyCalculator:       "Calculator",
	KeyCapital:          "CapsLock",
	KeyColon:            ":",
	KeyComma:            ",",
	KeyConvert:          "Convert",
	KeyEquals:           "=",
	KeyGrave:            "`",
	KeyKana:             "Kana",
	KeyKanji:            "Kanji",
	KeyLAlt:             "LAlt",
	KeyLBracket:         "[",
	KeyLControl:         "LCtrl",
	KeyLShift:           "LShift",
	KeyLWin:             "LWin",
	KeyMail:             "Mail",
	KeyMediaSelect:      "MediaSelect",
	KeyMediaStop:        "MediaStop",
	KeyMinus:            "-",
	KeyMute:             "Mute",
	KeyMyComputer:       "MyComputer",
	KeyNavigateForward:  "BrowserForward",
	KeyNavigateBackward: "BrowserBack",
	KeyNextTrack:        "NextTrack",
	KeyNoConvert:        "NoConvert",
	KeyOEM102:           "OEM102",
	KeyPeriod:           ".",
	KeyPlayPause:        "PlayPause",
	KeyPlus:             "+",
	KeyPower:            "Power",
	KeyPrevTrack:        "PrevTrack",
	KeyRAlt:             "RAlt",
	KeyRBracket:         "]",
	KeyRControl:         "RCtrl",
	KeyRShift:           "RShift",
	KeyRWin:             "RWin",
	KeySemicolon:        ";",
	KeySlash:            "/",
	KeySleep:            "Sleep",
	KeyStop:             "Stop",
	KeySysrq:            "SysRq",
	KeyTab:              "Tab",
	KeyUnderline:        "_",
	KeyUnlabeled:        "Unlabeled",
	KeyVolumeDown:       "VolumeDown",
	KeyVolumeUp:         "VolumeUp",
	KeyWake:             "Wake",
	KeyWebBack:          "WebBack",
	KeyWebFavorites:     "WebFavorites",
	KeyWebForward:       "WebForward",
	KeyWebHome:          "WebHome",
	KeyWebRefresh:       "WebRefresh",
	KeyWebSearch:        "WebSearch",
	KeyWebStop:          "WebStop",
	KeyYen:              "Yen",
	KeyCopy:             "Copy",
	KeyPaste:            "Paste",
	KeyCut:              "Cut",
}

// String returns the key's display name as used in menu labels.
func (k SymbolicKey) String() string {
	if k == KeyNone {
		return "None"
	}
	if k < keyCount {
		return keyDisplay[k]
	}
	return fmt.Sprintf("SymbolicKey(%d)", uint16(k))
}

// Name returns the identifier-style name ("Key1", "PageUp", "Semicolon").
func (k SymbolicKey) Name() string {
	if k > KeyNone && k < keyCount {
		return keyIdents[k]
	}
	return k.String()
}

// Valid reports whether k is a member of the enumeration other than KeyNone.
func (k SymbolicKey) Valid() bool {
	return k > KeyNone && k < keyCount
}

// IsModifier reports whether k is one of the sided modifier keys.
func (k SymbolicKey) IsModifier() bool {
	switch k {
	case KeyLShift, KeyRShift, KeyLControl, KeyRControl, KeyLAlt, KeyRAlt, KeyLWin, KeyRWin:
		return true
	}
	return false
}

// AllKeys returns every symbolic key in declaration order.
func AllKeys() []SymbolicKey {
	keys := make([]SymbolicKey, 0, keyCount-1)
	for k := KeyNone + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

var keysByName = func() map[string]SymbolicKey {
	m := make(map[string]SymbolicKey, 2*int(keyCount))
	for k := KeyNone + 1; k < keyCount; k++ {
		m[strings.ToLower(keyDisplay[k])] = k
	}
	// Identifiers win over display names when both spell the same word.
	for k := KeyNone + 1; k < keyCount; k++ {
		m[strings.ToLower(keyIdents[k])] = k
	}
	return m
}()

// ParseKey resolves a key by identifier or display name, case-insensitively.
func ParseKey(name string) (SymbolicKey, bool) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}
