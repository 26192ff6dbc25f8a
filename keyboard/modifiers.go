package keyboard

import "strings"

// ModifiersState is the logical, side-independent modifier set.
type ModifiersState uint8

const (
	ModShift ModifiersState = 1 << iota
	ModCtrl
	ModAlt
	ModLogo
)

// Shift reports whether a Shift key is held.
func (m ModifiersState) Shift() bool { return m&ModShift != 0 }

// Ctrl reports whether a Control key is held.
func (m ModifiersState) Ctrl() bool { return m&ModCtrl != 0 }

// Alt reports whether an Alt key is held.
func (m ModifiersState) Alt() bool { return m&ModAlt != 0 }

// Logo reports whether a Windows/Super/Command key is held.
func (m ModifiersState) Logo() bool { return m&ModLogo != 0 }

// Contains reports whether every bit of other is set in m.
func (m ModifiersState) Contains(other ModifiersState) bool { return m&other == other }

// Set returns m with bits turned on or off.
func (m ModifiersState) Set(bits ModifiersState, on bool) ModifiersState {
	if on {
		return m | bits
	}
	return m &^ bits
}

func (m ModifiersState) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m.Logo() {
		parts = append(parts, "logo")
	}
	if m.Ctrl() {
		parts = append(parts, "ctrl")
	}
	if m.Shift() {
		parts = append(parts, "shift")
	}
	if m.Alt() {
		parts = append(parts, "alt")
	}
	return strings.Join(parts, "|")
}

// ModifiersStateSide records which physical side of each modifier is held.
type ModifiersStateSide uint16

const (
	LShift ModifiersStateSide = 1 << iota
	RShift
	LCtrl
	RCtrl
	LAlt
	RAlt
	LLogo
	RLogo
)

// Collapse folds left/right pairs into the logical modifier set.
func (s ModifiersStateSide) Collapse() ModifiersState {
	var m ModifiersState
	m = m.Set(ModShift, s&(LShift|RShift) != 0)
	m = m.Set(ModCtrl, s&(LCtrl|RCtrl) != 0)
	m = m.Set(ModAlt, s&(LAlt|RAlt) != 0)
	m = m.Set(ModLogo, s&(LLogo|RLogo) != 0)
	return m
}

// WithoutAltGr clears both Ctrl and both Alt bits when right Alt is held.
// Callers decide whether the active layout treats right Alt as AltGr;
// see Normalizer.FilterOutAltGr.
func (s ModifiersStateSide) WithoutAltGr() ModifiersStateSide {
	if s&RAlt == 0 {
		return s
	}
	return s &^ (LCtrl | RCtrl | LAlt | RAlt)
}

var sideBits = map[VirtualKey]ModifiersStateSide{
	VKLShift:   LShift,
	VKRShift:   RShift,
	VKLControl: LCtrl,
	VKRControl: RCtrl,
	VKLMenu:    LAlt,
	VKRMenu:    RAlt,
	VKLWin:     LLogo,
	VKRWin:     RLogo,
}
