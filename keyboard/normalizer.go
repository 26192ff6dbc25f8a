package keyboard

import (
	"log/slog"
	"sync/atomic"
)

// Layout is an opaque keyboard-layout handle (HKL on Windows).
type Layout uintptr

// Platform is the set of OS keyboard primitives the normalizer consults.
type Platform interface {
	// KeyPressed reports the live pressed state of a single key.
	KeyPressed(vk VirtualKey) bool
	// KeyboardState fills state with the 256-entry key state array.
	KeyboardState(state *[256]byte) bool
	// KeyboardLayout returns the active layout handle.
	KeyboardLayout() Layout
	// ToUnicode decodes the character vk produces under state and layout.
	ToUnicode(vk VirtualKey, state *[256]byte, layout Layout) (rune, bool)
	// MapScanCode maps a scancode (0xE0 prefix for extended) to a sided virtual key.
	MapScanCode(scancode uint32) VirtualKey
	// MapVirtualKeyToChar returns the unshifted character of vk, 0 if none.
	MapVirtualKeyToChar(vk VirtualKey) rune
}

type layoutScan struct {
	layout    Layout
	usesAltGr bool
}

// Normalizer turns raw, ambiguous keyboard messages into portable key events.
// It owns the AltGr layout cache; create one per windowing context.
type Normalizer struct {
	os     Platform
	logger *slog.Logger
	scan   atomic.Pointer[layoutScan]
}

// NewNormalizer creates a normalizer over the given platform primitives.
func NewNormalizer(p Platform, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{os: p, logger: logger}
}

// Modifiers reads the live modifier state. When the layout uses AltGr and
// the right Alt key is down, Ctrl and Alt are left out: AltGr is never
// reported as a literal Ctrl+Alt chord.
func (n *Normalizer) Modifiers() ModifiersState {
	filterAltGr := n.LayoutUsesAltGr() && n.os.KeyPressed(VKRMenu)

	var mods ModifiersState
	mods = mods.Set(ModShift, n.os.KeyPressed(VKShift))
	mods = mods.Set(ModCtrl, n.os.KeyPressed(VKControl) && !filterAltGr)
	mods = mods.Set(ModAlt, n.os.KeyPressed(VKMenu) && !filterAltGr)
	mods = mods.Set(ModLogo, n.os.KeyPressed(VKLWin) || n.os.KeyPressed(VKRWin))
	return mods
}

// PressedKeys returns every virtual key whose high state bit is set.
func (n *Normalizer) PressedKeys() []VirtualKey {
	var state [256]byte
	if !n.os.KeyboardState(&state) {
		return nil
	}
	var keys []VirtualKey
	for vk, b := range state {
		if b&0x80 != 0 {
			keys = append(keys, VirtualKey(vk))
		}
	}
	return keys
}

// SideModifiers reports which physical modifier keys are down, with AltGr
// filtered out.
func (n *Normalizer) SideModifiers() ModifiersStateSide {
	var side ModifiersStateSide
	for _, vk := range n.PressedKeys() {
		side |= sideBits[vk]
	}
	return n.FilterOutAltGr(side)
}

// FilterOutAltGr drops Ctrl and Alt bits if the active layout uses AltGr and
// right Alt is part of s.
func (n *Normalizer) FilterOutAltGr(s ModifiersStateSide) ModifiersStateSide {
	if s&RAlt == 0 || !n.LayoutUsesAltGr() {
		return s
	}
	return s.WithoutAltGr()
}

// LayoutUsesAltGr reports whether the active layout emulates AltGr as Ctrl+Alt.
//
// Windows offers no direct query, so every virtual key is decoded twice, once
// with an empty key state and once with Ctrl and Alt held; any difference
// means AltGr produces characters of its own. The scan is 512 translations,
// so the answer is cached per layout handle and only recomputed when the
// handle changes.
func (n *Normalizer) LayoutUsesAltGr() bool {
	layout := n.os.KeyboardLayout()
	cached := n.scan.Load()
	if cached != nil && cached.layout == layout {
		return cached.usesAltGr
	}

	result := &layoutScan{layout: layout, usesAltGr: n.scanAltGr(layout)}
	if n.scan.CompareAndSwap(cached, result) {
		n.logger.Debug("Keyboard layout changed", "layout", uintptr(layout), "altgr", result.usesAltGr)
	}
	return result.usesAltGr
}

func (n *Normalizer) scanAltGr(layout Layout) bool {
	var empty, altgr [256]byte
	altgr[VKMenu] = 0x80
	altgr[VKControl] = 0x80

	for vk := 0; vk < 256; vk++ {
		plain, okPlain := n.os.ToUnicode(VirtualKey(vk), &empty, layout)
		shifted, okAltGr := n.os.ToUnicode(VirtualKey(vk), &altgr, layout)
		if okPlain && okAltGr && plain != shifted {
			return true
		}
	}
	return false
}

// HandleExtendedKeys resolves the generic Shift/Ctrl/Alt codes to their sided
// variants and rewrites the Pause and ScrollLock quirks. It returns the
// resolved virtual key and the combined scancode, or false when the event is
// the phantom half of a Pause sequence and must be dropped.
func (n *Normalizer) HandleExtendedKeys(vk VirtualKey, scancode uint32, extended bool) (VirtualKey, uint32, bool) {
	if extended {
		scancode |= 0xE000
	}

	switch vk {
	case VKShift:
		return n.os.MapScanCode(scancode), scancode, true
	case VKControl:
		if extended {
			return VKRControl, scancode, true
		}
		return VKLControl, scancode, true
	case VKMenu:
		if extended {
			return VKRMenu, scancode, true
		}
		return VKLMenu, scancode, true
	}

	switch {
	// Pause arrives as a LeftControl+NumLock scancode pair, both reporting
	// VK_PAUSE (or 0xFF from raw input on the second one).
	case scancode == 0xE01D && vk == VKPause:
		return 0, 0, false
	case scancode == 0x45 && (vk == VKPause || vk == vkRawInputPause):
		return VKPause, 0xE059, true
	// With modifiers held Pause reports yet another scancode and a wrong vkey.
	case scancode == 0xE046:
		return VKPause, 0xE059, true
	// ScrollLock's vkey is wrong when modifiers are held.
	case scancode == 0x46:
		return VKScroll, scancode, true
	}
	return vk, scancode, true
}

// ProcessKeyParams decodes the parameters of a WM_KEYDOWN-family message. The
// scancode is reported even when the key has no symbolic identity.
func (n *Normalizer) ProcessKeyParams(wparam, lparam uintptr) (ScanCode, SymbolicKey, bool) {
	scancode := uint32(lparam>>16) & 0xFF
	extended := lparam&0x01000000 != 0
	vk, resolved, ok := n.HandleExtendedKeys(VirtualKey(wparam), scancode, extended)
	if !ok {
		return 0, KeyNone, false
	}
	return ScanCode(resolved), n.SymbolicKey(vk), true
}

// SymbolicKey translates a resolved virtual key. The OEM punctuation codes are
// reused for different physical keys across layouts, so they are matched by
// the character they currently produce instead of by code.
func (n *Normalizer) SymbolicKey(vk VirtualKey) SymbolicKey {
	if isTextKey(vk) {
		ch := n.os.MapVirtualKeyToChar(vk) & 0x7FFF
		return textKeys[ch]
	}
	return FromVirtualKey(vk)
}

// Normalize converts a raw key message into a portable key event. It reports
// false for messages that are not key messages or that must be suppressed.
func (n *Normalizer) Normalize(msg RawKeyMessage) (KeyEvent, bool) {
	var state KeyState
	switch msg.Message {
	case WMKeyDown, WMSysKeyDown:
		state = Pressed
	case WMKeyUp, WMSysKeyUp:
		state = Released
	default:
		return KeyEvent{}, false
	}

	scancode, key, ok := n.ProcessKeyParams(msg.WParam, msg.LParam)
	if !ok {
		return KeyEvent{}, false
	}
	return KeyEvent{
		ScanCode:  scancode,
		Key:       key,
		Modifiers: n.Modifiers(),
		State:     state,
	}, true
}
