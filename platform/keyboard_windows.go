//go:build windows

package platform

import (
	"fmt"
	"unicode"
	"unicode/utf16"
	"unsafe"

	"markestedt/menukeys/keyboard"
)

var (
	getAsyncKeyState  = user32.NewProc("GetAsyncKeyState")
	getKeyboardState  = user32.NewProc("GetKeyboardState")
	getKeyboardLayout = user32.NewProc("GetKeyboardLayout")
	toUnicodeEx       = user32.NewProc("ToUnicodeEx")
	mapVirtualKeyW    = user32.NewProc("MapVirtualKeyW")
)

const (
	mapvkVKToChar   = 2
	mapvkVSCToVKEx  = 3
	toUnicodeNoDead = 0x4 // leave the kernel's dead-key state untouched
)

// Keyboard provides the Win32 keyboard primitives used by keyboard.Normalizer.
type Keyboard struct{}

// NewKeyboard returns the keyboard primitives of the running system.
func NewKeyboard() (keyboard.Platform, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	return Keyboard{}, nil
}

func (Keyboard) KeyPressed(vk keyboard.VirtualKey) bool {
	r, _, _ := getAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}

func (Keyboard) KeyboardState(state *[256]byte) bool {
	r, _, _ := getKeyboardState.Call(uintptr(unsafe.Pointer(state)))
	return r != 0
}

func (Keyboard) KeyboardLayout() keyboard.Layout {
	hkl, _, _ := getKeyboardLayout.Call(0)
	return keyboard.Layout(hkl)
}

func (Keyboard) ToUnicode(vk keyboard.VirtualKey, state *[256]byte, layout keyboard.Layout) (rune, bool) {
	var buf [5]uint16
	n, _, _ := toUnicodeEx.Call(
		uintptr(vk),
		0,
		uintptr(unsafe.Pointer(state)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		toUnicodeNoDead,
		uintptr(layout),
	)
	// negative results are dead keys, zero means no translation
	if int32(n) < 1 {
		return 0, false
	}
	runes := utf16.Decode(buf[:min(int(n), len(buf))])
	if len(runes) == 0 || runes[0] == unicode.ReplacementChar {
		return 0, false
	}
	return runes[0], true
}

func (Keyboard) MapScanCode(scancode uint32) keyboard.VirtualKey {
	vk, _, _ := mapVirtualKeyW.Call(uintptr(scancode), mapvkVSCToVKEx)
	return keyboard.VirtualKey(vk)
}

func (Keyboard) MapVirtualKeyToChar(vk keyboard.VirtualKey) rune {
	r, _, _ := mapVirtualKeyW.Call(uintptr(vk), mapvkVKToChar)
	return rune(uint32(r))
}
