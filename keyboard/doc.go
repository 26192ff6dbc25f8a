// Package keyboard normalizes raw Win32 keyboard messages into portable key
// events: a scancode, an optional symbolic key and the logical modifier set.
//
// The hard cases are keys the OS reports ambiguously. Shift, Ctrl and Alt
// share one virtual key for both sides; layouts with AltGr report it as
// Ctrl+Alt; Pause arrives as a phantom Ctrl press followed by NumLock; and the
// OEM punctuation codes mean different physical keys on different layouts.
// Normalizer resolves all of these against a Platform, which the platform
// package implements on top of user32.dll.
package keyboard
