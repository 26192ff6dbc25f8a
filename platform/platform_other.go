//go:build !windows

package platform

import (
	"log/slog"

	"markestedt/menukeys/accel"
	"markestedt/menukeys/keyboard"
	"markestedt/menukeys/menu"
)

func NewKeyboard() (keyboard.Platform, error) {
	return nil, ErrUnsupported
}

func NewMenuBackend() (menu.Backend, error) {
	return nil, ErrUnsupported
}

func NewAcceleratorPlatform() (accel.Platform, error) {
	return nil, ErrUnsupported
}

func FindWindow(title string) (menu.Host, error) {
	return nil, ErrUnsupported
}

func NewKeyboardHook(logger *slog.Logger) (KeyboardHook, error) {
	return nil, ErrUnsupported
}
