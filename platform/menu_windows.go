//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"markestedt/menukeys/menu"
)

var (
	createMenu  = user32.NewProc("CreateMenu")
	appendMenuW = user32.NewProc("AppendMenuW")
	destroyMenu = user32.NewProc("DestroyMenu")
	setMenu     = user32.NewProc("SetMenu")
	drawMenuBar = user32.NewProc("DrawMenuBar")
	findWindowW = user32.NewProc("FindWindowW")
)

const (
	mfString    = 0x0000
	mfPopup     = 0x0010
	mfSeparator = 0x0800
)

// MenuBackend builds native Win32 menus.
type MenuBackend struct{}

// NewMenuBackend returns the native menu backend.
func NewMenuBackend() (menu.Backend, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	return MenuBackend{}, nil
}

func (MenuBackend) CreateMenu() (menu.Handle, error) {
	h, _, err := createMenu.Call()
	if h == 0 {
		return 0, callError("CreateMenu", err)
	}
	return menu.Handle(h), nil
}

func (MenuBackend) AppendItem(m menu.Handle, id int, text string) error {
	p, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	return appendMenu(m, mfString, uintptr(id), p)
}

func (MenuBackend) AppendSubmenu(m, submenu menu.Handle, label string) error {
	p, err := windows.UTF16PtrFromString(label)
	if err != nil {
		return err
	}
	return appendMenu(m, mfPopup, uintptr(submenu), p)
}

func (MenuBackend) AppendSeparator(m menu.Handle) error {
	return appendMenu(m, mfSeparator, 0, nil)
}

func (MenuBackend) DestroyMenu(m menu.Handle) error {
	r, _, err := destroyMenu.Call(uintptr(m))
	if r == 0 {
		return callError("DestroyMenu", err)
	}
	return nil
}

func appendMenu(m menu.Handle, flags uint32, item uintptr, text *uint16) error {
	r, _, err := appendMenuW.Call(uintptr(m), uintptr(flags), item, uintptr(unsafe.Pointer(text)))
	if r == 0 {
		return callError("AppendMenuW", err)
	}
	return nil
}

// WindowMenuHost shows menus in the menu bar of a top-level window.
type WindowMenuHost struct {
	hwnd windows.HWND
}

func NewWindowMenuHost(hwnd windows.HWND) *WindowMenuHost {
	return &WindowMenuHost{hwnd: hwnd}
}

// FindWindow looks up a top-level window by title.
func FindWindow(title string) (menu.Host, error) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}
	hwnd, _, callErr := findWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	if hwnd == 0 {
		return nil, fmt.Errorf("window %q: %w", title, callError("FindWindowW", callErr))
	}
	return NewWindowMenuHost(windows.HWND(hwnd)), nil
}

func (h *WindowMenuHost) HWND() windows.HWND { return h.hwnd }

// SetMenu replaces the window's menu and redraws the menu bar. The menu that
// was shown before stays alive; its owner destroys it.
func (h *WindowMenuHost) SetMenu(m menu.Handle) error {
	r, _, err := setMenu.Call(uintptr(h.hwnd), uintptr(m))
	if r == 0 {
		return callError("SetMenu", err)
	}
	// DrawMenuBar fails harmlessly when the window has no menu bar to redraw.
	drawMenuBar.Call(uintptr(h.hwnd))
	return nil
}
