package menu

// Handle identifies a native menu object (HMENU on Windows).
type Handle uintptr

// Backend is the native menu capability a Menu builds on. Implementations
// append synchronously and in call order. DestroyMenu releases the menu and,
// recursively, every submenu appended to it.
type Backend interface {
	CreateMenu() (Handle, error)
	AppendItem(menu Handle, id int, text string) error
	AppendSubmenu(menu, submenu Handle, label string) error
	AppendSeparator(menu Handle) error
	DestroyMenu(menu Handle) error
}

// Host is a window that displays one menu at a time.
type Host interface {
	// SetMenu shows m in the window, replacing whatever was shown before.
	SetMenu(m Handle) error
}
