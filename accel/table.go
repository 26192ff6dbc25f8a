// Package accel compiles the hotkeys of a menu tree into one accelerator
// table and keeps the single table that command dispatch consults.
package accel

import (
	"errors"
	"fmt"
	"sync"

	"markestedt/menukeys/hotkey"
)

var ErrDestroyed = errors.New("accelerator table is destroyed")

// Entry mirrors a Win32 ACCEL record.
type Entry struct {
	Flags uint8
	Key   uint16
	Cmd   uint16
}

// Hotkey decodes the key combination of e.
func (e Entry) Hotkey() (hotkey.Hotkey, bool) {
	return hotkey.FromNative(hotkey.Native{Flags: e.Flags, Key: e.Key})
}

// TableHandle identifies a native accelerator table (HACCEL on Windows).
type TableHandle uintptr

// Platform creates and destroys native accelerator tables.
type Platform interface {
	CreateAcceleratorTable(entries []Entry) (TableHandle, error)
	DestroyAcceleratorTable(h TableHandle) error
}

// Table is an immutable compiled accelerator table.
type Table struct {
	platform Platform
	handle   TableHandle
	entries  []Entry
	lookup   map[hotkey.Hotkey]int

	mu        sync.Mutex
	destroyed bool
}

// Handle returns the native handle. A table without entries has no native
// object and reports 0.
func (t *Table) Handle() TableHandle { return t.handle }

// Entries returns a copy of the compiled records.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Len() int { return len(t.entries) }

// Lookup returns the command id bound to h.
func (t *Table) Lookup(h hotkey.Hotkey) (int, bool) {
	id, ok := t.lookup[h]
	return id, ok
}

// Destroyed reports whether Destroy has run.
func (t *Table) Destroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}

// Destroy releases the native table. Only the first call reaches the
// platform; later calls return ErrDestroyed.
func (t *Table) Destroy() error {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return ErrDestroyed
	}
	t.destroyed = true
	t.mu.Unlock()

	if t.handle == 0 {
		return nil
	}
	if err := t.platform.DestroyAcceleratorTable(t.handle); err != nil {
		return fmt.Errorf("destroy accelerator table: %w", err)
	}
	return nil
}
