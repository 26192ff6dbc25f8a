package accel

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"markestedt/menukeys/hotkey"
	"markestedt/menukeys/keyboard"
	"markestedt/menukeys/menu"
)

// Registry owns the active accelerator table. Compilation happens outside
// the lock; the lock covers only the swap of the active table and lookups
// against it.
type Registry struct {
	platform Platform
	logger   *slog.Logger

	mu     sync.Mutex
	active *Table
}

func NewRegistry(p Platform, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{platform: p, logger: logger}
}

// Compile builds a table from every binding accumulated by m. Bindings that
// have no accelerator encoding, ids that do not fit a command word and
// repeated hotkeys (the first binding wins) are dropped one by one. The
// native table is created in a single call.
func (r *Registry) Compile(m *menu.Menu) (*Table, error) {
	if err := m.Err(); err != nil {
		return nil, fmt.Errorf("compile accelerators: %w", err)
	}

	bindings := m.Bindings()
	t := &Table{
		platform: r.platform,
		entries:  make([]Entry, 0, len(bindings)),
		lookup:   make(map[hotkey.Hotkey]int, len(bindings)),
	}
	for _, b := range bindings {
		n, ok := hotkey.ToNative(b.Hotkey)
		if !ok {
			r.logger.Debug("Dropping hotkey without accelerator encoding", "id", b.ID, "hotkey", b.Hotkey)
			continue
		}
		if b.ID < 0 || b.ID > math.MaxUint16 {
			r.logger.Warn("Dropping accelerator with out of range command id", "id", b.ID, "hotkey", b.Hotkey)
			continue
		}
		if prev, dup := t.lookup[b.Hotkey]; dup {
			r.logger.Warn("Hotkey bound twice, keeping first", "hotkey", b.Hotkey, "kept", prev, "dropped", b.ID)
			continue
		}
		t.entries = append(t.entries, Entry{Flags: n.Flags, Key: n.Key, Cmd: uint16(b.ID)})
		t.lookup[b.Hotkey] = b.ID
	}

	if len(t.entries) > 0 {
		h, err := r.platform.CreateAcceleratorTable(t.entries)
		if err != nil {
			return nil, fmt.Errorf("create accelerator table: %w", err)
		}
		t.handle = h
	}
	r.logger.Debug("Compiled accelerators", "bindings", len(bindings), "entries", len(t.entries))
	return t, nil
}

// Install makes t the active table and then destroys the table it replaced.
// The old table is never destroyed while it is still visible to Translate or
// WithActive.
func (r *Registry) Install(t *Table) error {
	if t == nil {
		return errors.New("install: nil table")
	}
	if t.Destroyed() {
		return fmt.Errorf("install: %w", ErrDestroyed)
	}

	r.mu.Lock()
	prev := r.active
	r.active = t
	r.mu.Unlock()

	if prev == nil || prev == t {
		return nil
	}
	return prev.Destroy()
}

// Active returns the installed table, or nil.
func (r *Registry) Active() *Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// WithActive calls fn with the active table (possibly nil) while the table
// cannot be replaced. fn must not call Install or Close.
func (r *Registry) WithActive(fn func(*Table)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.active)
}

// Translate resolves a pressed key event against the active table.
func (r *Registry) Translate(ev keyboard.KeyEvent) (int, bool) {
	if ev.State != keyboard.Pressed || !ev.HasKey() {
		return 0, false
	}
	h := hotkey.New(ev.Modifiers, ev.Key)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return 0, false
	}
	return r.active.Lookup(h)
}

// Close uninstalls and destroys the active table.
func (r *Registry) Close() error {
	r.mu.Lock()
	prev := r.active
	r.active = nil
	r.mu.Unlock()

	if prev == nil {
		return nil
	}
	return prev.Destroy()
}
