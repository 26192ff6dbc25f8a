// Package menu builds hierarchical, append-only menus on a native backend
// and accumulates the hotkeys of every item for accelerator compilation.
package menu

import (
	"errors"
	"fmt"
	"log/slog"

	"markestedt/menukeys/hotkey"
)

var (
	ErrConsumed    = errors.New("menu was attached to another menu")
	ErrDestroyed   = errors.New("menu is destroyed")
	ErrDuplicateID = errors.New("duplicate menu item id")
)

// ItemKind tags the variants of Item.
type ItemKind int

const (
	KindItem ItemKind = iota
	KindSeparator
	KindSubmenu
)

func (k ItemKind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindSeparator:
		return "separator"
	case KindSubmenu:
		return "submenu"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// Item is one entry of a menu.
type Item struct {
	Kind    ItemKind
	ID      int            // KindItem only
	Label   string         // KindItem and KindSubmenu
	Text    string         // native display text, KindItem only
	Hotkey  *hotkey.Hotkey // KindItem only, may be nil
	Submenu *Menu          // KindSubmenu only
}

// Binding pairs a hotkey with the id of the item it activates.
type Binding struct {
	Hotkey hotkey.Hotkey
	ID     int
}

// Menu is an ordered list of items backed by a native menu object. It is
// append-only: reconfiguring means building a new Menu.
type Menu struct {
	backend  Backend
	handle   Handle
	style    hotkey.LabelStyle
	logger   *slog.Logger
	items    []Item
	bindings []Binding
	ids      map[int]struct{}
	err      error
	consumed bool
	destroyd bool
}

// Option configures a Menu.
type Option func(*Menu)

// WithLabelStyle sets the style used to render hotkeys in item text.
func WithLabelStyle(s hotkey.LabelStyle) Option {
	return func(m *Menu) { m.style = s }
}

// WithLogger sets the logger. Submenus should share their parent's logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Menu) { m.logger = l }
}

// New creates an empty menu on backend b. A failed native creation is kept
// as the menu's error, see Err.
func New(b Backend, opts ...Option) *Menu {
	m := &Menu{
		backend: b,
		style:   hotkey.DefaultStyle(),
		logger:  slog.Default(),
		ids:     make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	h, err := b.CreateMenu()
	if err != nil {
		m.fail(fmt.Errorf("create menu: %w", err))
		return m
	}
	m.handle = h
	return m
}

// AddItem appends a command item. When hk is non-nil and can be compiled into
// an accelerator, the pair (hk, id) is recorded and the hotkey is shown next
// to the label. A hotkey that cannot be compiled leaves a plain item.
func (m *Menu) AddItem(id int, label string, hk *hotkey.Hotkey) {
	if !m.usable() {
		return
	}
	if _, dup := m.ids[id]; dup {
		m.fail(fmt.Errorf("%w: %d (%q)", ErrDuplicateID, id, label))
		return
	}

	text := label
	var bound *hotkey.Hotkey
	if hk != nil {
		if hotkey.Representable(*hk) {
			key := *hk
			bound = &key
			text = label + "\t" + m.style.Render(key)
		} else {
			m.logger.Debug("Hotkey has no accelerator, showing plain item", "id", id, "label", label, "hotkey", m.style.Render(*hk))
		}
	}

	if err := m.backend.AppendItem(m.handle, id, text); err != nil {
		m.fail(fmt.Errorf("append item %d: %w", id, err))
		return
	}

	m.ids[id] = struct{}{}
	item := Item{Kind: KindItem, ID: id, Label: label, Text: text}
	if hk != nil {
		key := *hk
		item.Hotkey = &key
	}
	m.items = append(m.items, item)
	if bound != nil {
		m.bindings = append(m.bindings, Binding{Hotkey: *bound, ID: id})
	}
}

// AddDropdown appends sub as a submenu. sub is consumed: its bindings and ids
// move into m, its native handle is released together with m, and further
// builder calls on sub fail with ErrConsumed.
func (m *Menu) AddDropdown(label string, sub *Menu) {
	if !m.usable() {
		return
	}
	switch {
	case sub == nil:
		m.fail(fmt.Errorf("add dropdown %q: nil submenu", label))
		return
	case sub == m:
		m.fail(fmt.Errorf("add dropdown %q: menu cannot contain itself", label))
		return
	case sub.consumed:
		m.fail(fmt.Errorf("add dropdown %q: %w", label, ErrConsumed))
		return
	case sub.destroyd:
		m.fail(fmt.Errorf("add dropdown %q: %w", label, ErrDestroyed))
		return
	case sub.err != nil:
		m.fail(fmt.Errorf("add dropdown %q: %w", label, sub.err))
		return
	}
	for id := range sub.ids {
		if _, dup := m.ids[id]; dup {
			m.fail(fmt.Errorf("add dropdown %q: %w: %d", label, ErrDuplicateID, id))
			return
		}
	}

	if err := m.backend.AppendSubmenu(m.handle, sub.handle, label); err != nil {
		m.fail(fmt.Errorf("append submenu %q: %w", label, err))
		return
	}

	for id := range sub.ids {
		m.ids[id] = struct{}{}
	}
	m.bindings = append(m.bindings, sub.bindings...)
	sub.bindings = nil
	sub.consumed = true
	m.items = append(m.items, Item{Kind: KindSubmenu, Label: label, Submenu: sub})
}

// AddSeparator appends a separator line.
func (m *Menu) AddSeparator() {
	if !m.usable() {
		return
	}
	if err := m.backend.AppendSeparator(m.handle); err != nil {
		m.fail(fmt.Errorf("append separator: %w", err))
		return
	}
	m.items = append(m.items, Item{Kind: KindSeparator})
}

// Items returns the entries of m in insertion order.
func (m *Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Bindings returns the accumulated (hotkey, id) pairs of m and every submenu
// attached to it, in insertion order.
func (m *Menu) Bindings() []Binding {
	out := make([]Binding, len(m.bindings))
	copy(out, m.bindings)
	return out
}

// Tree describes m as nested values with the native display text of every
// item.
func (m *Menu) Tree() []Tree {
	out := make([]Tree, 0, len(m.items))
	for _, it := range m.items {
		switch it.Kind {
		case KindItem:
			out = append(out, Tree{ID: it.ID, Text: it.Text})
		case KindSeparator:
			out = append(out, Tree{Separator: true})
		case KindSubmenu:
			out = append(out, Tree{Text: it.Label, Items: it.Submenu.Tree()})
		}
	}
	return out
}

// IDs reports how many item ids the menu tree holds.
func (m *Menu) IDs() int { return len(m.ids) }

// Handle returns the native menu handle.
func (m *Menu) Handle() Handle { return m.handle }

// Err returns the first error hit while building the menu.
func (m *Menu) Err() error { return m.err }

// Consumed reports whether m was attached to a parent menu.
func (m *Menu) Consumed() bool { return m.consumed }

// Destroy releases the native menu and its submenus. It is a no-op for a
// menu already destroyed or owned by a parent.
func (m *Menu) Destroy() error {
	if m.consumed {
		return nil
	}
	if m.destroyd || m.handle == 0 {
		m.destroyd = true
		return nil
	}
	m.destroyd = true
	m.markDestroyed()
	if err := m.backend.DestroyMenu(m.handle); err != nil {
		return fmt.Errorf("destroy menu: %w", err)
	}
	return nil
}

func (m *Menu) markDestroyed() {
	for _, it := range m.items {
		if it.Kind == KindSubmenu {
			it.Submenu.destroyd = true
			it.Submenu.markDestroyed()
		}
	}
}

func (m *Menu) usable() bool {
	switch {
	case m.err != nil:
		return false
	case m.consumed:
		m.fail(ErrConsumed)
		return false
	case m.destroyd:
		m.fail(ErrDestroyed)
		return false
	}
	return true
}

func (m *Menu) fail(err error) {
	if m.err == nil {
		m.err = err
		m.logger.Error("Menu build failed", "error", err)
	}
}
