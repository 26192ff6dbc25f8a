package menu

import (
	"errors"
	"testing"

	"markestedt/menukeys/hotkey"
	"markestedt/menukeys/keyboard"
)

func hk(mods keyboard.ModifiersState, key keyboard.SymbolicKey) *hotkey.Hotkey {
	h := hotkey.New(mods, key)
	return &h
}

func newMenu(b Backend) *Menu {
	return New(b, WithLabelStyle(hotkey.WindowsStyle))
}

func TestAddItemText(t *testing.T) {
	b := NewMemoryBackend()
	m := newMenu(b)
	m.AddItem(1, "Open", hk(keyboard.ModCtrl, keyboard.KeyO))
	m.AddItem(2, "Compose", hk(keyboard.ModCtrl, keyboard.KeyCompose))
	m.AddItem(3, "Quit", nil)
	if err := m.Err(); err != nil {
		t.Fatal(err)
	}

	node, ok := b.Node(m.Handle())
	if !ok {
		t.Fatal("menu not recorded")
	}
	want := []string{"Open\tCtrl+O", "Compose", "Quit"}
	if len(node.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(node.Entries), len(want))
	}
	for i, e := range node.Entries {
		if e.Text != want[i] {
			t.Errorf("entry %d text = %q, want %q", i, e.Text, want[i])
		}
	}

	bindings := m.Bindings()
	if len(bindings) != 1 || bindings[0].ID != 1 {
		t.Errorf("Bindings() = %+v, want only id 1", bindings)
	}
	if items := m.Items(); items[1].Hotkey == nil {
		t.Error("unrepresentable hotkey was dropped from the item")
	}
}

func TestAddItemDoesNotConsumeHotkey(t *testing.T) {
	m := newMenu(NewMemoryBackend())
	h := hk(keyboard.ModCtrl, keyboard.KeyS)
	m.AddItem(1, "Save", h)
	m.AddItem(2, "Save As", h)
	if err := m.Err(); err != nil {
		t.Fatal(err)
	}
	if got := hotkey.WindowsStyle.Render(*h); got != "Ctrl+S" {
		t.Errorf("hotkey changed after registration: %q", got)
	}
	if n := len(m.Bindings()); n != 2 {
		t.Errorf("got %d bindings, want 2", n)
	}
}

func TestAddDropdownTransfersBindings(t *testing.T) {
	b := NewMemoryBackend()
	root := newMenu(b)
	root.AddItem(1, "New", hk(keyboard.ModCtrl, keyboard.KeyN))

	sub := newMenu(b)
	sub.AddItem(10, "Cut", hk(keyboard.ModCtrl, keyboard.KeyX))
	sub.AddSeparator()

	deep := newMenu(b)
	deep.AddItem(20, "Zoom In", hk(keyboard.ModCtrl|keyboard.ModShift, keyboard.KeyZ))
	sub.AddDropdown("View", deep)
	root.AddDropdown("Edit", sub)

	if err := root.Err(); err != nil {
		t.Fatal(err)
	}
	ids := map[int]bool{}
	for _, bnd := range root.Bindings() {
		ids[bnd.ID] = true
	}
	for _, id := range []int{1, 10, 20} {
		if !ids[id] {
			t.Errorf("binding for id %d missing from root", id)
		}
	}
	if len(sub.Bindings()) != 0 || len(deep.Bindings()) != 0 {
		t.Error("consumed submenus kept their bindings")
	}
	if !sub.Consumed() || !deep.Consumed() {
		t.Error("submenus not marked consumed")
	}

	tree := root.Tree()
	if len(tree) != 2 || tree[1].Text != "Edit" || len(tree[1].Items) != 3 {
		t.Fatalf("Tree() = %+v", tree)
	}
	if got := tree[1].Items[2].Items[0].Text; got != "Zoom In\tCtrl+Shift+Z" {
		t.Errorf("nested item text = %q", got)
	}
}

func TestConsumedMenuRejectsBuilderCalls(t *testing.T) {
	b := NewMemoryBackend()
	root := newMenu(b)
	sub := newMenu(b)
	root.AddDropdown("File", sub)

	sub.AddItem(1, "Late", nil)
	if !errors.Is(sub.Err(), ErrConsumed) {
		t.Errorf("Err() = %v, want ErrConsumed", sub.Err())
	}

	other := newMenu(b)
	other.AddDropdown("Again", sub)
	if !errors.Is(other.Err(), ErrConsumed) {
		t.Errorf("re-attaching consumed menu: Err() = %v, want ErrConsumed", other.Err())
	}
}

func TestDuplicateIDs(t *testing.T) {
	tests := []struct {
		name  string
		build func(b Backend) *Menu
	}{
		{"same menu", func(b Backend) *Menu {
			m := newMenu(b)
			m.AddItem(7, "A", nil)
			m.AddItem(7, "B", nil)
			return m
		}},
		{"across submenu", func(b Backend) *Menu {
			m := newMenu(b)
			m.AddItem(7, "A", nil)
			sub := newMenu(b)
			sub.AddItem(7, "B", nil)
			m.AddDropdown("Sub", sub)
			return m
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.build(NewMemoryBackend())
			if !errors.Is(m.Err(), ErrDuplicateID) {
				t.Errorf("Err() = %v, want ErrDuplicateID", m.Err())
			}
		})
	}
}

func TestDestroyReleasesTreeOnce(t *testing.T) {
	b := NewMemoryBackend()
	root := newMenu(b)
	sub := newMenu(b)
	sub.AddItem(1, "Item", nil)
	root.AddDropdown("Sub", sub)
	if b.Live() != 2 {
		t.Fatalf("Live() = %d, want 2", b.Live())
	}

	if err := sub.Destroy(); err != nil {
		t.Fatalf("destroying consumed submenu: %v", err)
	}
	if b.Live() != 2 {
		t.Error("consumed submenu was destroyed apart from its parent")
	}
	if err := root.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := root.Destroy(); err != nil {
		t.Fatalf("second Destroy: %v", err)
	}
	if b.Live() != 0 {
		t.Errorf("Live() = %d after Destroy, want 0", b.Live())
	}
	root.AddSeparator()
	if !errors.Is(root.Err(), ErrDestroyed) {
		t.Errorf("builder call after Destroy: Err() = %v", root.Err())
	}
}

type failingBackend struct {
	*MemoryBackend
}

func (failingBackend) AppendSeparator(Handle) error { return errors.New("out of menu memory") }

func TestNativeFailureIsSticky(t *testing.T) {
	m := newMenu(failingBackend{NewMemoryBackend()})
	m.AddSeparator()
	m.AddItem(1, "After", nil)
	if m.Err() == nil {
		t.Fatal("expected error")
	}
	if len(m.Items()) != 0 {
		t.Errorf("items appended after failure: %+v", m.Items())
	}
}

type recordingHost struct {
	shown []Handle
}

func (h *recordingHost) SetMenu(m Handle) error {
	h.shown = append(h.shown, m)
	return nil
}

func TestSlotReplacesMenu(t *testing.T) {
	b := NewMemoryBackend()
	host := &recordingHost{}
	slot := NewSlot(host)

	first := newMenu(b)
	first.AddItem(1, "One", nil)
	second := newMenu(b)
	second.AddItem(1, "One", nil)

	if err := slot.Attach(first); err != nil {
		t.Fatal(err)
	}
	if err := slot.Attach(second); err != nil {
		t.Fatal(err)
	}
	if n, _ := b.Node(first.Handle()); !n.Destroyed {
		t.Error("previous menu not destroyed after replacement")
	}
	if slot.Current() != second {
		t.Error("Current() is not the attached menu")
	}
	if err := slot.Close(); err != nil {
		t.Fatal(err)
	}
	if b.Live() != 0 {
		t.Errorf("Live() = %d after Close, want 0", b.Live())
	}
	want := []Handle{first.Handle(), second.Handle(), 0}
	if len(host.shown) != len(want) {
		t.Fatalf("host saw %v, want %v", host.shown, want)
	}
	for i := range want {
		if host.shown[i] != want[i] {
			t.Errorf("host saw %v, want %v", host.shown, want)
			break
		}
	}
}

func TestSlotRejectsSubmenu(t *testing.T) {
	b := NewMemoryBackend()
	root := newMenu(b)
	sub := newMenu(b)
	root.AddDropdown("Sub", sub)
	if err := NewSlot(nil).Attach(sub); !errors.Is(err, ErrConsumed) {
		t.Errorf("Attach(submenu) = %v, want ErrConsumed", err)
	}
}

type leakyBackend struct {
	*MemoryBackend
}

func (leakyBackend) DestroyMenu(Handle) error { return errors.New("DestroyMenu failed") }

func TestSlotAttachSurvivesFailedRelease(t *testing.T) {
	b := leakyBackend{NewMemoryBackend()}
	slot := NewSlot(&recordingHost{})

	first := newMenu(b)
	first.AddItem(1, "One", nil)
	second := newMenu(b)
	second.AddItem(1, "One", nil)

	if err := slot.Attach(first); err != nil {
		t.Fatal(err)
	}
	err := slot.Attach(second)
	if !errors.Is(err, ErrReleasePrevious) {
		t.Fatalf("Attach() = %v, want ErrReleasePrevious", err)
	}
	if slot.Current() != second {
		t.Error("replacement menu not current after failed release")
	}
	if n, _ := b.Node(second.Handle()); n.Destroyed {
		t.Error("attached menu was destroyed")
	}
}
