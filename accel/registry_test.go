package accel

import (
	"errors"
	"sync"
	"testing"

	"markestedt/menukeys/hotkey"
	"markestedt/menukeys/keyboard"
	"markestedt/menukeys/menu"
)

func hk(mods keyboard.ModifiersState, key keyboard.SymbolicKey) *hotkey.Hotkey {
	h := hotkey.New(mods, key)
	return &h
}

// buildMenu returns File{New Ctrl+N, Open Ctrl+O} and Edit{Copy Ctrl+C,
// View{Zoom Ctrl+Shift+Z}} on a memory backend.
func buildMenu(b menu.Backend) *menu.Menu {
	root := menu.New(b)
	file := menu.New(b)
	file.AddItem(1, "New", hk(keyboard.ModCtrl, keyboard.KeyN))
	file.AddItem(2, "Open", hk(keyboard.ModCtrl, keyboard.KeyO))
	root.AddDropdown("File", file)

	edit := menu.New(b)
	edit.AddItem(10, "Copy", hk(keyboard.ModCtrl, keyboard.KeyC))
	view := menu.New(b)
	view.AddItem(20, "Zoom", hk(keyboard.ModCtrl|keyboard.ModShift, keyboard.KeyZ))
	edit.AddSeparator()
	edit.AddDropdown("View", view)
	root.AddDropdown("Edit", edit)
	return root
}

func TestCompileReachesNestedItems(t *testing.T) {
	p := NewMemoryPlatform()
	r := NewRegistry(p, nil)
	table, err := r.Compile(buildMenu(menu.NewMemoryBackend()))
	if err != nil {
		t.Fatal(err)
	}

	got := map[uint16]bool{}
	for _, e := range table.Entries() {
		got[e.Cmd] = true
	}
	for _, id := range []uint16{1, 2, 10, 20} {
		if !got[id] {
			t.Errorf("no entry for id %d", id)
		}
	}
	if table.Len() != 4 {
		t.Errorf("Len() = %d, want 4", table.Len())
	}
	native, ok := p.Entries(table.Handle())
	if !ok || len(native) != 4 {
		t.Errorf("native table holds %d entries, want 4", len(native))
	}
}

func TestCompileDropsUnmappable(t *testing.T) {
	build := func(key keyboard.SymbolicKey) *menu.Menu {
		m := menu.New(menu.NewMemoryBackend())
		m.AddItem(1, "Open", hk(keyboard.ModCtrl, keyboard.KeyO))
		m.AddItem(2, "Other", hk(keyboard.ModCtrl, key))
		return m
	}
	r := NewRegistry(NewMemoryPlatform(), nil)

	mappable, err := r.Compile(build(keyboard.KeyF2))
	if err != nil {
		t.Fatal(err)
	}
	unmappable, err := r.Compile(build(keyboard.KeyCompose))
	if err != nil {
		t.Fatal(err)
	}
	if mappable.Len()-unmappable.Len() != 1 {
		t.Errorf("entry counts %d and %d, want a difference of exactly one", mappable.Len(), unmappable.Len())
	}
}

func TestCompileFiltering(t *testing.T) {
	m := menu.New(menu.NewMemoryBackend())
	m.AddItem(1, "First", hk(keyboard.ModCtrl, keyboard.KeyQ))
	m.AddItem(2, "Second", hk(keyboard.ModCtrl, keyboard.KeyQ))
	m.AddItem(70000, "Wide", hk(keyboard.ModCtrl, keyboard.KeyW))
	m.AddItem(3, "Logo", hk(keyboard.ModLogo, keyboard.KeyE))

	table, err := NewRegistry(NewMemoryPlatform(), nil).Compile(m)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1: %+v", table.Len(), table.Entries())
	}
	if id, ok := table.Lookup(hotkey.New(keyboard.ModCtrl, keyboard.KeyQ)); !ok || id != 1 {
		t.Errorf("Lookup(Ctrl+Q) = %d, %v, want first binding", id, ok)
	}
	e := table.Entries()[0]
	if e.Flags != hotkey.FVirtKey|hotkey.FControl || e.Key != 'Q' {
		t.Errorf("entry = %+v", e)
	}
	if h, ok := e.Hotkey(); !ok || h != hotkey.New(keyboard.ModCtrl, keyboard.KeyQ) {
		t.Errorf("Entry.Hotkey() = %v, %v", h, ok)
	}
}

func TestCompileRejectsBrokenMenu(t *testing.T) {
	m := menu.New(menu.NewMemoryBackend())
	m.AddItem(1, "A", nil)
	m.AddItem(1, "B", nil)
	if _, err := NewRegistry(NewMemoryPlatform(), nil).Compile(m); !errors.Is(err, menu.ErrDuplicateID) {
		t.Errorf("Compile() error = %v, want ErrDuplicateID", err)
	}
}

func TestCompileEmptyMenu(t *testing.T) {
	p := NewMemoryPlatform()
	table, err := NewRegistry(p, nil).Compile(menu.New(menu.NewMemoryBackend()))
	if err != nil {
		t.Fatal(err)
	}
	if table.Handle() != 0 || p.Live() != 0 {
		t.Error("empty table created a native object")
	}
	if err := table.Destroy(); err != nil {
		t.Error(err)
	}
}

func TestTablesAreIndependent(t *testing.T) {
	p := NewMemoryPlatform()
	r := NewRegistry(p, nil)
	m := buildMenu(menu.NewMemoryBackend())

	a, err := r.Compile(m)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Compile(m)
	if err != nil {
		t.Fatal(err)
	}
	if a.Handle() == b.Handle() {
		t.Fatal("two compiles share a native handle")
	}
	if err := a.Destroy(); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Entries(b.Handle()); !ok {
		t.Error("destroying one table released the other")
	}
	if err := a.Destroy(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("second Destroy() = %v, want ErrDestroyed", err)
	}
	if err := b.Destroy(); err != nil {
		t.Fatal(err)
	}
	if created, destroyed := p.Stats(); created != 2 || destroyed != 2 {
		t.Errorf("created %d destroyed %d, want 2 and 2", created, destroyed)
	}
}

func TestInstallDestroysAfterSwap(t *testing.T) {
	p := NewMemoryPlatform()
	r := NewRegistry(p, nil)
	m := buildMenu(menu.NewMemoryBackend())

	first, _ := r.Compile(m)
	second, _ := r.Compile(m)

	var activeAtDestroy *Table
	var destroyedHandle TableHandle
	p.OnDestroy = func(h TableHandle) {
		destroyedHandle = h
		activeAtDestroy = r.Active()
	}

	if err := r.Install(first); err != nil {
		t.Fatal(err)
	}
	if destroyedHandle != 0 {
		t.Fatal("first install destroyed a table")
	}
	if err := r.Install(second); err != nil {
		t.Fatal(err)
	}
	if destroyedHandle != first.Handle() {
		t.Errorf("destroyed handle %d, want %d", destroyedHandle, first.Handle())
	}
	if activeAtDestroy != second {
		t.Error("old table destroyed before the new one was active")
	}
	if err := r.Install(first); !errors.Is(err, ErrDestroyed) {
		t.Errorf("reinstalling destroyed table: %v", err)
	}

	p.OnDestroy = nil
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if p.Live() != 0 {
		t.Errorf("Live() = %d after Close, want 0", p.Live())
	}
}

func TestTranslate(t *testing.T) {
	r := NewRegistry(NewMemoryPlatform(), nil)
	ev := keyboard.KeyEvent{Key: keyboard.KeyZ, Modifiers: keyboard.ModCtrl | keyboard.ModShift, State: keyboard.Pressed}
	if _, ok := r.Translate(ev); ok {
		t.Fatal("translated without an active table")
	}

	table, err := r.Compile(buildMenu(menu.NewMemoryBackend()))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Install(table); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		ev     keyboard.KeyEvent
		wantID int
		wantOK bool
	}{
		{"nested binding", ev, 20, true},
		{"released", keyboard.KeyEvent{Key: keyboard.KeyN, Modifiers: keyboard.ModCtrl, State: keyboard.Released}, 0, false},
		{"extra modifier", keyboard.KeyEvent{Key: keyboard.KeyN, Modifiers: keyboard.ModCtrl | keyboard.ModAlt, State: keyboard.Pressed}, 0, false},
		{"no symbolic key", keyboard.KeyEvent{ScanCode: 0x59, Modifiers: keyboard.ModCtrl, State: keyboard.Pressed}, 0, false},
		{"top level", keyboard.KeyEvent{Key: keyboard.KeyO, Modifiers: keyboard.ModCtrl, State: keyboard.Pressed}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := r.Translate(tt.ev)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("Translate() = %d, %v, want %d, %v", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestConcurrentInstallAndTranslate(t *testing.T) {
	p := NewMemoryPlatform()
	r := NewRegistry(p, nil)
	m := buildMenu(menu.NewMemoryBackend())
	ev := keyboard.KeyEvent{Key: keyboard.KeyC, Modifiers: keyboard.ModCtrl, State: keyboard.Pressed}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			r.WithActive(func(table *Table) {
				if table != nil && table.Destroyed() {
					t.Error("active table observed after destruction")
				}
			})
			r.Translate(ev)
		}
	}()

	for i := 0; i < 50; i++ {
		table, err := r.Compile(m)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Install(table); err != nil {
			t.Fatal(err)
		}
	}
	close(stop)
	wg.Wait()

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if created, destroyed := p.Stats(); created != 50 || destroyed != 50 {
		t.Errorf("created %d destroyed %d, want 50 and 50", created, destroyed)
	}
}
