package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"markestedt/menukeys/config"
	"markestedt/menukeys/keyboard"
	"markestedt/menukeys/menu"
	"markestedt/menukeys/storage"

	_ "modernc.org/sqlite"
)

const agentConfig = `
[keyboard]
hook = false

[menu]
backend = "memory"
label_style = "windows"
url_scheme = "menukeys"

[[menu.items]]
label = "File"

  [[menu.items.items]]
  id = 1
  label = "New"
  hotkey = "Ctrl+N"

  [[menu.items.items]]
  id = 2
  label = "Lock"
  hotkey = "Win+L"

[[menu.items]]
id = 3
label = "Quit"
hotkey = "Ctrl+Q"

[accelerators]
backend = "memory"

[storage]
enabled = true

[web]
enabled = false
`

const reloadedConfig = `
[menu]
backend = "memory"

[[menu.items]]
id = 5
label = "Refresh"
hotkey = "F5"
`

func newTestAgent(t *testing.T) (*Agent, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(agentConfig), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Storage.Path = filepath.Join(dir, "menukeys.db")

	a, err := NewAgent(cfg, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })
	return a, path
}

func TestAgentInstallsMenu(t *testing.T) {
	a, _ := newTestAgent(t)
	if err := a.rebuild(a.cfg.Menu); err != nil {
		t.Fatal(err)
	}

	snap := a.Menu()
	if len(snap.Items) != 2 || snap.Items[1].Text != "Quit\tCtrl+Q" {
		t.Fatalf("items = %+v", snap.Items)
	}
	// Win+L has no accelerator form
	want := map[int]string{1: "Ctrl+N", 3: "Ctrl+Q"}
	if len(snap.Bindings) != len(want) {
		t.Fatalf("bindings = %+v", snap.Bindings)
	}
	for _, b := range snap.Bindings {
		if want[b.ID] != b.Hotkey {
			t.Errorf("binding %d = %q, want %q", b.ID, b.Hotkey, want[b.ID])
		}
	}
	if st := a.Status(); st.Accelerators != 2 || st.KeyboardHook {
		t.Errorf("status = %+v", st)
	}
}

func TestAgentTranslatesKeys(t *testing.T) {
	a, _ := newTestAgent(t)
	if err := a.rebuild(a.cfg.Menu); err != nil {
		t.Fatal(err)
	}

	a.handleKey(keyboard.KeyEvent{Key: keyboard.KeyN, Modifiers: keyboard.ModCtrl, State: keyboard.Pressed})
	a.handleKey(keyboard.KeyEvent{Key: keyboard.KeyN, Modifiers: keyboard.ModCtrl, State: keyboard.Released})
	a.handleKey(keyboard.KeyEvent{Key: keyboard.KeyN, State: keyboard.Pressed})

	events, err := a.db.GetEvents(storage.KindMenu, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].MenuID != 1 || events[0].Source != "accelerator" {
		t.Errorf("journal = %+v", events)
	}
	if n, _ := a.db.GetEventCount(""); n != 1 {
		t.Errorf("key events journaled without log_keys: %d events", n)
	}
}

func TestAgentReload(t *testing.T) {
	a, path := newTestAgent(t)
	if err := a.rebuild(a.cfg.Menu); err != nil {
		t.Fatal(err)
	}
	first := a.slot.Current()

	if err := os.WriteFile(path, []byte(reloadedConfig), 0644); err != nil {
		t.Fatal(err)
	}
	if err := a.Reload(); err != nil {
		t.Fatal(err)
	}

	snap := a.Menu()
	if len(snap.Bindings) != 1 || snap.Bindings[0].ID != 5 || snap.Bindings[0].Hotkey != "F5" {
		t.Errorf("bindings after reload = %+v", snap.Bindings)
	}
	if a.slot.Current() == first {
		t.Error("menu not replaced")
	}
	if _, ok := a.registry.Translate(keyboard.KeyEvent{Key: keyboard.KeyN, Modifiers: keyboard.ModCtrl, State: keyboard.Pressed}); ok {
		t.Error("accelerator of the replaced menu still active")
	}

	if err := os.WriteFile(path, []byte("[[menu.items]]\nlabel = \"\"\nid = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := a.Reload(); err == nil {
		t.Fatal("invalid menu accepted")
	}
	if got := a.Menu(); len(got.Bindings) != 1 || got.Bindings[0].ID != 5 {
		t.Errorf("failed reload changed the installed menu: %+v", got)
	}
}

func TestAgentRunJournalsActivations(t *testing.T) {
	a, _ := newTestAgent(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	a.URLs().Dispatch([]string{"menukeys://item/3"})
	a.activator("tray")(3)

	deadline := time.Now().Add(5 * time.Second)
	for {
		n, err := a.db.GetEventCount("")
		if err != nil {
			t.Fatal(err)
		}
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("got %d journaled events, want 2", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	urls, err := a.db.GetEvents(storage.KindURL, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 1 || urls[0].URL != "menukeys://item/3" {
		t.Errorf("url events = %+v", urls)
	}
}

type leakyMenus struct {
	*menu.MemoryBackend
}

func (leakyMenus) DestroyMenu(menu.Handle) error { return errors.New("DestroyMenu failed") }

func TestAgentRebuildKeepsAttachedMenuWhenReleaseFails(t *testing.T) {
	a, _ := newTestAgent(t)
	a.menus = leakyMenus{menu.NewMemoryBackend()}
	a.slot = menu.NewSlot(nil)
	if err := a.rebuild(a.cfg.Menu); err != nil {
		t.Fatal(err)
	}

	mc := a.cfg.Menu
	mc.Items = []config.ItemConfig{{ID: 5, Label: "Refresh", Hotkey: "F5"}}
	if err := a.rebuild(mc); err != nil {
		t.Fatalf("rebuild after failed release: %v", err)
	}

	current := a.slot.Current()
	if current == nil || current.IDs() != 1 {
		t.Fatal("new menu not attached")
	}
	if id, ok := a.registry.Translate(keyboard.KeyEvent{Key: keyboard.KeyF5, State: keyboard.Pressed}); !ok || id != 5 {
		t.Errorf("Translate(F5) = %d, %v; new table not installed", id, ok)
	}
	if snap := a.Menu(); len(snap.Bindings) != 1 || snap.Bindings[0].ID != 5 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestAgentPrunesJournalAtStartup(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{"retention disabled", 0, 2},
		{"old event pruned", 30, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "menukeys.db")
			db, err := storage.Open(dbPath)
			if err != nil {
				t.Fatal(err)
			}
			for _, id := range []int{1, 3} {
				if err := db.SaveEvent(&storage.Event{Kind: storage.KindMenu, Source: "tray", MenuID: id}); err != nil {
					t.Fatal(err)
				}
			}
			db.Close()

			conn, err := sql.Open("sqlite", dbPath)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := conn.Exec(`UPDATE events SET timestamp = datetime('now', '-40 days') WHERE menu_id = 1`); err != nil {
				t.Fatal(err)
			}
			conn.Close()

			cfg, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
			if err != nil {
				t.Fatal(err)
			}
			cfg.Keyboard.Hook = false
			cfg.Menu.Backend = config.MenuMemory
			cfg.Accelerators.Backend = config.AccelMemory
			cfg.Web.Enabled = false
			cfg.Storage.Path = dbPath
			cfg.Storage.RetentionDays = tt.days

			a, err := NewAgent(cfg, "", nil)
			if err != nil {
				t.Fatal(err)
			}
			defer a.Close()

			if n, _ := a.db.GetEventCount(""); n != tt.want {
				t.Errorf("%d events after startup, want %d", n, tt.want)
			}
		})
	}
}
