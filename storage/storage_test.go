package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "menukeys.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *DB) {
	t.Helper()
	events := []Event{
		{Kind: KindKey, Source: "keyboard", KeyName: "N", ScanCode: 0x31, Modifiers: "ctrl", Pressed: true},
		{Kind: KindKey, Source: "keyboard", KeyName: "N", ScanCode: 0x31, Modifiers: "ctrl"},
		{Kind: KindMenu, Source: "accelerator", MenuID: 1},
		{Kind: KindMenu, Source: "tray", MenuID: 1},
		{Kind: KindMenu, Source: "global", MenuID: 20},
		{Kind: KindURL, Source: "url", URL: "menukeys://item/1"},
	}
	for i := range events {
		if err := db.SaveEvent(&events[i]); err != nil {
			t.Fatal(err)
		}
		if events[i].ID == 0 {
			t.Fatal("SaveEvent did not assign an id")
		}
	}
}

func TestEventsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	all, err := db.GetEvents("", 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 6 {
		t.Fatalf("got %d events, want 6", len(all))
	}
	if all[0].Kind != KindURL || all[0].URL != "menukeys://item/1" {
		t.Errorf("newest event = %+v", all[0])
	}
	if all[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	last := all[len(all)-1]
	if last.KeyName != "N" || last.ScanCode != 0x31 || !last.Pressed || last.Modifiers != "ctrl" {
		t.Errorf("oldest event = %+v", last)
	}

	menus, err := db.GetEvents(KindMenu, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(menus) != 2 || menus[0].Source != "tray" || menus[1].Source != "accelerator" {
		t.Errorf("paged menu events = %+v", menus)
	}

}

func TestEventCountByKind(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	tests := []struct {
		kind string
		want int
	}{
		{"", 6},
		{KindKey, 2},
		{KindMenu, 3},
		{KindURL, 1},
		{"unknown", 0},
	}
	for _, tt := range tests {
		t.Run("kind="+tt.kind, func(t *testing.T) {
			count, err := db.GetEventCount(tt.kind)
			if err != nil || count != tt.want {
				t.Errorf("GetEventCount(%q) = %d, %v, want %d", tt.kind, count, err, tt.want)
			}
		})
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	overall, err := db.GetOverallStats(7)
	if err != nil {
		t.Fatal(err)
	}
	want := OverallStats{TotalEvents: 6, KeyEvents: 2, KeyPresses: 1, Activations: 3, URLOpens: 1, DistinctItems: 2}
	if *overall != want {
		t.Errorf("GetOverallStats() = %+v, want %+v", *overall, want)
	}

	activations, err := db.GetActivationStats(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(activations) != 2 {
		t.Fatalf("got %d items, want 2", len(activations))
	}
	top := activations[0]
	if top.MenuID != 1 || top.Activations != 2 || top.ViaKeyboard != 1 || top.LastSeen == "" {
		t.Errorf("top item = %+v", top)
	}

	sources, err := db.GetSourceStats(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 3 {
		t.Errorf("GetSourceStats() = %+v", sources)
	}

	daily, err := db.GetDailyStats(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(daily) != 1 || daily[0].TotalEvents != 6 || daily[0].Activations != 3 {
		t.Errorf("GetDailyStats() = %+v", daily)
	}
}

func TestEmptyStats(t *testing.T) {
	db := openTestDB(t)
	overall, err := db.GetOverallStats(30)
	if err != nil {
		t.Fatal(err)
	}
	if *overall != (OverallStats{}) {
		t.Errorf("empty journal stats = %+v", *overall)
	}
	if n, err := db.PruneEvents(30); err != nil || n != 0 {
		t.Errorf("PruneEvents() = %d, %v", n, err)
	}
}

func TestPruneEvents(t *testing.T) {
	tests := []struct {
		name       string
		days       int
		wantPruned int64
		wantLeft   int
	}{
		{"keeps recent events", 60, 0, 6},
		{"drops events past retention", 30, 2, 4},
		{"drops all but today", 1, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			seed(t, db)
			// age the key events by 45 days and the menu events of the
			// tray and global sources by 10
			if _, err := db.conn.Exec(`UPDATE events SET timestamp = datetime('now', '-45 days') WHERE kind = ?`, KindKey); err != nil {
				t.Fatal(err)
			}
			if _, err := db.conn.Exec(`UPDATE events SET timestamp = datetime('now', '-10 days') WHERE source IN ('tray', 'global')`); err != nil {
				t.Fatal(err)
			}

			n, err := db.PruneEvents(tt.days)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.wantPruned {
				t.Errorf("PruneEvents(%d) = %d, want %d", tt.days, n, tt.wantPruned)
			}
			if left, _ := db.GetEventCount(""); left != tt.wantLeft {
				t.Errorf("%d events left, want %d", left, tt.wantLeft)
			}
		})
	}
}
