package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"markestedt/menukeys/menu"
	"markestedt/menukeys/platform"
	"markestedt/menukeys/storage"
)

type fakeAgent struct {
	snap    MenuSnapshot
	reloads int
	err     error
}

func (a *fakeAgent) Menu() MenuSnapshot { return a.snap }

func (a *fakeAgent) Status() Status {
	return Status{Status: "running", MenuBackend: "memory", AccelBackend: "memory", Accelerators: len(a.snap.Bindings)}
}

func (a *fakeAgent) Reload() error {
	a.reloads++
	return a.err
}

func newTestServer(t *testing.T, db *storage.DB, agent Agent) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(db, agent, 0, nil)
	h, err := s.Handler()
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(func() {
		ts.Close()
		s.Shutdown(context.Background())
	})
	return s, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK && v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestMenuEndpoint(t *testing.T) {
	agent := &fakeAgent{snap: MenuSnapshot{
		Items: []menu.Tree{
			{Text: "File", Items: []menu.Tree{{ID: 1, Text: "Open\tCtrl+O"}}},
			{Separator: true},
			{ID: 2, Text: "About"},
		},
		Bindings: []Binding{{ID: 1, Hotkey: "Ctrl+O"}},
	}}
	_, ts := newTestServer(t, nil, agent)

	var got MenuSnapshot
	if code := getJSON(t, ts.URL+"/api/menu", &got); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(got.Bindings) != 1 || got.Bindings[0].Hotkey != "Ctrl+O" || got.Bindings[0].ID != 1 {
		t.Errorf("bindings = %+v", got.Bindings)
	}
	if len(got.Items) != 3 || got.Items[0].Items[0].Text != "Open\tCtrl+O" || !got.Items[1].Separator {
		t.Errorf("items = %+v", got.Items)
	}
}

func TestJournalEndpointsWithoutStorage(t *testing.T) {
	_, ts := newTestServer(t, nil, &fakeAgent{})
	for _, path := range []string{"/api/events", "/api/stats"} {
		t.Run(path, func(t *testing.T) {
			if code := getJSON(t, ts.URL+path, nil); code != http.StatusServiceUnavailable {
				t.Errorf("status %d, want 503", code)
			}
		})
	}
}

func TestEventsAndStats(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "menukeys.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	for _, e := range []storage.Event{
		{Kind: storage.KindMenu, Source: "accelerator", MenuID: 1},
		{Kind: storage.KindMenu, Source: "tray", MenuID: 1},
		{Kind: storage.KindURL, Source: "url", URL: "menukeys://open"},
	} {
		if err := db.SaveEvent(&e); err != nil {
			t.Fatal(err)
		}
	}
	_, ts := newTestServer(t, db, &fakeAgent{})

	var events struct {
		Events []storage.Event `json:"events"`
		Total  int             `json:"total"`
	}
	if code := getJSON(t, ts.URL+"/api/events?kind=menu&limit=10", &events); code != http.StatusOK {
		t.Fatalf("events status %d", code)
	}
	if events.Total != 2 || len(events.Events) != 2 {
		t.Errorf("got total %d, %d menu events", events.Total, len(events.Events))
	}

	if code := getJSON(t, ts.URL+"/api/events", &events); code != http.StatusOK {
		t.Fatalf("events status %d", code)
	}
	if events.Total != 3 || len(events.Events) != 3 {
		t.Errorf("unfiltered: got total %d, %d events", events.Total, len(events.Events))
	}

	var stats struct {
		Overall storage.OverallStats      `json:"overall"`
		Items   []storage.ActivationStats `json:"items"`
	}
	if code := getJSON(t, ts.URL+"/api/stats?days=1", &stats); code != http.StatusOK {
		t.Fatalf("stats status %d", code)
	}
	if stats.Overall.Activations != 2 || stats.Overall.URLOpens != 1 {
		t.Errorf("overall = %+v", stats.Overall)
	}
	if len(stats.Items) != 1 || stats.Items[0].MenuID != 1 || stats.Items[0].ViaKeyboard != 1 {
		t.Errorf("items = %+v", stats.Items)
	}
}

func TestReload(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusOK},
		{"invalid config", errors.New("menu.items[0]: label is required"), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := &fakeAgent{err: tt.err}
			_, ts := newTestServer(t, nil, agent)

			resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status %d, want %d", resp.StatusCode, tt.want)
			}
			if agent.reloads != 1 {
				t.Errorf("Reload called %d times", agent.reloads)
			}
		})
	}
}

func TestWebSocketReceivesEvents(t *testing.T) {
	s, ts := newTestServer(t, nil, &fakeAgent{})

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// the client registers with the hub after the handshake; repeat until
	// one broadcast arrives
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.BroadcastEvent(platform.Event{Type: platform.MenuActivated, MenuID: 7, Source: "tray"})
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg struct {
		Type MessageType  `json:"type"`
		Data EventMessage `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MessageTypeEvent || msg.Data.Type != "menu" || msg.Data.MenuID != 7 || msg.Data.Source != "tray" {
		t.Errorf("got %+v", msg)
	}
}
