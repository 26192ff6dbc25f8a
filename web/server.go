package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"markestedt/menukeys/keyboard"
	"markestedt/menukeys/menu"
	"markestedt/menukeys/platform"
	"markestedt/menukeys/storage"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the server only listens on localhost
	},
}

// Binding is an installed accelerator as shown by the dashboard
type Binding struct {
	ID     int    `json:"id"`
	Hotkey string `json:"hotkey"`
}

// MenuSnapshot is the installed menu and its accelerators
type MenuSnapshot struct {
	Items    []menu.Tree `json:"items"`
	Bindings []Binding   `json:"bindings"`
}

// Status describes the running agent
type Status struct {
	Status       string    `json:"status"`
	MenuBackend  string    `json:"menu_backend"`
	AccelBackend string    `json:"accel_backend"`
	Accelerators int       `json:"accelerators"`
	KeyboardHook bool      `json:"keyboard_hook"`
	Started      time.Time `json:"started"`
}

// Agent is what the server needs from the running agent
type Agent interface {
	Menu() MenuSnapshot
	Status() Status
	Reload() error
}

// Server represents the web server
type Server struct {
	db     *storage.DB
	agent  Agent
	port   int
	hub    *Hub
	logger *slog.Logger
	http   *http.Server
}

// NewServer creates a new web server. db may be nil when storage is
// disabled; the journal endpoints then answer 503.
func NewServer(db *storage.DB, agent Agent, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:     db,
		agent:  agent,
		port:   port,
		hub:    hub,
		logger: logger,
	}
}

// Handler returns the HTTP handler serving the API, the WebSocket stream and
// the dashboard
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/menu", s.handleMenu)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/reload", s.handleReload)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	return mux, nil
}

// Start starts the web server and blocks until Shutdown
func (s *Server) Start() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.http = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("Starting web server", "port", s.port, "url", fmt.Sprintf("http://localhost:%d", s.port))

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server and disconnects WebSocket clients
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// BroadcastStatus broadcasts a status update to all connected clients
func (s *Server) BroadcastStatus(status string) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Status: status},
	})
}

// BroadcastMenu tells clients the installed menu changed
func (s *Server) BroadcastMenu(snap MenuSnapshot) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeMenu,
		Data: snap,
	})
}

// BroadcastEvent broadcasts one event of the portable event stream
func (s *Server) BroadcastEvent(ev platform.Event) {
	msg := EventMessage{
		Type:      ev.Type.String(),
		Source:    ev.Source,
		MenuID:    ev.MenuID,
		URL:       ev.URL,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if ev.Type == platform.KeyInput {
		msg.Key = ev.Key.Key.String()
		msg.ScanCode = uint32(ev.Key.ScanCode)
		msg.Modifiers = ev.Key.Modifiers.String()
		msg.Pressed = ev.Key.State == keyboard.Pressed
	}
	s.hub.BroadcastMessage(Message{Type: MessageTypeEvent, Data: msg})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	select {
	case client.hub.register <- client:
	case <-client.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
