package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"markestedt/polishclip/config"
	"markestedt/polishclip/storage"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Local-only dashboard
	},
}

// State is the agent-visible dashboard state. The configuration snapshot is
// immutable after startup, so unlike the session fields it is never updated.
type State struct {
	Status   string
	Position int
	Total    int
}

// Server serves the read-only local dashboard
type Server struct {
	db     *storage.DB
	config *config.Config
	port   int
	hub    *Hub

	mu    sync.RWMutex
	state State
}

// NewServer creates a new web server
func NewServer(db *storage.DB, cfg *config.Config, port int) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:     db,
		config: cfg,
		port:   port,
		hub:    hub,
		state:  State{Status: "idle"},
	}
}

// Start starts the web server (blocking)
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	addr := fmt.Sprintf("localhost:%d", s.port)
	slog.Info("Starting web server", "url", fmt.Sprintf("http://%s", addr))

	return http.ListenAndServe(addr, mux)
}

// SetState updates the dashboard state and notifies connected clients
func (s *Server) SetState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Status: state.Status},
	})
}

// BroadcastSuggestion notifies connected clients about a new or cycled
// suggestion
func (s *Server) BroadcastSuggestion(position, total, inputChars int, cycled bool) {
	s.mu.Lock()
	s.state.Position = position
	s.state.Total = total
	s.mu.Unlock()

	s.hub.BroadcastMessage(Message{
		Type: MessageTypeSuggestion,
		Data: SuggestionMessage{
			Position:   position,
			Total:      total,
			InputChars: inputChars,
			Cycled:     cycled,
		},
	})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
