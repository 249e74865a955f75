// Monitor is the HTTP/websocket side of the follower: it broadcasts every
// steering command to connected clients and accepts runtime path and
// parameter updates.
package core

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"PurePursuit/internal/model"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Monitor serves the follower's live state over HTTP and websockets.
type Monitor struct {
	Addr     string
	Follower *Follower

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	server  *http.Server
}

// NewMonitor constructs a Monitor for the given follower listening on addr.
func NewMonitor(addr string, f *Follower) *Monitor {
	return &Monitor{Addr: addr, Follower: f, clients: map[*websocket.Conn]bool{}}
}

// Start launches the HTTP server for state, ws and update endpoints.
// This call blocks until the server stops or fails.
func (m *Monitor) Start() {
	m.server = &http.Server{Addr: m.Addr, Handler: m.Handler()}
	log.Printf("monitor is listening on %s", m.Addr)
	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// Stop shuts down the HTTP server.
func (m *Monitor) Stop() {
	if m.server != nil {
		_ = m.server.Close()
	}
}

// Handler returns the route table without starting a server, for tests.
func (m *Monitor) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.handleWS)
	mux.HandleFunc("/api/latest", m.handleLatest)
	mux.HandleFunc("/api/path", m.handlePath)
	mux.HandleFunc("/api/params", m.handleParams)
	return mux
}

// handleWS upgrades HTTP to websocket and registers the client for broadcasts.
func (m *Monitor) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.clients[conn] = true
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.clients, conn)
			m.mu.Unlock()
			if err := conn.Close(); err != nil {
				log.Printf("warning: failed to close websocket: %v", err)
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// Broadcast sends a command line to all connected websocket clients.
func (m *Monitor) Broadcast(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.clients {
		_ = c.WriteMessage(websocket.TextMessage, []byte(line))
	}
}

// handleLatest returns the most recent command and tracking state as JSON.
func (m *Monitor) handleLatest(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Command model.SteeringCommand `json:"command"`
		State   model.TrackingState   `json:"state"`
	}{
		Command: m.Follower.LastCommand(),
		State:   m.Follower.LastState(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("monitor: encode latest err: %v", err)
	}
}

// handlePath accepts a JSON waypoint array and replaces the path wholesale.
func (m *Monitor) handlePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var path model.Path
	if err := json.NewDecoder(r.Body).Decode(&path); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.Follower.SetPath(path)
	w.WriteHeader(http.StatusOK)
}

// handleParams accepts new lookahead parameters, applied between ticks.
func (m *Monitor) handleParams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(m.Follower.Lookahead()); err != nil {
			log.Printf("monitor: encode params err: %v", err)
		}
	case http.MethodPost:
		var cfg model.LookaheadConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := cfg.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m.Follower.SetLookahead(cfg)
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
