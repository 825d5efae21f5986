package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/asheem/orbital/internal/control"
	"github.com/asheem/orbital/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// gestureBroadcastInterval paces the gesture feed at roughly the detection
// pipeline's active frame rate. Pushing faster only repeats snapshots.
const gestureBroadcastInterval = 66 * time.Millisecond

// GestureFeedHandler broadcasts confirmed hand states via WebSocket.
type GestureFeedHandler struct {
	source  control.Source
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewGestureFeedHandler creates a new GestureFeedHandler reading from the
// given snapshot source.
func NewGestureFeedHandler(source control.Source) *GestureFeedHandler {
	h := &GestureFeedHandler{
		source:  source,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *GestureFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

type gestureMessage struct {
	Type      string            `json:"type"`
	State     gesture.HandState `json:"state"`
	Timestamp int64             `json:"timestamp"`
}

// broadcast sends the latest confirmed hand state to all connected clients.
func (h *GestureFeedHandler) broadcast() {
	ticker := time.NewTicker(gestureBroadcastInterval)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		state, ok := h.source.Latest()
		if !ok {
			continue
		}

		msg, err := json.Marshal(gestureMessage{
			Type:      "gesture",
			State:     state,
			Timestamp: time.Now().UnixMilli(),
		})
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
