package scene

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Local viewer only
	},
}

// BroadcastInterval is the scene state push rate (~30 FPS).
const BroadcastInterval = 33 * time.Millisecond

// RemoteScene couples a Globe with the browser renderer. It implements
// Scene by delegating to the Globe and pushes camera state frames to every
// connected renderer client over WebSocket.
type RemoteScene struct {
	*Globe

	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	once    sync.Once
}

// NewRemoteScene creates a RemoteScene around the given Globe and starts
// the broadcast loop.
func NewRemoteScene(globe *Globe) *RemoteScene {
	s := &RemoteScene{
		Globe:   globe,
		clients: make(map[*websocket.Conn]bool),
		stopCh:  make(chan struct{}),
	}
	go s.broadcast()
	return s
}

// ServeHTTP handles renderer WebSocket connections. The first message sent
// to a new client is the current state so the frontend can draw
// immediately instead of waiting for the next tick.
func (s *RemoteScene) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("scene websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	if msg, err := s.stateMessage(); err == nil {
		conn.WriteMessage(websocket.TextMessage, msg)
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	// The renderer can nudge the view: drag gestures in the browser come
	// back as pan messages
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		s.handleClientMessage(data)
	}
}

// clientMessage is what the renderer may send upstream.
type clientMessage struct {
	Type string  `json:"type"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
}

func (s *RemoteScene) handleClientMessage(data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	switch msg.Type {
	case "pan":
		s.MovePosition(msg.DX, msg.DY)
	case "center":
		s.ResetPosition()
	}
}

// ClientCount returns the number of connected renderer clients.
func (s *RemoteScene) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close stops the broadcast loop.
func (s *RemoteScene) Close() {
	s.once.Do(func() { close(s.stopCh) })
}

func (s *RemoteScene) stateMessage() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":      "scene",
		"state":     s.Globe.Snapshot(),
		"timestamp": time.Now().UnixMilli(),
	})
}

// broadcast ticks the globe and pushes state to all clients. The globe is
// ticked even with no clients connected so auto-rotation and pan easing
// keep advancing while the viewer reloads.
func (s *RemoteScene) broadcast() {
	ticker := time.NewTicker(BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Globe.Tick()

			s.mu.RLock()
			if len(s.clients) == 0 {
				s.mu.RUnlock()
				continue
			}
			s.mu.RUnlock()

			msg, err := s.stateMessage()
			if err != nil {
				continue
			}

			s.mu.RLock()
			for conn := range s.clients {
				conn.WriteMessage(websocket.TextMessage, msg)
			}
			s.mu.RUnlock()
		}
	}
}
