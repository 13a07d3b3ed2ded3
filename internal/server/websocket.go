package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dernasherbrezon/lrptdemod/internal/wire"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local/LAN monitoring tool, not public-facing
	},
}

// WSHub fans out wire.Frame broadcasts (status snapshots and soft-symbol
// chunks) to every connected monitor client.
type WSHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewWSHub creates a new WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// AddClient registers a new WebSocket connection.
func (h *WSHub) AddClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	log.Printf("monitor client connected (%d total)", len(h.clients))
}

// RemoveClient removes a WebSocket connection.
func (h *WSHub) RemoveClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
	log.Printf("monitor client disconnected (%d remaining)", len(h.clients))
}

// BroadcastFrame pushes an encoded wire.Frame to every connected client
// as a single binary message.
func (h *WSHub) BroadcastFrame(f *wire.Frame) {
	data := f.Encode()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			log.Printf("monitor write error: %v", err)
			go h.RemoveClient(conn)
		}
	}
}

// BroadcastStatus encodes a status snapshot as a KindStatus frame and
// broadcasts it.
func (h *WSHub) BroadcastStatus(payload []byte) {
	h.BroadcastFrame(&wire.Frame{Kind: wire.KindStatus, Payload: payload})
}

// BroadcastSymbols encodes a chunk of soft-symbol bytes as a
// KindSymbols frame and broadcasts it.
func (h *WSHub) BroadcastSymbols(chunk []byte) {
	h.BroadcastFrame(&wire.Frame{Kind: wire.KindSymbols, Payload: chunk})
}
