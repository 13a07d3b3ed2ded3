package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dernasherbrezon/lrptdemod/internal/audio"
	"github.com/dernasherbrezon/lrptdemod/internal/demod"
)

// StatusSnapshot is the JSON shape served at /api/status and pushed as
// a KindStatus wire frame, mirroring the demod.Driver's atomically
// published observability scalars (spec.md §5).
type StatusSnapshot struct {
	Done   int64   `json:"done"`
	Size   int64   `json:"size"`
	Freq   float64 `json:"freq"`
	Gain   float64 `json:"gain"`
	Locked bool    `json:"locked"`
	Active bool    `json:"active"`
}

// Handlers holds the HTTP API handlers.
type Handlers struct {
	driver *demod.Driver
	wsHub  *WSHub
}

// NewHandlers creates new API handlers bound to a running driver.
func NewHandlers(driver *demod.Driver) *Handlers {
	return &Handlers{
		driver: driver,
		wsHub:  NewWSHub(),
	}
}

// Snapshot reads the driver's current observability state.
func (h *Handlers) Snapshot() StatusSnapshot {
	return StatusSnapshot{
		Done:   h.driver.Done(),
		Size:   h.driver.Size(),
		Freq:   h.driver.Freq(),
		Gain:   h.driver.Gain(),
		Locked: h.driver.Locked(),
		Active: h.driver.Status(),
	}
}

// PushStatus broadcasts the current snapshot to all connected monitor
// clients. Intended to be called once per publish cycle alongside the
// driver's own chunk-boundary publish.
func (h *Handlers) PushStatus() {
	data, err := json.Marshal(h.Snapshot())
	if err != nil {
		log.Printf("marshal status: %v", err)
		return
	}
	h.wsHub.BroadcastStatus(data)
}

// PushSymbols broadcasts a chunk of soft-symbol bytes to all connected
// monitor clients. Installed as the driver's SymbolSink when -p is set.
func (h *Handlers) PushSymbols(chunk []byte) {
	h.wsHub.BroadcastSymbols(chunk)
}

// HandleWebSocket upgrades a connection into the monitor stream.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("monitor upgrade error: %v", err)
		return
	}

	h.wsHub.AddClient(conn)

	go func() {
		defer h.wsHub.RemoveClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// HandleStatus serves a single JSON status snapshot.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Snapshot())
}

// HandleDevices lists available audio output devices (for the
// optional live monitor; there is no input side to report).
func (h *Handlers) HandleDevices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	devices, err := audio.ListDevices()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"devices": devices,
	})
}
