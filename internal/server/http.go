// Package server exposes the optional live status/symbol stream
// (spec.md §1's "optional TCP streaming of the output"), supplemented
// from the original C implementation's dropped -n/-p networking flags
// and reimplemented over HTTP+WebSocket rather than raw TCP.
package server

import (
	"log"
	"net/http"
)

// Server is the HTTP+WebSocket monitor server.
type Server struct {
	mux     *http.ServeMux
	handler *Handlers
	addr    string
}

// NewServer creates a new monitor server.
func NewServer(addr string, handler *Handlers) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		handler: handler,
		addr:    addr,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/status", s.handler.HandleStatus)
	s.mux.HandleFunc("/api/devices", s.handler.HandleDevices)
	s.mux.HandleFunc("/ws", s.handler.HandleWebSocket)
}

// Start runs the monitor server until the process exits or
// ListenAndServe fails.
func (s *Server) Start() error {
	log.Printf("monitor listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
