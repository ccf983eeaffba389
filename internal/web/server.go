// Package web provides the HTTP live view of a panel test run.
package web

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sweeney/panel-test/internal/panel"
	"github.com/sweeney/panel-test/internal/status"
)

// Server serves the status page and catalog lookups over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	cat        *panel.Catalog
}

// New creates a Server that reads state from the given tracker and answers
// catalog lookups from cat.
func New(addr string, tracker *status.Tracker, cat *panel.Catalog) *Server {
	s := &Server{tracker: tracker, cat: cat}
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/index.html", s.handleIndex).Methods("GET")
	r.HandleFunc("/index.json", s.handleJSON).Methods("GET")

	c := r.PathPrefix("/catalog").Subrouter()
	c.HandleFunc("/leds/{row:[0-9]+}/{col:[0-9]+}", s.handleLEDByAddress).Methods("GET")
	c.HandleFunc("/leds/panel/{row:[0-9]+}/{col:[0-9]+}", s.handleLEDByPosition).Methods("GET")
	c.HandleFunc("/switches/{row:[0-9]+}/{col:[0-9]+}", s.handleSwitchByAddress).Methods("GET")
	c.HandleFunc("/switches/panel/{row:[0-9]+}/{col:[0-9]+}", s.handleSwitchByPosition).Methods("GET")
	c.HandleFunc("/digits/{number:[0-9]+}", s.handleDigit).Methods("GET")
	return r
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap, s.cat)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}
