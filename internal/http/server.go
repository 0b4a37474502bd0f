// Package http exposes the item service as a JSON API.
package http

import (
	"net/http"
	"time"

	"fintrack/internal/log"
	"fintrack/internal/service"
)

type Server struct {
	svc         *service.ItemService
	statsMonths int
}

// NewServer wires the routes and returns a configured http.Server.
func NewServer(addr string, svc *service.ItemService, statsMonths int, logger *log.Logger) *http.Server {
	s := &Server{svc: svc, statsMonths: statsMonths}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("GET /api/items/{id}", s.handleGetItem)
	mux.HandleFunc("PUT /api/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /api/export.json", s.handleExportJSON)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	handler := log.Middleware(logger.WithComponent("http"))(mux)

	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
