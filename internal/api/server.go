package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tepnology/sam-report/internal/config"
	"github.com/tepnology/sam-report/internal/email"
	"github.com/tepnology/sam-report/internal/sam"
)

// Server is the HTTP front of the report service.
type Server struct {
	handler http.Handler
	server  *http.Server
}

// NewServer wires the full pipeline (SAM fetcher, workbook assembly, email
// dispatcher) behind the report routes.
func NewServer(cfg *config.Config) *Server {
	samClient := sam.NewClient(cfg.SAM)
	fetcher := sam.NewFetcher(samClient, cfg.SAM.Limit)
	dispatcher := email.NewDispatcher(email.NewClient(cfg.Email), cfg.Email.From)

	handlers := NewHandlers(cfg, fetcher, dispatcher)

	return &Server{
		handler: SetupRoutes(handlers, cfg.Report.CronSecret),
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.handler,
		// A full report run can hold the connection for several upstream
		// round-trips plus rate-paced sends, so the write timeout is generous.
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
