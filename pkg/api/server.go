// Package api serves the container codec over HTTP.
//
// Routes:
//
//	GET  /api/v1/health
//	POST /api/v1/decode            container bytes in, entries and diagnostics out
//	POST /api/v1/encode            interchange JSON in, container bytes out
//	GET  /api/v1/snapshots
//	GET  /api/v1/snapshots/{ref}
//	GET  /api/v1/snapshots/{ref}/search?q=Key^=NpcTalk_&limit=100
//	GET  /metrics
//	GET  /swagger/*                UI, swagger.json and swagger.yaml
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Router builds the HTTP routes for s
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{DiagnosticsHeader, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Post("/decode", s.metrics.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))
		r.Post("/encode", s.metrics.InstrumentHandler("POST", "/api/v1/encode", s.handleEncode))

		r.Get("/snapshots", s.metrics.InstrumentHandler("GET", "/api/v1/snapshots", s.handleListSnapshots))
		r.Get("/snapshots/{ref}", s.metrics.InstrumentHandler("GET", "/api/v1/snapshots/{ref}", s.handleGetSnapshot))
		r.Get("/snapshots/{ref}/search", s.metrics.InstrumentHandler("GET", "/api/v1/snapshots/{ref}/search", s.handleSearchSnapshot))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	return r
}

// Addr returns the listen address for config
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// StartServer serves the API until ctx is canceled, then shuts down gracefully
func StartServer(ctx context.Context, deps Dependencies, config ServerConfig) error {
	server := NewServer(deps, config, NewMetrics())

	httpServer := &http.Server{
		Addr:              config.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", httpServer.Addr, err)
	}

	server.logger.Info("starting localization API server",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("auth", config.APIKey != ""))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	server.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
