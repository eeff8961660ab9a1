// Package httpserver exposes the voting core over a JSON REST API. The
// handlers are thin: every operation calls into the storage accessors
// and maps their sentinel errors to HTTP status codes.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/upvote/internal/metrics"
	"github.com/mesh-intelligence/upvote/internal/sqlite"
	"github.com/mesh-intelligence/upvote/pkg/types"
)

// Server wires the echo engine to the store and the metric collectors.
type Server struct {
	echo   *echo.Echo
	config types.Config
	store  *sqlite.Store

	registry    *prometheus.Registry
	voteMetrics *metrics.VoteMetrics
	httpMetrics *metrics.HTTPMetrics
}

// NewServer creates the API server around an open store.
func NewServer(config types.Config, store *sqlite.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	registry := metrics.NewRegistry()

	srv := &Server{
		echo:        e,
		config:      config,
		store:       store,
		registry:    registry,
		voteMetrics: metrics.NewVoteMetrics(registry),
		httpMetrics: metrics.NewHTTPMetrics(registry),
	}

	srv.registerRoutes()

	return srv
}

// Start listens on the configured port and blocks until shutdown.
func (s *Server) Start() error {
	port := strconv.Itoa(s.config.EffectivePort())
	slog.Info("starting server", "port", port)
	if err := s.echo.Start(":" + port); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// errorJSON writes the error response shape shared by all handlers.
func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}
