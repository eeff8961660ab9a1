package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/upvote/pkg/upvote"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": upvote.Version,
	})
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.store.Stats()
	if err != nil {
		slog.Error("failed to get stats", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to get statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

// handleIndex describes the API surface, mirroring the shape clients
// discover the service with.
func (s *Server) handleIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Feature Voting System API",
		"version": upvote.Version,
		"endpoints": map[string]any{
			"features": map[string]string{
				"GET /api/features":           "Get all features with vote counts",
				"POST /api/features":          "Create a new feature",
				"GET /api/features/:id":       "Get a specific feature",
				"DELETE /api/features/:id":    "Delete a feature",
				"GET /api/features/:id/votes": "Get votes for a feature",
			},
			"votes": map[string]string{
				"POST /api/features/:id/vote":   "Vote for a feature",
				"DELETE /api/features/:id/vote": "Remove a vote from a feature",
			},
			"users": map[string]string{
				"GET /api/users/:user_id/votes": "Get a user's votes",
			},
			"service": map[string]string{
				"GET /api/health": "Health check",
				"GET /api/stats":  "Store statistics",
				"GET /metrics":    "Prometheus metrics",
			},
		},
	})
}
