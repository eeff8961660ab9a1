package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mesh-intelligence/upvote/internal/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.setupCORSMiddleware())
	s.echo.Use(s.httpMetrics.Middleware())

	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/stats", s.handleStats)
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))

	s.echo.POST("/api/features", s.handleCreateFeature)
	s.echo.GET("/api/features", s.handleListFeatures)
	s.echo.GET("/api/features/:id", s.handleGetFeature)
	s.echo.DELETE("/api/features/:id", s.handleDeleteFeature)

	s.echo.POST("/api/features/:id/vote", s.handleCastVote)
	s.echo.DELETE("/api/features/:id/vote", s.handleRetractVote)
	s.echo.GET("/api/features/:id/votes", s.handleFeatureVotes)
	s.echo.GET("/api/users/:user_id/votes", s.handleUserVotes)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("request", attrs...)
			return nil
		},
	})
}

func (s *Server) setupCORSMiddleware() echo.MiddlewareFunc {
	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	})
}
