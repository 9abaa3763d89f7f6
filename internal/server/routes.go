package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no client cookie required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Picker / embed page
	s.echo.GET("/", s.handleIndex, s.withClientID)

	// Selection API
	s.echo.GET("/api/roster", s.handleRoster, s.withClientID)
	s.echo.GET("/api/selection", s.handleGetSelection, s.withClientID)
	s.echo.POST("/api/selection", s.handlePostSelection, s.withClientID)
	s.echo.DELETE("/api/selection", s.handleDeleteSelection, s.withClientID)

	// Server URL API
	s.echo.GET("/api/server-url", s.handleGetServerURL, s.withClientID)
	s.echo.PUT("/api/server-url", s.handlePutServerURL, s.withClientID)

	// Computed chat URL
	s.echo.GET("/api/chat-url", s.handleChatURL, s.withClientID)
}
