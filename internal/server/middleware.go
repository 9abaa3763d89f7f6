package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/srichitra/communicator-teams-app-sub001/internal/metrics"
)

const (
	sessionName        = "communicator_client"
	sessionKeyClientID = "client_id"
)

// withClientID ensures every request carries a stable client identifier in
// the session cookie. This is the Go-side analog of per-browser local
// storage: all stores key on it. Cookie failures degrade to an ephemeral id
// so the request still works, it just won't be remembered.
func (s *Server) withClientID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			// Tampered or undecodable cookie: Get returns a fresh session
			// alongside the error, so fall through and overwrite it.
			slog.Warn("Failed to decode client session, issuing a new one", "error", err)
		}

		clientID, ok := session.Values[sessionKeyClientID].(string)
		if !ok || clientID == "" {
			clientID = uuid.NewString()
			session.Values[sessionKeyClientID] = clientID
			if err := session.Save(c.Request(), c.Response().Writer); err != nil {
				slog.Warn("Failed to save client session, using ephemeral id", "error", err)
			}
		}

		c.Set("clientID", clientID)
		return next(c)
	}
}

// clientID returns the identifier set by withClientID.
func clientID(c echo.Context) string {
	id, _ := c.Get("clientID").(string)
	return id
}

// requestMetrics records request duration per route and status.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		route := c.Path()
		status := strconv.Itoa(c.Response().Status)
		metrics.HTTPRequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
		return err
	}
}
