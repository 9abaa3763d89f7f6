package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	apperrors "github.com/srichitra/communicator-teams-app-sub001/internal/errors"
)

type selectionResponse struct {
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Timestamp int64  `json:"timestamp"`
	ChatURL   string `json:"chat_url,omitempty"`
}

func toSelectionResponse(sel *domain.Selection, chatURL string) selectionResponse {
	return selectionResponse{
		UserID:    sel.UserID,
		Name:      sel.Name,
		Role:      sel.Role,
		Timestamp: sel.Timestamp.UnixMilli(),
		ChatURL:   chatURL,
	}
}

func (s *Server) handleRoster(c echo.Context) error {
	entries, err := s.app.Roster(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to load roster", err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleGetSelection(c echo.Context) error {
	ctx := c.Request().Context()

	sel, err := s.app.ResolveSelection(ctx, clientID(c))
	if err != nil {
		return apperrors.InternalError("failed to resolve selection", err)
	}
	if sel == nil {
		return apperrors.NotFoundError("no selection")
	}

	return c.JSON(http.StatusOK, toSelectionResponse(sel, ""))
}

type postSelectionRequest struct {
	UserID   int  `json:"user_id"`
	Remember bool `json:"remember"`
}

func (s *Server) handlePostSelection(c echo.Context) error {
	var req postSelectionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.UserID == 0 {
		return apperrors.ValidationError("user_id is required")
	}

	ctx := c.Request().Context()
	id := clientID(c)

	sel, err := s.app.Select(ctx, id, req.UserID, req.Remember)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotInRoster) {
			return apperrors.ValidationError("user not in roster").WithField("user_id", req.UserID)
		}
		return apperrors.InternalError("failed to confirm selection", err)
	}

	// The URL must describe the selection just confirmed, not whatever an
	// earlier remember may have left stored for this client.
	return c.JSON(http.StatusCreated, toSelectionResponse(sel, s.directChatURL(c, sel)))
}

func (s *Server) handleDeleteSelection(c echo.Context) error {
	if err := s.app.ClearSelection(c.Request().Context(), clientID(c)); err != nil {
		return apperrors.InternalError("failed to clear selection", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type serverURLResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleGetServerURL(c echo.Context) error {
	url := s.app.ServerURL(c.Request().Context(), clientID(c))
	return c.JSON(http.StatusOK, serverURLResponse{URL: url})
}

type putServerURLRequest struct {
	URL string `json:"url"`
}

func (s *Server) handlePutServerURL(c echo.Context) error {
	var req putServerURLRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	normalized, err := s.app.SetServerURL(c.Request().Context(), clientID(c), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidServerURL) {
			return apperrors.ValidationError("url must not be empty")
		}
		return apperrors.InternalError("failed to save server url", err)
	}

	return c.JSON(http.StatusOK, serverURLResponse{URL: normalized})
}

type chatURLResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleChatURL(c echo.Context) error {
	url, err := s.app.ChatURL(c.Request().Context(), clientID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNoSelection) {
			return apperrors.ConflictError("no selection to build chat url for")
		}
		return apperrors.InternalError("failed to build chat url", err)
	}
	return c.JSON(http.StatusOK, chatURLResponse{URL: url})
}
