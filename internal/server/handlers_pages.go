package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srichitra/communicator-teams-app-sub001/internal/chaturl"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	apperrors "github.com/srichitra/communicator-teams-app-sub001/internal/errors"
)

// handleIndex renders the single page: the chat embed when a selection
// resolves, the roster picker otherwise.
func (s *Server) handleIndex(c echo.Context) error {
	ctx := c.Request().Context()
	id := clientID(c)

	sel, err := s.app.ResolveSelection(ctx, id)
	if err != nil {
		return apperrors.InternalError("failed to resolve selection", err)
	}

	serverURL := s.app.ServerURL(ctx, id)

	data := map[string]any{
		"Ready":     sel != nil,
		"ServerURL": serverURL,
	}

	if sel != nil {
		data["DisplayName"] = sel.Name
		data["Role"] = sel.Role
		data["ChatURL"] = chaturl.Build(serverURL, sel.UserID, sel.Name)
	} else {
		entries, err := s.app.Roster(ctx)
		if err != nil {
			return apperrors.InternalError("failed to load roster", err)
		}
		data["Roster"] = entries
	}

	return renderTemplate(c, s.pickerTemplate, data)
}

func (s *Server) directChatURL(c echo.Context, sel *domain.Selection) string {
	return chaturl.Build(s.app.ServerURL(c.Request().Context(), clientID(c)), sel.UserID, sel.Name)
}

func renderTemplate(c echo.Context, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return apperrors.InternalError("failed to render template", err)
	}
	return c.HTML(http.StatusOK, buf.String())
}
