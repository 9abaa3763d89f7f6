package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/srichitra/communicator-teams-app-sub001/internal/config"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	apperrors "github.com/srichitra/communicator-teams-app-sub001/internal/errors"
)

// Cookie lifetime matches the selection TTL so the client identity does not
// outlive the selection it keys.
const cookieMaxAgeDays = 30

type Server struct {
	echo           *echo.Echo
	config         *config.Config
	app            domain.AppService
	sessionStore   *sessions.CookieStore
	pickerTemplate *template.Template
	startTime      time.Time

	// nil when the corresponding backend is not configured
	redisClient *goredis.Client
	pool        *pgxpool.Pool
}

// NewServer wires the echo instance. redisClient and pool may be nil; the
// readiness probe only checks backends that are actually in use.
func NewServer(cfg *config.Config, app domain.AppService, redisClient *goredis.Client, pool *pgxpool.Pool) (*Server, error) {
	pickerTmpl, err := template.ParseFiles("web/templates/picker.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse picker template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// requestMetrics wraps the error middleware so it observes the status
	// actually written for failed requests.
	e.Use(requestMetrics)
	e.Use(apperrors.Middleware())

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * cookieMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:           e,
		config:         cfg,
		app:            app,
		sessionStore:   sessionStore,
		pickerTemplate: pickerTmpl,
		startTime:      time.Now(),
		redisClient:    redisClient,
		pool:           pool,
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
