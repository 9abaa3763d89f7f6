package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/srichitra/communicator-teams-app-sub001/internal/app"
	"github.com/srichitra/communicator-teams-app-sub001/internal/config"
	"github.com/srichitra/communicator-teams-app-sub001/internal/database"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	"github.com/srichitra/communicator-teams-app-sub001/internal/logging"
	"github.com/srichitra/communicator-teams-app-sub001/internal/memory"
	"github.com/srichitra/communicator-teams-app-sub001/internal/redis"
	"github.com/srichitra/communicator-teams-app-sub001/internal/roster"
	"github.com/srichitra/communicator-teams-app-sub001/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func loadRosterEntries(cfg *config.Config) []domain.RosterEntry {
	if cfg.RosterFile == "" {
		return roster.Default()
	}
	entries, err := roster.LoadFile(cfg.RosterFile)
	if err != nil {
		slog.Error("Failed to load roster file", "path", cfg.RosterFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Roster loaded from file", "path", cfg.RosterFile, "entries", len(entries))
	return entries
}

func setupDB(cfg *config.Config, seed []domain.RosterEntry) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool, seed); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	entries := loadRosterEntries(cfg)

	// Roster: PostgreSQL when configured, compiled-in/file roster otherwise.
	var rosterRepo domain.RosterRepository
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool = setupDB(cfg, entries)
		defer pool.Close()
		rosterRepo = database.NewRosterRepo(pool)
	} else {
		rosterRepo = roster.NewStaticRepo(entries)
	}

	// Selection storage: Redis when configured, process memory otherwise.
	var selections domain.SelectionStore
	var serverURLs domain.ServerURLStore
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient = setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()
		selections = redis.NewSelectionRepo(redisClient, clock)
		serverURLs = redis.NewServerURLRepo(redisClient)
	} else {
		slog.Warn("REDIS_URL not set, selections will not survive a restart")
		selections = memory.NewSelectionStore(clock)
		serverURLs = memory.NewServerURLStore()
	}

	appSvc := app.NewService(rosterRepo, selections, serverURLs, cfg.DefaultServerURL, clock)

	srv, err := server.NewServer(cfg, appSvc, redisClient, pool)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
