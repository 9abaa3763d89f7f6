package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
)

// Connect opens a pgx pool and verifies the connection.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// RunMigrations creates the roster schema and seeds it from the configured
// roster when the table is empty.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, seed []domain.RosterEntry) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS roster (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_roster_name ON roster(name)`,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM roster`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count roster rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, e := range seed {
		_, err := pool.Exec(ctx, `
			INSERT INTO roster (id, name, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING
		`, e.ID, e.Name, e.Role)
		if err != nil {
			return fmt.Errorf("failed to seed roster entry %d: %w", e.ID, err)
		}
	}

	slog.Info("Roster table seeded", "entries", len(seed))
	return nil
}
