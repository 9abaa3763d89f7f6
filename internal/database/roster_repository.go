package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	"golang.org/x/sync/singleflight"
)

// rosterColumns must match the Scan order in scanEntry.
const rosterColumns = `id, name, role`

// RosterRepo implements domain.RosterRepository backed by PostgreSQL.
// Concurrent List calls are collapsed with singleflight; the roster changes
// rarely and every page load asks for it.
type RosterRepo struct {
	pool  *pgxpool.Pool
	group singleflight.Group
}

func NewRosterRepo(pool *pgxpool.Pool) *RosterRepo {
	return &RosterRepo{pool: pool}
}

func scanEntry(row pgx.Row) (*domain.RosterEntry, error) {
	var e domain.RosterEntry
	if err := row.Scan(&e.ID, &e.Name, &e.Role); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *RosterRepo) List(ctx context.Context) ([]domain.RosterEntry, error) {
	result, err, _ := r.group.Do("list", func() (any, error) {
		// The flight serves every collapsed caller, so it must not die with
		// whichever caller happened to start it.
		ctx := context.WithoutCancel(ctx)
		rows, err := r.pool.Query(ctx, `SELECT `+rosterColumns+` FROM roster ORDER BY name`)
		if err != nil {
			return nil, fmt.Errorf("failed to query roster: %w", err)
		}
		defer rows.Close()

		var entries []domain.RosterEntry
		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return nil, fmt.Errorf("failed to scan roster entry: %w", err)
			}
			entries = append(entries, *e)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read roster rows: %w", err)
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.RosterEntry), nil
}

func (r *RosterRepo) GetByID(ctx context.Context, id int) (*domain.RosterEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+rosterColumns+` FROM roster WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotInRoster
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load roster entry: %w", err)
	}
	return e, nil
}
