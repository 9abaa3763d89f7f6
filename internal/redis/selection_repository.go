package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
)

const (
	selectionKeyPrefix = "teams_selected_user:"
	serverURLKeyPrefix = "teams_server_url:"
)

// storedSelection is the persisted JSON blob. Field names and the epoch-ms
// timestamp match the blob the browser client kept in local storage.
type storedSelection struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Timestamp int64  `json:"timestamp"`
}

// SelectionRepo implements domain.SelectionStore backed by Redis. Entries
// carry the 30-day TTL on the key and a timestamp check at load, so both a
// lapsed TTL and a stale blob lead to the same outcome: absent, key removed.
type SelectionRepo struct {
	rdb   *goredis.Client
	clock clockwork.Clock
}

func NewSelectionRepo(rdb *goredis.Client, clock clockwork.Clock) *SelectionRepo {
	return &SelectionRepo{rdb: rdb, clock: clock}
}

func selectionKey(clientID string) string {
	return selectionKeyPrefix + clientID
}

func (r *SelectionRepo) Load(ctx context.Context, clientID string) (*domain.Selection, error) {
	key := selectionKey(clientID)

	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}

	var stored storedSelection
	if err := json.Unmarshal(data, &stored); err != nil {
		// Unparseable blob is as good as absent. Drop it.
		slog.Warn("Discarding unparseable selection blob", "client_id", clientID, "error", err)
		r.deleteKey(ctx, key)
		return nil, nil
	}

	sel := domain.Selection{
		UserID:    stored.ID,
		Name:      stored.Name,
		Role:      stored.Role,
		Timestamp: time.UnixMilli(stored.Timestamp),
	}
	if sel.Expired(r.clock.Now()) {
		r.deleteKey(ctx, key)
		return nil, nil
	}

	return &sel, nil
}

func (r *SelectionRepo) Save(ctx context.Context, clientID string, sel domain.Selection) error {
	blob, err := json.Marshal(storedSelection{
		ID:        sel.UserID,
		Name:      sel.Name,
		Role:      sel.Role,
		Timestamp: sel.Timestamp.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	if err := r.rdb.Set(ctx, selectionKey(clientID), blob, domain.SelectionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

func (r *SelectionRepo) Clear(ctx context.Context, clientID string) error {
	if err := r.rdb.Del(ctx, selectionKey(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

func (r *SelectionRepo) deleteKey(ctx context.Context, key string) {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("Failed to delete stale selection key", "key", key, "error", err)
	}
}

// ServerURLRepo implements domain.ServerURLStore backed by Redis. The server
// URL persists independently of the identity selection, with no TTL.
type ServerURLRepo struct {
	rdb *goredis.Client
}

func NewServerURLRepo(rdb *goredis.Client) *ServerURLRepo {
	return &ServerURLRepo{rdb: rdb}
}

func (r *ServerURLRepo) Load(ctx context.Context, clientID string) (string, error) {
	url, err := r.rdb.Get(ctx, serverURLKeyPrefix+clientID).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load server url: %w", err)
	}
	return url, nil
}

func (r *ServerURLRepo) Save(ctx context.Context, clientID string, url string) error {
	if err := r.rdb.Set(ctx, serverURLKeyPrefix+clientID, url, 0).Err(); err != nil {
		return fmt.Errorf("failed to save server url: %w", err)
	}
	return nil
}
