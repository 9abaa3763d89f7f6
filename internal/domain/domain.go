package domain

import (
	"context"
	"time"
)

// SelectionTTL is how long a remembered identity stays valid. Selections
// older than this are discarded on load.
const SelectionTTL = 30 * 24 * time.Hour

// --- Model types ---

// RosterEntry is one selectable identity. The roster is configuration data,
// immutable at runtime.
type RosterEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Selection is a remembered identity choice for one client.
type Selection struct {
	UserID    int
	Name      string
	Role      string
	Timestamp time.Time
}

// Expired reports whether the selection is older than SelectionTTL at now.
func (s Selection) Expired(now time.Time) bool {
	return now.Sub(s.Timestamp) >= SelectionTTL
}

// --- Interfaces ---

// SelectionStore persists per-client identity selections. Load returns
// (nil, nil) when no valid selection exists; implementations remove
// expired entries as a side effect of loading them.
type SelectionStore interface {
	Load(ctx context.Context, clientID string) (*Selection, error)
	Save(ctx context.Context, clientID string, sel Selection) error
	Clear(ctx context.Context, clientID string) error
}

// ServerURLStore persists the chat server URL per client, independent of
// the identity selection. Load returns "" when nothing is stored.
type ServerURLStore interface {
	Load(ctx context.Context, clientID string) (string, error)
	Save(ctx context.Context, clientID string, url string) error
}

// RosterRepository serves the identity roster.
type RosterRepository interface {
	List(ctx context.Context) ([]RosterEntry, error)
	GetByID(ctx context.Context, id int) (*RosterEntry, error)
}

// AppService is the application layer contract — handlers route all
// operations through here.
type AppService interface {
	Roster(ctx context.Context) ([]RosterEntry, error)
	ResolveSelection(ctx context.Context, clientID string) (*Selection, error)
	Select(ctx context.Context, clientID string, userID int, remember bool) (*Selection, error)
	ClearSelection(ctx context.Context, clientID string) error
	ServerURL(ctx context.Context, clientID string) string
	SetServerURL(ctx context.Context, clientID, raw string) (string, error)
	ChatURL(ctx context.Context, clientID string) (string, error)
}
