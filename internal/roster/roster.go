// Package roster holds the static identity roster. The roster is
// configuration data, not logic: a compiled-in default, optionally
// overridden by a JSON file.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
)

// Default returns the built-in roster.
func Default() []domain.RosterEntry {
	return []domain.RosterEntry{
		{ID: 2004, Name: "ALBRIGHT, MARCELLA", Role: "Provider"},
		{ID: 2007, Name: "DELACRUZ, RAMONA", Role: "Care Manager"},
		{ID: 2010, Name: "HUSSEMAN, KENNETE", Role: "Provider"},
		{ID: 2013, Name: "OKAFOR, CHIDI", Role: "Nurse"},
		{ID: 2016, Name: "PARTRIDGE, LIONEL", Role: "Scheduler"},
		{ID: 2019, Name: "VANTERPOOL, DESIREE", Role: "Nurse"},
	}
}

// LoadFile reads a roster from a JSON file (array of {id, name, role}).
func LoadFile(path string) ([]domain.RosterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var entries []domain.RosterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("roster file %s contains no entries", path)
	}
	for _, e := range entries {
		if e.ID <= 0 || e.Name == "" {
			return nil, fmt.Errorf("roster file %s has an entry without id or name", path)
		}
	}
	return entries, nil
}

// StaticRepo implements domain.RosterRepository over an in-memory roster.
type StaticRepo struct {
	entries []domain.RosterEntry
	byID    map[int]domain.RosterEntry
}

func NewStaticRepo(entries []domain.RosterEntry) *StaticRepo {
	byID := make(map[int]domain.RosterEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return &StaticRepo{entries: entries, byID: byID}
}

func (r *StaticRepo) List(_ context.Context) ([]domain.RosterEntry, error) {
	out := make([]domain.RosterEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *StaticRepo) GetByID(_ context.Context, id int) (*domain.RosterEntry, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotInRoster
	}
	return &e, nil
}
