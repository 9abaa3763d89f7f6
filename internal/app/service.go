package app

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/srichitra/communicator-teams-app-sub001/internal/chaturl"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	"github.com/srichitra/communicator-teams-app-sub001/internal/logging"
	"github.com/srichitra/communicator-teams-app-sub001/internal/metrics"
)

// Service implements domain.AppService.
type Service struct {
	roster           domain.RosterRepository
	selections       domain.SelectionStore
	serverURLs       domain.ServerURLStore
	defaultServerURL string
	clock            clockwork.Clock
}

// NewService creates the application layer service.
func NewService(roster domain.RosterRepository, selections domain.SelectionStore, serverURLs domain.ServerURLStore, defaultServerURL string, clock clockwork.Clock) *Service {
	return &Service{
		roster:           roster,
		selections:       selections,
		serverURLs:       serverURLs,
		defaultServerURL: chaturl.Normalize(defaultServerURL),
		clock:            clock,
	}
}

// Roster returns the selectable identities.
func (s *Service) Roster(ctx context.Context) ([]domain.RosterEntry, error) {
	return s.roster.List(ctx)
}

// ResolveSelection returns the client's remembered selection, or nil when
// none exists. A selection is valid only if its id is still in the roster
// and it is younger than SelectionTTL; anything else is discarded and the
// stored value cleared. Storage failures degrade to "no stored value".
func (s *Service) ResolveSelection(ctx context.Context, clientID string) (*domain.Selection, error) {
	sel, err := s.selections.Load(ctx, clientID)
	if err != nil {
		logging.WithClient(clientID).Warn("Selection load failed, treating as absent", "error", err)
		metrics.StorageFailures.WithLabelValues("selection", "load").Inc()
		return nil, nil
	}
	if sel == nil {
		return nil, nil
	}

	// The store already enforces expiry, but a memory store handed a stale
	// entry across a clock injection boundary must not leak through.
	if sel.Expired(s.clock.Now()) {
		metrics.SelectionsTotal.WithLabelValues("expired").Inc()
		s.clearQuietly(ctx, clientID)
		return nil, nil
	}

	if _, err := s.roster.GetByID(ctx, sel.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotInRoster) {
			logging.WithClient(clientID).Info("Stored selection no longer in roster, discarding", "user_id", sel.UserID)
			metrics.SelectionsTotal.WithLabelValues("not_in_roster").Inc()
			s.clearQuietly(ctx, clientID)
			return nil, nil
		}
		return nil, err
	}

	return sel, nil
}

// Select confirms a roster identity for the client. The selection is
// timestamped now and persisted only when remember is true.
func (s *Service) Select(ctx context.Context, clientID string, userID int, remember bool) (*domain.Selection, error) {
	entry, err := s.roster.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sel := domain.Selection{
		UserID:    entry.ID,
		Name:      entry.Name,
		Role:      entry.Role,
		Timestamp: s.clock.Now(),
	}

	if remember {
		if err := s.selections.Save(ctx, clientID, sel); err != nil {
			logging.WithClient(clientID).Warn("Selection save failed, continuing without persistence", "error", err)
			metrics.StorageFailures.WithLabelValues("selection", "save").Inc()
		} else {
			metrics.SelectionsTotal.WithLabelValues("remembered").Inc()
		}
	} else {
		metrics.SelectionsTotal.WithLabelValues("confirmed").Inc()
	}

	return &sel, nil
}

// ClearSelection forgets the client's identity ("change user").
func (s *Service) ClearSelection(ctx context.Context, clientID string) error {
	if err := s.selections.Clear(ctx, clientID); err != nil {
		logging.WithClient(clientID).Warn("Selection clear failed", "error", err)
		metrics.StorageFailures.WithLabelValues("selection", "clear").Inc()
		return nil
	}
	metrics.SelectionsTotal.WithLabelValues("cleared").Inc()
	return nil
}

// ServerURL returns the client's chat server URL, normalized, falling back
// to the configured default.
func (s *Service) ServerURL(ctx context.Context, clientID string) string {
	stored, err := s.serverURLs.Load(ctx, clientID)
	if err != nil {
		logging.WithClient(clientID).Warn("Server URL load failed, using default", "error", err)
		metrics.StorageFailures.WithLabelValues("server_url", "load").Inc()
		return s.defaultServerURL
	}
	if stored == "" {
		return s.defaultServerURL
	}
	return chaturl.Normalize(stored)
}

// SetServerURL persists the normalized form of raw and returns it.
func (s *Service) SetServerURL(ctx context.Context, clientID, raw string) (string, error) {
	normalized := chaturl.Normalize(raw)
	if normalized == "" {
		return "", domain.ErrInvalidServerURL
	}

	if err := s.serverURLs.Save(ctx, clientID, normalized); err != nil {
		logging.WithClient(clientID).Warn("Server URL save failed", "error", err)
		metrics.StorageFailures.WithLabelValues("server_url", "save").Inc()
	}
	return normalized, nil
}

// ChatURL computes the iframe target for the client's current selection.
func (s *Service) ChatURL(ctx context.Context, clientID string) (string, error) {
	sel, err := s.ResolveSelection(ctx, clientID)
	if err != nil {
		return "", err
	}
	if sel == nil {
		return "", domain.ErrNoSelection
	}

	return chaturl.Build(s.ServerURL(ctx, clientID), sel.UserID, sel.Name), nil
}

func (s *Service) clearQuietly(ctx context.Context, clientID string) {
	if err := s.selections.Clear(ctx, clientID); err != nil {
		logging.WithClient(clientID).Warn("Failed to clear stale selection", "error", err)
		metrics.StorageFailures.WithLabelValues("selection", "clear").Inc()
	}
}
