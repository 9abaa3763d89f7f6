package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	"github.com/srichitra/communicator-teams-app-sub001/internal/memory"
	"github.com/srichitra/communicator-teams-app-sub001/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClient = "client-a"

func newTestService(clock clockwork.Clock) (*Service, *memory.SelectionStore) {
	selections := memory.NewSelectionStore(clock)
	return NewService(
		roster.NewStaticRepo(roster.Default()),
		selections,
		memory.NewServerURLStore(),
		"https://x.test",
		clock,
	), selections
}

// --- failing store doubles ---

type failingSelectionStore struct{}

func (failingSelectionStore) Load(context.Context, string) (*domain.Selection, error) {
	return nil, errors.New("storage disabled")
}
func (failingSelectionStore) Save(context.Context, string, domain.Selection) error {
	return errors.New("quota exceeded")
}
func (failingSelectionStore) Clear(context.Context, string) error {
	return errors.New("storage disabled")
}

type failingServerURLStore struct{}

func (failingServerURLStore) Load(context.Context, string) (string, error) {
	return "", errors.New("storage disabled")
}
func (failingServerURLStore) Save(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

// --- Select ---

func TestSelect_RememberPersists(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc, _ := newTestService(clock)
	ctx := context.Background()

	sel, err := svc.Select(ctx, testClient, 2010, true)
	require.NoError(t, err)
	assert.Equal(t, 2010, sel.UserID)
	assert.Equal(t, "HUSSEMAN, KENNETE", sel.Name)
	assert.Equal(t, clock.Now(), sel.Timestamp)

	resolved, err := svc.ResolveSelection(ctx, testClient)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, 2010, resolved.UserID)
}

func TestSelect_NoRememberDoesNotPersist(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())
	ctx := context.Background()

	sel, err := svc.Select(ctx, testClient, 2010, false)
	require.NoError(t, err)
	require.NotNil(t, sel)

	resolved, err := svc.ResolveSelection(ctx, testClient)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestSelect_UnknownID(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())

	_, err := svc.Select(context.Background(), testClient, 9999, true)
	assert.True(t, errors.Is(err, domain.ErrUserNotInRoster))
}

func TestSelect_SaveFailureStillReturnsSelection(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := NewService(roster.NewStaticRepo(roster.Default()), failingSelectionStore{}, memory.NewServerURLStore(), "https://x.test", clock)

	sel, err := svc.Select(context.Background(), testClient, 2010, true)
	require.NoError(t, err)
	assert.Equal(t, 2010, sel.UserID)
}

// --- ResolveSelection ---

func TestResolveSelection_Expired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc, selections := newTestService(clock)
	ctx := context.Background()

	_, err := svc.Select(ctx, testClient, 2010, true)
	require.NoError(t, err)

	clock.Advance(domain.SelectionTTL + time.Minute)

	resolved, err := svc.ResolveSelection(ctx, testClient)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Store was cleared as a side effect.
	stored, err := selections.Load(ctx, testClient)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestResolveSelection_NotInRoster(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc, selections := newTestService(clock)
	ctx := context.Background()

	// A blob whose id was removed from the roster since it was stored.
	stale := domain.Selection{UserID: 1234, Name: "GONE, SOMEBODY", Timestamp: clock.Now()}
	require.NoError(t, selections.Save(ctx, testClient, stale))

	resolved, err := svc.ResolveSelection(ctx, testClient)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	stored, err := selections.Load(ctx, testClient)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestResolveSelection_StorageFailureDegradesToAbsent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := NewService(roster.NewStaticRepo(roster.Default()), failingSelectionStore{}, memory.NewServerURLStore(), "https://x.test", clock)

	resolved, err := svc.ResolveSelection(context.Background(), testClient)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

// --- ClearSelection ---

func TestClearSelection(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())
	ctx := context.Background()

	_, err := svc.Select(ctx, testClient, 2010, true)
	require.NoError(t, err)
	require.NoError(t, svc.ClearSelection(ctx, testClient))

	resolved, err := svc.ResolveSelection(ctx, testClient)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestClearSelection_StorageFailureSwallowed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := NewService(roster.NewStaticRepo(roster.Default()), failingSelectionStore{}, memory.NewServerURLStore(), "https://x.test", clock)

	assert.NoError(t, svc.ClearSelection(context.Background(), testClient))
}

// --- Server URL ---

func TestServerURL_Default(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())

	assert.Equal(t, "https://x.test", svc.ServerURL(context.Background(), testClient))
}

func TestServerURL_DefaultIsNormalized(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := NewService(roster.NewStaticRepo(roster.Default()), memory.NewSelectionStore(clock), memory.NewServerURLStore(), "x.test///", clock)

	assert.Equal(t, "https://x.test", svc.ServerURL(context.Background(), testClient))
}

func TestSetServerURL_PersistsNormalizedForm(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())
	ctx := context.Background()

	normalized, err := svc.SetServerURL(ctx, testClient, "example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", normalized)

	assert.Equal(t, "https://example.com", svc.ServerURL(ctx, testClient))
}

func TestSetServerURL_Empty(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())

	_, err := svc.SetServerURL(context.Background(), testClient, "   ")
	assert.True(t, errors.Is(err, domain.ErrInvalidServerURL))
}

func TestServerURL_StorageFailureFallsBackToDefault(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := NewService(roster.NewStaticRepo(roster.Default()), memory.NewSelectionStore(clock), failingServerURLStore{}, "https://x.test", clock)

	assert.Equal(t, "https://x.test", svc.ServerURL(context.Background(), testClient))
}

// --- ChatURL ---

func TestChatURL(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())
	ctx := context.Background()

	_, err := svc.Select(ctx, testClient, 2010, true)
	require.NoError(t, err)

	url, err := svc.ChatURL(ctx, testClient)
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/Teams?userId=2010&displayName=HUSSEMAN%2C%20KENNETE&apiUrl=https%3A%2F%2Fx.test", url)
}

func TestChatURL_NoSelection(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())

	_, err := svc.ChatURL(context.Background(), testClient)
	assert.True(t, errors.Is(err, domain.ErrNoSelection))
}

func TestChatURL_UsesStoredServerURL(t *testing.T) {
	svc, _ := newTestService(clockwork.NewFakeClock())
	ctx := context.Background()

	_, err := svc.SetServerURL(ctx, testClient, "chat.example.org/")
	require.NoError(t, err)
	_, err = svc.Select(ctx, testClient, 2013, true)
	require.NoError(t, err)

	url, err := svc.ChatURL(ctx, testClient)
	require.NoError(t, err)
	assert.Contains(t, url, "https://chat.example.org/Teams?userId=2013")
	assert.Contains(t, url, "apiUrl=https%3A%2F%2Fchat.example.org")
}
