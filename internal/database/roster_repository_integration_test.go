package database

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
	"github.com/srichitra/communicator-teams-app-sub001/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDatabaseURL string
	pgContainer     testcontainers.Container
)

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	pgContainer, err = tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("communicator"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(time.Minute)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	testDatabaseURL, err = pgContainer.(*tcpostgres.PostgresContainer).ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get postgres connection string: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
	}
	os.Exit(code)
}

func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, testDatabaseURL)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS roster`)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, pool, roster.Default()))

	t.Cleanup(pool.Close)
	return pool
}

func TestRosterRepo_List_SortedByName(t *testing.T) {
	repo := NewRosterRepo(setupTestPool(t))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, len(roster.Default()))

	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Name, entries[i].Name)
	}
}

func TestRosterRepo_List_SurvivesCallerCancel(t *testing.T) {
	repo := NewRosterRepo(setupTestPool(t))

	// The shared flight runs detached, so a caller whose context is already
	// canceled must not poison the result for piggybacked callers.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, len(roster.Default()))
}

func TestRosterRepo_GetByID(t *testing.T) {
	repo := NewRosterRepo(setupTestPool(t))

	entry, err := repo.GetByID(context.Background(), 2010)
	require.NoError(t, err)
	assert.Equal(t, "HUSSEMAN, KENNETE", entry.Name)
	assert.Equal(t, "Provider", entry.Role)
}

func TestRosterRepo_GetByID_Unknown(t *testing.T) {
	repo := NewRosterRepo(setupTestPool(t))

	_, err := repo.GetByID(context.Background(), 424242)
	assert.True(t, errors.Is(err, domain.ErrUserNotInRoster))
}

func TestRunMigrations_SeedsOnlyOnce(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	// Remove a row, then re-run migrations: the table is non-empty so the
	// seed must not run again.
	_, err := pool.Exec(ctx, `DELETE FROM roster WHERE id = 2010`)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, pool, roster.Default()))

	repo := NewRosterRepo(pool)
	_, err = repo.GetByID(ctx, 2010)
	assert.True(t, errors.Is(err, domain.ErrUserNotInRoster))
}
