package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/timex"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	clock  *timex.ManualClock
	cfg    *config.Config
	tokens *TokenService
	users  *UserService
}

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := repomanager.OpenDB(ctx, repomanager.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.NewSQLRepositoryManager(repomanager.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(ctx, db))

	return db, rm
}

func newFixture(t *testing.T, reuse bool, opts ...TokenServiceOption) *fixture {
	t.Helper()
	db, rm := newTestDB(t)

	cfg := &config.Config{
		TokenValidityDuration: 10 * time.Second,
		ReuseValidToken:       reuse,
	}
	clock := timex.NewManualClock(t0)

	return &fixture{
		db:     db,
		rm:     rm,
		clock:  clock,
		cfg:    cfg,
		tokens: NewTokenService(db, rm, clock, cfg, opts...),
		users:  NewUserService(db, rm, clock),
	}
}

// mustUser registers username with password "password" and returns its ID.
func (f *fixture) mustUser(t *testing.T, username string) string {
	t.Helper()
	u, err := f.users.Register(context.Background(), username, "password")
	require.NoError(t, err)
	return u.ID
}
