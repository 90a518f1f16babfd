// Package repomanager provides a concrete RepositoryManager for the
// supported SQL backends, wiring together repository constructors and
// database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// goose dialect per database/sql driver name.
var dialects = map[string]string{
	DriverPostgres: "pgx",
	DriverSQLite:   "sqlite3",
}

// SQLRepositoryManager vends repository implementations for one
// database/sql driver and exposes a schema migration hook.
type SQLRepositoryManager struct {
	driverName string
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.driverName)
}

// Tokens returns a tokens.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Tokens(db dbx.DBTX) tokens.Repository {
	return tokens.NewSQLRepository(db, m.driverName)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the driver's
// dialect and runs them against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialects[m.driverName]); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, migrations.Dir(m.driverName)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for driverName,
// which must be DriverPostgres or DriverSQLite.
func NewSQLRepositoryManager(driverName string) (RepositoryManager, error) {
	if _, ok := dialects[driverName]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
	return &SQLRepositoryManager{driverName: driverName}, nil
}

// OpenDB opens and pings a database for driverName. SQLite gets a single
// connection so writers are serialized.
func OpenDB(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	if _, ok := dialects[driverName]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if driverName == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
