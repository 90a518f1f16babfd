package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// Rebind rewrites a query written with '?' placeholders into the bind style
// of the given database/sql driver name ("pgx" gets $1, $2, ...). Drivers
// sqlx does not know about keep the query unchanged.
func Rebind(driverName, query string) string {
	return sqlx.Rebind(sqlx.BindType(driverName), query)
}

// IsUniqueViolation reports whether err was caused by a UNIQUE or PRIMARY
// KEY constraint, for both Postgres (pgx) and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// modernc sqlite error contains text "UNIQUE constraint failed"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
