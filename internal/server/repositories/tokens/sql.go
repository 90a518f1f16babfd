package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// SQLRepository implements Repository over dbx.DBTX (satisfied by *sql.DB
// or *sql.Tx). Queries are rebound to the placeholder style of driverName.
type SQLRepository struct {
	db         dbx.DBTX
	driverName string
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, driverName string) *SQLRepository {
	return &SQLRepository{db: db, driverName: driverName}
}

func (r *SQLRepository) q(query string) string {
	return dbx.Rebind(r.driverName, query)
}

func (r *SQLRepository) Create(ctx context.Context, token *models.Token) error {
	query := `
		INSERT INTO tokens (key, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`
	var expires sql.NullTime
	if token.Expires != nil {
		expires = sql.NullTime{Time: *token.Expires, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, r.q(query), token.Key, token.UserID, token.CreatedAt, expires); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *SQLRepository) FindByKey(ctx context.Context, key string) (*models.Token, error) {
	query := `
		SELECT key, user_id, created_at, expires_at
		FROM tokens
		WHERE key = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, r.q(query), key))
}

func (r *SQLRepository) FindByUser(ctx context.Context, userID string) (*models.Token, error) {
	query := `
		SELECT key, user_id, created_at, expires_at
		FROM tokens
		WHERE user_id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, r.q(query), userID))
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.Token, error) {
	var (
		t       models.Token
		expires sql.NullTime
	)
	if err := row.Scan(&t.Key, &t.UserID, &t.CreatedAt, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	if expires.Valid {
		e := expires.Time.UTC()
		t.Expires = &e
	}
	return &t, nil
}

func (r *SQLRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM tokens
		WHERE user_id = ?
	`
	if _, err := r.db.ExecContext(ctx, r.q(query), userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Expire(ctx context.Context, key string, at time.Time) (bool, error) {
	query := `
		UPDATE tokens
		SET expires_at = ?
		WHERE key = ? AND expires_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, r.q(query), at, key)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
