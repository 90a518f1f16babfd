package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

type SQLRepository struct {
	db         dbx.DBTX
	driverName string
}

func NewSQLRepository(db dbx.DBTX, driverName string) *SQLRepository {
	return &SQLRepository{db: db, driverName: driverName}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, username, password_hash, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 `

	_, err := r.db.ExecContext(ctx, dbx.Rebind(r.driverName, query),
		user.ID, user.UserName, user.PasswordHash, user.IsActive, user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, is_active, created_at FROM users
		 WHERE username = ?
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, dbx.Rebind(r.driverName, query), userName).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.IsActive, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}

func (r *SQLRepository) SetActive(ctx context.Context, userName string, active bool) error {
	query :=
		`UPDATE users SET is_active = ?
		 WHERE username = ?
		 `

	res, err := r.db.ExecContext(ctx, dbx.Rebind(r.driverName, query), active, userName)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
