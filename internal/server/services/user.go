package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/cryptox"
	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/timex"
	"github.com/google/uuid"
)

// UserService verifies credentials and manages the principals that may
// obtain tokens.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       timex.Clock
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, clock timex.Clock) *UserService {
	return &UserService{db: db, repomanager: m, clock: clock}
}

// Verify checks username and password.
//
// Unknown users and wrong passwords both yield common.ErrInvalidCredentials.
// A correct password for a deactivated account yields
// common.ErrInactiveAccount, which also matches ErrInvalidCredentials.
func (s *UserService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = cryptox.ComparePassword("", password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := cryptox.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, common.ErrInactiveAccount
	}

	return user, nil
}

// Register creates an active user with a freshly hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password must not be empty")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.clock.Now(),
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// SetActive enables or disables a user. A disabled user keeps any token it
// holds, but cannot obtain a new one.
func (s *UserService) SetActive(ctx context.Context, username string, active bool) error {
	if err := s.repomanager.Users(s.db).SetActive(ctx, username, active); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}
