// Package users declares the repository contract for principals that can
// obtain tokens.
package users

import (
	"context"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user. A taken username fails with a unique violation.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound for an unknown username.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	// SetActive returns common.ErrorNotFound for an unknown username.
	SetActive(ctx context.Context, userName string, active bool) error
}
