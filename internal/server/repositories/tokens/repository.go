// Package tokens declares the server-side repository contract for bearer
// tokens kept in persistent storage.
package tokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// Repository stores at most one token per user. Tokens are never deleted
// on revocation, only expired.
type Repository interface {
	// Create inserts a token. A second token for the same user or a
	// duplicate key fails with a unique violation (see dbx.IsUniqueViolation).
	Create(ctx context.Context, token *models.Token) error

	// FindByKey returns common.ErrorNotFound when no token has the key.
	FindByKey(ctx context.Context, key string) (*models.Token, error)

	// FindByUser returns common.ErrorNotFound when the user holds no token.
	FindByUser(ctx context.Context, userID string) (*models.Token, error)

	// DeleteByUser removes every token owned by userID. Deleting nothing is
	// not an error.
	DeleteByUser(ctx context.Context, userID string) error

	// Expire sets the expiry of a not yet revoked token to at. It reports
	// false when no row was updated.
	Expire(ctx context.Context, key string, at time.Time) (bool, error)
}
