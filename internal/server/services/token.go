// Package services contains server-side business logic: the token lifecycle
// (TokenService) and the credential verifier that guards it (UserService).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/cryptox"
	"github.com/dmitrijs2005/tokenkeeper/internal/dbx"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/timex"
)

// issueMaxRetries bounds how often Issue retries after losing a race on
// the one-token-per-user constraint.
const issueMaxRetries = 3

// TokenService issues, validates and revokes bearer tokens.
//
// Expiry is evaluated lazily against the injected clock: nothing runs in
// the background and expired records stay in storage until the owner is
// issued a new token.
type TokenService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	clock           timex.Clock
	defaultDuration time.Duration
	reuseValidToken bool
	newKey          func() (string, error)
	newBackOff      func() backoff.BackOff
}

// TokenServiceOption customizes a TokenService.
type TokenServiceOption func(*TokenService)

// WithKeyGenerator replaces cryptox.NewTokenKey as the source of token keys.
func WithKeyGenerator(f func() (string, error)) TokenServiceOption {
	return func(s *TokenService) { s.newKey = f }
}

// WithBackOff sets the retry policy used when Issue races another Issue.
func WithBackOff(f func() backoff.BackOff) TokenServiceOption {
	return func(s *TokenService) { s.newBackOff = f }
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	b.MaxElapsedTime = time.Second
	return backoff.WithMaxRetries(b, issueMaxRetries)
}

// NewTokenService constructs a TokenService using repositories and server config.
func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, clock timex.Clock, cfg *config.Config, opts ...TokenServiceOption) *TokenService {
	s := &TokenService{
		db:              db,
		repomanager:     m,
		clock:           clock,
		defaultDuration: cfg.TokenValidityDuration,
		reuseValidToken: cfg.ReuseValidToken,
		newKey:          cryptox.NewTokenKey,
		newBackOff:      defaultBackOff,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultDuration is the lifetime of a token that was never revoked.
func (s *TokenService) DefaultDuration() time.Duration {
	return s.defaultDuration
}

// Issue replaces whatever token userID holds with a new one. The caller must
// already have verified the user's credentials.
//
// Deleting the old token and inserting the new one happen in a single
// transaction. Losing a race against a concurrent Issue for the same user
// surfaces as a unique violation and is retried.
func (s *TokenService) Issue(ctx context.Context, userID string) (*models.Token, error) {
	op := func() (*models.Token, error) {
		token, err := s.issueOnce(ctx, userID)
		if err != nil && !dbx.IsUniqueViolation(err) {
			return nil, backoff.Permanent(err)
		}
		return token, err
	}

	token, err := backoff.RetryWithData(op, backoff.WithContext(s.newBackOff(), ctx))
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

func (s *TokenService) issueOnce(ctx context.Context, userID string) (*models.Token, error) {
	key, err := s.newKey()
	if err != nil {
		return nil, err
	}

	token := &models.Token{
		Key:       key,
		UserID:    userID,
		CreatedAt: s.clock.Now(),
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tokens(tx)
		if err := repo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return repo.Create(ctx, token)
	}); err != nil {
		return nil, err
	}
	return token, nil
}

// Authenticate resolves key to its token.
//
// It returns common.ErrMissingCredentials for an empty key,
// common.ErrInvalidToken for a key that is not stored and
// common.ErrTokenExpired for a stored token that is no longer valid.
func (s *TokenService) Authenticate(ctx context.Context, key string) (*models.Token, error) {
	if key == "" {
		return nil, common.ErrMissingCredentials
	}

	token, err := s.repomanager.Tokens(s.db).FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching token: %w", err)
	}

	if !token.IsValid(s.clock.Now(), s.defaultDuration) {
		return nil, common.ErrTokenExpired
	}
	return token, nil
}

// Revoke expires key immediately by setting its expiry to the current
// clock reading. The record is kept, so later lookups report
// common.ErrTokenExpired rather than common.ErrInvalidToken.
//
// Revoking a token that is already expired, or that another Revoke expired
// first, returns common.ErrTokenExpired.
func (s *TokenService) Revoke(ctx context.Context, key string) error {
	if key == "" {
		return common.ErrMissingCredentials
	}

	now := s.clock.Now()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tokens(tx)

		token, err := repo.FindByKey(ctx, key)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching token: %w", err)
		}
		if !token.IsValid(now, s.defaultDuration) {
			return common.ErrTokenExpired
		}

		updated, err := repo.Expire(ctx, key, now)
		if err != nil {
			return fmt.Errorf("error revoking token: %w", err)
		}
		if !updated {
			return common.ErrTokenExpired
		}
		return nil
	})
}

// Obtain returns a token for a user whose credentials were just verified.
// With token reuse enabled a still-valid token is handed back unchanged;
// otherwise, and whenever the current token is gone or expired, a new one
// is issued.
func (s *TokenService) Obtain(ctx context.Context, userID string) (*models.Token, error) {
	if s.reuseValidToken {
		token, err := s.repomanager.Tokens(s.db).FindByUser(ctx, userID)
		switch {
		case err == nil && token.IsValid(s.clock.Now(), s.defaultDuration):
			return token, nil
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return nil, fmt.Errorf("error searching token: %w", err)
		}
	}
	return s.Issue(ctx, userID)
}
