package models

import "time"

// Token is an opaque bearer credential owned by a single user.
//
// Expires is nil until the token is revoked; an unrevoked token lives for
// the service-wide default duration counted from CreatedAt.
type Token struct {
	Key       string
	UserID    string
	CreatedAt time.Time
	Expires   *time.Time
}

// ExpiresAt returns the instant after which the token is no longer valid.
func (t *Token) ExpiresAt(defaultDuration time.Duration) time.Time {
	if t.Expires != nil {
		return *t.Expires
	}
	return t.CreatedAt.Add(defaultDuration)
}

// IsValid reports whether the token authenticates at now.
// The expiry instant itself is already outside the validity window.
func (t *Token) IsValid(now time.Time, defaultDuration time.Duration) bool {
	return now.Before(t.ExpiresAt(defaultDuration))
}
