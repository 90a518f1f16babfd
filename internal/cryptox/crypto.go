// Package cryptox groups the cryptographic primitives used by the server:
// opaque token key generation and password hashing for the credential
// verifier.
package cryptox

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-secure-stdlib/base62"
	"golang.org/x/crypto/bcrypt"
)

// TokenKeyLength is the number of base62 characters in a token key.
// 40 characters carry roughly 238 bits of entropy.
const TokenKeyLength = 40

// ErrPasswordMismatch is returned by ComparePassword when the password does
// not match the hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// dummyHash is compared against when the principal does not exist, so that
// "unknown user" costs the same bcrypt work as "wrong password".
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tokenkeeper-dummy-password"), bcrypt.DefaultCost)

// NewTokenKey returns a fresh opaque key read from crypto/rand.
// Consumers must treat the result as an opaque string.
func NewTokenKey() (string, error) {
	key, err := base62.Random(TokenKeyLength)
	if err != nil {
		return "", fmt.Errorf("unable to generate token key: %w", err)
	}
	return key, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("unable to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword checks password against a bcrypt hash. An empty hash is
// compared against a dummy value and always fails.
func ComparePassword(hash, password string) error {
	h := []byte(hash)
	if len(h) == 0 {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword(h, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
