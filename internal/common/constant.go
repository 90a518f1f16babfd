// Package common contains shared constants and sentinel errors used across
// TokenKeeper components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer key.
const AuthorizationHeaderName = "Authorization"

// TokenAuthScheme is the scheme keyword expected in front of the key,
// e.g. "Authorization: Token 0a1b2c...".
const TokenAuthScheme = "Token"
