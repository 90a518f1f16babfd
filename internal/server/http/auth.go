package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

const tokenContextKey = "tokenkeeper.token"

// parseAuthorization extracts the key from "Token <key>". The scheme is
// matched case-insensitively. A missing header, another scheme or a scheme
// without a key yields "" (nothing presented). A key that contains
// whitespace is returned as is and will not match any stored token.
func parseAuthorization(header string) string {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.TokenAuthScheme) {
		return ""
	}
	return strings.TrimSpace(key)
}

// TokenFromContext returns the token attached by the auth gate.
func TokenFromContext(c *gin.Context) (*models.Token, bool) {
	v, ok := c.Get(tokenContextKey)
	if !ok {
		return nil, false
	}
	t, ok := v.(*models.Token)
	return t, ok
}

// tokenAuth is the gate in front of every protected route: it resolves the
// bearer key and maps each failure to a fixed status and detail.
func (s *Server) tokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := parseAuthorization(c.GetHeader(common.AuthorizationHeaderName))

		token, err := s.tokens.Authenticate(c.Request.Context(), key)
		if err != nil {
			s.authFailed(c, err)
			return
		}

		c.Set(tokenContextKey, token)
		c.Next()
	}
}

func (s *Server) authFailed(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, common.ErrMissingCredentials):
		s.metrics.AuthFailed(metrics.ReasonMissing)
		abortWithDetail(c, http.StatusUnauthorized, DetailNotProvided)
	case errors.Is(err, common.ErrInvalidToken):
		s.metrics.AuthFailed(metrics.ReasonInvalid)
		abortWithDetail(c, http.StatusUnauthorized, DetailInvalidToken)
	case errors.Is(err, common.ErrTokenExpired):
		s.metrics.AuthFailed(metrics.ReasonExpired)
		abortWithDetail(c, http.StatusUnauthorized, DetailTokenExpired)
	default:
		s.metrics.AuthFailed(metrics.ReasonInternal)
		s.logger.Error(ctx, "token authentication failed", "error", err)
		abortWithDetail(c, http.StatusInternalServerError, DetailInternal)
	}
}
