package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

type obtainTokenRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// obtainToken exchanges username and password for a token. Every
// credential problem, including a malformed body, is answered with the
// same 400 so that callers cannot tell which check failed.
func (s *Server) obtainToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req obtainTokenRequest
	if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
		s.metrics.AuthFailed(metrics.ReasonCredentials)
		abortWithDetail(c, http.StatusBadRequest, DetailInvalidCredentials)
		return
	}

	user, err := s.users.Verify(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.metrics.AuthFailed(metrics.ReasonCredentials)
			s.logger.Info(ctx, "credential check failed", "username", req.Username, "reason", err.Error())
			abortWithDetail(c, http.StatusBadRequest, DetailInvalidCredentials)
			return
		}
		s.logger.Error(ctx, "credential check error", "error", err)
		abortWithDetail(c, http.StatusInternalServerError, DetailInternal)
		return
	}

	token, err := s.tokens.Obtain(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "token issue error", "user_id", user.ID, "error", err)
		abortWithDetail(c, http.StatusInternalServerError, DetailInternal)
		return
	}

	s.metrics.TokenIssued()
	s.logger.Debug(ctx, "token issued", "user_id", user.ID)
	c.JSON(http.StatusOK, tokenResponse{Token: token.Key})
}

// revokeToken expires the key the request was authenticated with.
func (s *Server) revokeToken(c *gin.Context) {
	token, ok := TokenFromContext(c)
	if !ok {
		abortWithDetail(c, http.StatusUnauthorized, DetailNotProvided)
		return
	}

	if err := s.tokens.Revoke(c.Request.Context(), token.Key); err != nil {
		s.authFailed(c, err)
		return
	}

	s.metrics.TokenRevoked()
	s.logger.Info(c.Request.Context(), "token revoked", "user_id", token.UserID)
	c.JSON(http.StatusOK, detailResponse{Detail: DetailTokenRevoked})
}

type whoamiResponse struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) whoami(c *gin.Context) {
	token, ok := TokenFromContext(c)
	if !ok {
		abortWithDetail(c, http.StatusUnauthorized, DetailNotProvided)
		return
	}
	c.JSON(http.StatusOK, whoamiResponse{
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt(s.tokens.DefaultDuration()),
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
