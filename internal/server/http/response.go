package http

import (
	"net/http"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

// Response details. Clients match on these strings, so they are part of
// the wire format.
const (
	DetailInvalidCredentials = "Invalid Credentials"
	DetailNotProvided        = "Authentication credentials were not provided."
	DetailInvalidToken       = "Invalid token."
	DetailTokenExpired       = "The Token is expired"
	DetailTokenRevoked       = "Token revoked"
	DetailInternal           = "Internal server error"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func abortWithDetail(c *gin.Context, code int, detail string) {
	if code == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", common.TokenAuthScheme)
	}
	c.AbortWithStatusJSON(code, detailResponse{Detail: detail})
}
