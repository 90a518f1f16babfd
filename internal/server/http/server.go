// Package http exposes the token service over HTTP: credential exchange,
// revocation and the auth gate that protects every other route.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// TokenService is the token lifecycle the handlers drive.
type TokenService interface {
	Obtain(ctx context.Context, userID string) (*models.Token, error)
	Authenticate(ctx context.Context, key string) (*models.Token, error)
	Revoke(ctx context.Context, key string) error
	DefaultDuration() time.Duration
}

// CredentialVerifier checks a username and password.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*models.User, error)
}

type Server struct {
	address        string
	logger         logging.Logger
	tokens         TokenService
	users          CredentialVerifier
	metrics        *metrics.Metrics
	requestTimeout time.Duration
}

func NewServer(a string, l logging.Logger, ts TokenService, us CredentialVerifier, m *metrics.Metrics, requestTimeout time.Duration) *Server {
	return &Server{
		address:        a,
		logger:         l.With("module", "http_server"),
		tokens:         ts,
		users:          us,
		metrics:        m,
		requestTimeout: requestTimeout,
	}
}

// Handler builds the gin engine with all routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog(), requestTimeout(s.requestTimeout))

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.POST("/obtain-token", s.obtainToken)

	protected := r.Group("/", s.tokenAuth())
	protected.POST("/revoke-token", s.revokeToken)
	protected.GET("/whoami", s.whoami)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
