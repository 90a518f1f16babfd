// Package server initializes and runs the TokenKeeper server: it opens the
// database, applies migrations, wires the services and runs the HTTP API
// and the gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
	"github.com/dmitrijs2005/tokenkeeper/internal/timex"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/tokenkeeper/internal/server/grpc"
	hs "github.com/dmitrijs2005/tokenkeeper/internal/server/http"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	metrics      *metrics.Metrics
	tokenService *services.TokenService
	userService  *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogLevel, c.LogFile)

	rm, err := repomanager.NewSQLRepositoryManager(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.OpenDB(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	clock := timex.SystemClock{}
	ts := services.NewTokenService(db, rm, clock, c)
	us := services.NewUserService(db, rm, clock)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		metrics:      metrics.New(),
		tokenService: ts,
		userService:  us,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc, s *gs.GRPCServer) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc, health *gs.GRPCServer) {
	s := hs.NewServer(app.config.EndpointAddrHTTP, app.logger, app.tokenService, app.userService, app.metrics, app.config.RequestTimeout)

	health.SetServing(true)
	defer health.SetServing(false)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"driver", app.config.DatabaseDriver,
		"token_duration", app.config.TokenValidityDuration.String(),
		"reuse_valid_token", app.config.ReuseValidToken,
	)

	gin.SetMode(gin.ReleaseMode)
	app.initSignalHandler(cancelFunc)

	health := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc, health)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc, health)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
