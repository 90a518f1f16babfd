package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	c.LogFile = filepath.Join(t.TempDir(), "tokenkeeper.log")
	return c
}

func TestNewApp_UnsupportedDriver(t *testing.T) {
	c := sqliteConfig(t)
	c.DatabaseDriver = "mysql"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	c := sqliteConfig(t)

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}

	b, err := os.ReadFile(c.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Starting app...")
	assert.Contains(t, string(b), "App stopped")
}
