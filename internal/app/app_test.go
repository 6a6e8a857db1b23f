package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-balance/internal/config"
	"github.com/comitanigiacomo/kanso-balance/internal/core/services"
)

var testClock = services.FixedClock{T: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.RateLimit = 0
	cfg.Port = "0"
	return cfg
}

func health(t *testing.T, a *App) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success: Limiter disabled", func(t *testing.T) {
		a, err := New(testConfig(), testClock)
		require.NoError(t, err)
		defer a.Close()

		assert.Equal(t, 5, a.Catalog.Len())
		assert.Equal(t, time.UTC, a.Location)
		assert.Nil(t, a.SnapshotWorker)
		assert.Contains(t, health(t, a).Body.String(), `"rate_limiter":"disabled"`)
	})

	t.Run("Success: Memory limiter without redis", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit = 10

		a, err := New(cfg, testClock)
		require.NoError(t, err)
		defer a.Close()

		w := health(t, a)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rate_limiter":"connected"`)
		assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Success: Nil clock uses the system clock", func(t *testing.T) {
		a, err := New(testConfig(), nil)
		require.NoError(t, err)
		defer a.Close()

		assert.WithinDuration(t, time.Now(), a.Clock.Now(), time.Minute)
	})

	t.Run("Fail: Unreachable redis", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit = 10
		cfg.RedisAddr = "localhost:9999"

		_, err := New(cfg, testClock)
		assert.Error(t, err)
	})

	t.Run("Fail: Missing category file", func(t *testing.T) {
		cfg := testConfig()
		cfg.CategoryFile = "does-not-exist.yaml"

		_, err := New(cfg, testClock)
		assert.Error(t, err)
	})
}

func TestServe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.SnapshotInterval = time.Hour

	a, err := New(cfg, testClock)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.SnapshotWorker)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Serve(ctx) }()

	// The worker saves the current month right after start.
	require.Eventually(t, func() bool {
		snap, err := a.Snapshots.Get(context.Background(), "2026-10")
		return err == nil && snap != nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	select {
	case <-a.SnapshotWorker.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestServe_ListenFailureStopsWorker(t *testing.T) {
	gin.SetMode(gin.TestMode)

	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig()
	cfg.Port = strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)
	cfg.SnapshotInterval = time.Hour

	a, err := New(cfg, testClock)
	require.NoError(t, err)
	defer a.Close()

	err = a.Serve(context.Background())
	assert.Error(t, err)

	select {
	case <-a.SnapshotWorker.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker kept running after the server failed")
	}
}
