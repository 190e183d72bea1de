package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egalea504/LightBnB/internal/config"
	"github.com/egalea504/LightBnB/pkg/logger"
)

func memoryConfig(redisAddr string) *config.Config {
	return &config.Config{
		Environment:        "development",
		HTTPPort:           8080,
		Store:              config.StoreMemory,
		RedisAddr:          redisAddr,
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestNewApp_MemoryStore(t *testing.T) {
	mr := miniredis.RunT(t)
	logs := &bytes.Buffer{}

	a, err := NewApp(memoryConfig(mr.Addr()), logger.NewWithWriter("lightbnb", "info", logs))
	require.NoError(t, err)
	assert.Nil(t, a.pool)
	assert.Nil(t, a.producer)

	rec := httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties?limit=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":4`)

	rec = httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis"`)

	require.NoError(t, a.Shutdown())
	assert.Contains(t, logs.String(), "using in-memory store")
	assert.Contains(t, logs.String(), "application shutdown complete")
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewApp(memoryConfig(addr), logger.NewWithWriter("lightbnb", "info", &bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}
