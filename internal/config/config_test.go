package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("JWT_TTL_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.APIURL)
	assert.Equal(t, BackendFile, cfg.StateBackend)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, ":4000", cfg.HTTPAddress())
	assert.NoError(t, cfg.ValidateClient())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_URL", "https://shop.example.com/")
	t.Setenv("STATE_BACKEND", "Redis")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.APIURL)
	assert.Equal(t, BackendRedis, cfg.StateBackend)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_RejectsNegativeRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "-1")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidateClient(t *testing.T) {
	cfg := Config{APIURL: "http://localhost:4000", StateBackend: BackendPostgres}
	assert.Error(t, cfg.ValidateClient(), "postgres without DATABASE_URL")

	cfg.DatabaseURL = "postgres://localhost/storefront"
	assert.NoError(t, cfg.ValidateClient())

	cfg.StateBackend = "sqlite"
	assert.Error(t, cfg.ValidateClient())

	cfg = Config{APIURL: "localhost", StateBackend: BackendMemory}
	assert.Error(t, cfg.ValidateClient())
}

func TestValidateDevAPI(t *testing.T) {
	assert.Error(t, Config{}.ValidateDevAPI())
	assert.NoError(t, Config{JWTSecret: "s3cret"}.ValidateDevAPI())
}
