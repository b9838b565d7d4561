package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_CONNECT_TIMEOUT_SEC", "2")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SUBMIT_RATE_LIMIT", "3")
	t.Setenv("RESTRICT_LOOKUP_BY_EMAIL", "true")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.ConnectTimeoutSec)
	assert.Equal(t, 60, cfg.Database.ConnMaxIdleTimeSec)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, StoreDriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "applyapi", cfg.Mongo.Database)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.RateLimit.SubmitLimit)
	assert.Equal(t, 60, cfg.RateLimit.SubmitWindowSec)
	assert.True(t, cfg.Policy.RestrictLookupByEmail)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "ATTACHMENT_BACKEND", "MAX_UPLOAD_BYTES", "APP_TIMEZONE", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, AttachmentBackendInline, cfg.AttachmentBackend)
	assert.Equal(t, 5*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Policy.RestrictLookupByEmail)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
