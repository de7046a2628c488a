package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORAGE_STRATEGY", "remote")
	t.Setenv("OBJECT_STORE_BACKEND", "s3")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, StrategyRemote, cfg.Strategy)
	assert.Equal(t, BackendS3, cfg.ObjectStore.Backend)
	assert.Equal(t, "pdf-files", cfg.MinIO.Bucket)
	assert.Equal(t, 60, cfg.Host.TokenTTLSec)
}

func TestValidate(t *testing.T) {
	const secret = "0123456789abcdef"

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{
			name: "browser only needs a kv dsn",
			mutate: func(c *AppConfig) {
				c.Strategy = StrategyBrowser
			},
		},
		{
			name: "unknown strategy",
			mutate: func(c *AppConfig) {
				c.Strategy = "ftp"
			},
			wantErr: true,
		},
		{
			name: "local requires host secret",
			mutate: func(c *AppConfig) {
				c.Strategy = StrategyLocal
				c.Host.Secret = ""
			},
			wantErr: true,
		},
		{
			name: "local with short secret",
			mutate: func(c *AppConfig) {
				c.Strategy = StrategyLocal
				c.Host.Secret = "short"
			},
			wantErr: true,
		},
		{
			name: "local valid",
			mutate: func(c *AppConfig) {
				c.Strategy = StrategyLocal
				c.Host.Secret = secret
			},
		},
		{
			name: "remote without database",
			mutate: func(c *AppConfig) {
				c.Strategy = StrategyRemote
				c.Host.Secret = secret
			},
			wantErr: true,
		},
		{
			name: "remote with unknown backend",
			mutate: func(c *AppConfig) {
				c.Strategy = StrategyRemote
				c.Host.Secret = secret
				c.Database = DatabaseConfig{Host: "db", User: "u", Name: "n"}
				c.ObjectStore.Backend = "gcs"
			},
			wantErr: true,
		},
		{
			name: "remote valid",
			mutate: func(c *AppConfig) {
				c.Strategy = StrategyRemote
				c.Host.Secret = secret
				c.Database = DatabaseConfig{Host: "db", User: "u", Name: "n"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHostConfig_ValidateServer(t *testing.T) {
	h := HostConfig{Port: "8765", Secret: "0123456789abcdef", BaseDir: "pdf-files"}
	assert.NoError(t, h.ValidateServer())

	h.BaseDir = ""
	assert.Error(t, h.ValidateServer())
}

func TestDatabaseConfig_Configured(t *testing.T) {
	assert.False(t, DatabaseConfig{}.Configured())
	assert.True(t, DatabaseConfig{Host: "h", User: "u", Name: "n"}.Configured())
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
