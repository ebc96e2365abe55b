package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.Remote.Driver)
	assert.Equal(t, 10*time.Second, cfg.Remote.Timeout())
	assert.Equal(t, 5, cfg.Remote.FeedLimit)
	assert.Equal(t, 30*time.Minute, cfg.Remote.WorkspaceIdle())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("REMOTE_DRIVER", "MEMORY")
	t.Setenv("REMOTE_TIMEOUT_SECONDS", "3")
	t.Setenv("FEED_LIMIT", "8")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.Remote.Driver)
	assert.Equal(t, 3*time.Second, cfg.Remote.Timeout())
	assert.Equal(t, 8, cfg.Remote.FeedLimit)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"driver desconocido", map[string]string{"REMOTE_DRIVER": "mongo"}},
		{"timeout en cero", map[string]string{"REMOTE_TIMEOUT_SECONDS": "0"}},
		{"producción sin secreto", map[string]string{"APP_ENV": "production"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "negocio", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/negocio?sslmode=require", db.ConnectionString())

	db.DatabaseURL = "postgresql://u:p@host/db"
	assert.Equal(t, "postgresql://u:p@host/db", db.ConnectionString())
}
