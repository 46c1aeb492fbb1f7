package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendwise/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendPostgres, cfg.Store.Backend)
	assert.True(t, cfg.Store.Migrate)
	assert.Equal(t, "Expenses", cfg.Dynamo.Table)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
}

func TestConfig_ConnectionString(t *testing.T) {
	var cfg config.Config
	cfg.DB.User = "postgres"
	cfg.DB.Password = "secret"
	cfg.DB.Host = "db"
	cfg.DB.Port = 5432
	cfg.DB.Name = "spendwise"

	assert.Equal(t, "postgres://postgres:secret@db:5432/spendwise?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "dynamodb")
	t.Setenv("EXPENSES_TABLE", "household-expenses")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendDynamoDB, cfg.Store.Backend)
	assert.Equal(t, "household-expenses", cfg.Dynamo.Table)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 9090, cfg.App.Port)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sheets")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := config.Load()
	assert.Error(t, err)
}
