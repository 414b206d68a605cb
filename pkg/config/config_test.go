package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("menu-service")
	require.NoError(t, err)

	assert.Equal(t, "menu-service", cfg.ServiceName)
	assert.Equal(t, "menu-service", cfg.DB.DBName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.PublicBaseURL)
	assert.Equal(t, "menu-service", cfg.Metrics.Prefix)
	assert.EqualValues(t, 10<<20, cfg.Storage.MaxUploadBytes)
	assert.Equal(t, "123456", cfg.Onboarding.TempOwnerPassword)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PUBLIC_BASE_URL", "https://menus.example.com")
	t.Setenv("STORAGE_MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("DB_LOG_LEVEL", "silent")

	cfg, err := Load("menu-service")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://menus.example.com", cfg.Server.PublicBaseURL)
	assert.EqualValues(t, 1<<20, cfg.Storage.MaxUploadBytes)
	assert.Equal(t, 2, cfg.JWT.ExpirationHours)
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "password",
		DBName:   "menu_service",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=password dbname=menu_service sslmode=disable",
		cfg.GetDSN())
}
