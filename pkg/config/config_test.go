package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_OpenAIConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("OPENAI_MODEL", "gpt-4o")
	defer func() {
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("OPENAI_MODEL")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "test-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("OPENAI_MODEL")
	os.Unsetenv("DEFAULT_LATITUDE")
	os.Unsetenv("DEFAULT_LONGITUDE")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 26.8467, cfg.Geolocation.DefaultLatitude)
	assert.Equal(t, 80.9462, cfg.Geolocation.DefaultLongitude)
	assert.Equal(t, "bedfinder", cfg.Database.Database)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "bedfinder",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=postgres password=secret dbname=bedfinder sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
