package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for k, v := range values {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	secrets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "jwt_secret"), []byte("file-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "ai_api_key"), []byte("sk-test"), 0o600))

	setEnv(t, map[string]string{
		"CI":           "",
		"ENV":          "test",
		"SECRETS_DIR":  secrets,
		"DB_DRIVER":    "postgres",
		"DB_HOST":      "localhost",
		"DB_PORT":      "5432",
		"DB_USER":      "postgres",
		"DB_NAME":      "nutripal",
		"AI_PROVIDER":  "DeepSeek",
		"AI_TIMEOUT":   "45s",
		"CORS_ORIGINS": "http://localhost:3000, https://app.example.com",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "nutripal", cfg.DBName)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, "sk-test", cfg.AIAPIKey)
	assert.Equal(t, "deepseek", cfg.AIProvider)
	assert.Equal(t, 45*time.Second, cfg.AITimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.PostgresDSN(), "dbname=nutripal")
}

func TestLoadConfigWithDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"CI":             "",
		"ENV":            "development",
		"SECRETS_DIR":    t.TempDir(),
		"SERVER_PORT":    "",
		"DB_DRIVER":      "",
		"SQLITE_PATH":    "",
		"AI_PROVIDER":    "",
		"AI_TIMEOUT":     "",
		"AI_API_KEY":     "",
		"JWT_SECRET":     "",
		"REDIS_HOST":     "",
		"REDIS_URL":      "",
		"S3_BUCKET_NAME": "",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "nutripal.db", cfg.SQLitePath)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Empty(t, cfg.AIAPIKey, "a missing AI key is not a load error")
	assert.False(t, cfg.RedisEnabled())
}

func TestValidateConfigCollectsProblems(t *testing.T) {
	t.Setenv("CI", "true")

	cfg := &Config{
		ServerPort: "http",
		DBDriver:   "mysql",
		AIProvider: "llama",
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "AI_PROVIDER")
	assert.Contains(t, err.Error(), "AI_TIMEOUT")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
