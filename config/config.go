package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Completion provider configuration
	AIProvider string
	AIAPIKey   string
	AIAPIURL   string
	AIModel    string
	AITimeout  time.Duration

	// Object storage for exports
	S3Bucket  string
	AWSRegion string
}

const (
	defaultServerPort = "8080"
	defaultServerHost = "0.0.0.0"
	defaultSQLitePath = "nutripal.db"
	defaultAIProvider = "openai"
	defaultAITimeout  = 60 * time.Second
	devJWTSecret      = "nutripal-dev-secret"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		loadEnvConfig(cfg)
		loadCISecrets(cfg)
	case Development, Test:
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[Config] failed to load .env: %v", err)
		}
		loadEnvConfig(cfg)
		loadSecrets(cfg)
		if cfg.JWTSecret == "" {
			log.Printf("[Config] jwt_secret not set, using development secret")
			cfg.JWTSecret = devJWTSecret
		}
	case Production:
		loadEnvConfig(cfg)
		loadSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads every non-secret setting from the environment
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", defaultServerPort)
	cfg.ServerHost = getEnv("SERVER_HOST", defaultServerHost)
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", defaultSQLitePath)

	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.AIProvider = strings.ToLower(getEnv("AI_PROVIDER", defaultAIProvider))
	cfg.AIAPIURL = os.Getenv("AI_API_URL")
	cfg.AIModel = os.Getenv("AI_MODEL")
	cfg.AITimeout = defaultAITimeout
	if raw := os.Getenv("AI_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.AITimeout = d
		} else {
			log.Printf("[Config] invalid AI_TIMEOUT %q, using %v", raw, defaultAITimeout)
		}
	}

	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")
}

// loadCISecrets uses environment variables for secrets, as CI has no Docker secrets
func loadCISecrets(cfg *Config) {
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.AIAPIKey = os.Getenv("AI_API_KEY")
}

// loadSecrets reads Docker secrets, falling back to environment variables
func loadSecrets(cfg *Config) {
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD")
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD")
	cfg.AIAPIKey = secretOrEnv("ai_api_key", "AI_API_KEY")
}

func secretOrEnv(secret, envVar string) string {
	if value := readSecret(secret); value != "" {
		return value
	}
	return os.Getenv(envVar)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PostgresDSN builds the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr returns host:port for the Redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// RedisEnabled reports whether any Redis endpoint is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

