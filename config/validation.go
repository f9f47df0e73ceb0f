package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validAIProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"gemini":   true,
}

// ValidateConfig checks the configuration and reports every problem at once.
// A missing AI key is not a validation failure; it surfaces when the model is called.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var problems []ValidationError

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		problems = append(problems, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			problems = append(problems, ValidationError{"DB_HOST", "required for postgres"})
		}
		if cfg.DBName == "" {
			problems = append(problems, ValidationError{"DB_NAME", "required for postgres"})
		}
		if cfg.DBUser == "" {
			problems = append(problems, ValidationError{"DB_USER", "required for postgres"})
		}
		if cfg.DBPassword == "" && env != Development && env != Test {
			problems = append(problems, ValidationError{"db_password", "secret is required"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			problems = append(problems, ValidationError{"SQLITE_PATH", "required for sqlite"})
		}
	default:
		problems = append(problems, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if !validAIProviders[cfg.AIProvider] {
		problems = append(problems, ValidationError{"AI_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.AIProvider)})
	}
	if cfg.AITimeout <= 0 {
		problems = append(problems, ValidationError{"AI_TIMEOUT", "must be positive"})
	}

	if cfg.JWTSecret == "" {
		if env == CI {
			problems = append(problems, ValidationError{"JWT_SECRET", "environment variable is required in CI environment"})
		} else {
			problems = append(problems, ValidationError{"jwt_secret", "secret is required"})
		}
	}

	if len(problems) > 0 {
		lines := make([]string, len(problems))
		for i, p := range problems {
			lines[i] = p.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
