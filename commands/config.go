package commands

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the environment configuration for a run. GOOGLE_API_KEY and
// GOOGLE_APPLICATION_CREDENTIALS are read from the environment, which the
// entry point pre-populates from a .env file if one exists.
type Config struct {
	APIKey      string
	Credentials string
}

// ConfigError reports a missing or unusable configuration value.
type ConfigError struct {
	Variable string
	Message  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Variable, e.Message)
}

// loadConfig reads and validates the full environment configuration.
func loadConfig() (Config, error) {
	apiKey := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	if apiKey == "" {
		return Config{}, &ConfigError{
			Variable: "GOOGLE_API_KEY",
			Message:  "not set - add it to the environment or a .env file",
		}
	}

	credentials, err := loadCredentials()
	if err != nil {
		return Config{}, err
	}

	return Config{
		APIKey:      apiKey,
		Credentials: credentials,
	}, nil
}

// loadCredentials resolves the service account credentials file, falling back
// to the platform default location when GOOGLE_APPLICATION_CREDENTIALS is not
// set.
func loadCredentials() (string, error) {
	credentials := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if credentials == "" {
		credentials = DEFAULT_CREDENTIALS
	}

	if _, err := os.Stat(credentials); err != nil {
		return "", &ConfigError{
			Variable: "GOOGLE_APPLICATION_CREDENTIALS",
			Message:  fmt.Sprintf("service account credentials file %s is not readable (%v)", credentials, err),
		}
	}

	return credentials, nil
}
