package cli

import (
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from CINOTIFY_* env vars.
type baseEnv struct {
	// ConfigPath is the inputs YAML path from CINOTIFY_CONFIG.
	ConfigPath string `env:"CINOTIFY_CONFIG"`
	// EnvFiles is a comma-separated .env file list from CINOTIFY_ENV_FILE.
	EnvFiles []string `env:"CINOTIFY_ENV_FILE"`
	// LogLevel is the logging level from CINOTIFY_LOG_LEVEL.
	LogLevel string `env:"CINOTIFY_LOG_LEVEL"`
}

// parseEnv fills target from env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}

// envPresent reports whether a non-empty env var exists.
func envPresent(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
