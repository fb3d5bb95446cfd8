package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvDB     = "MAZE_DB"
	EnvLevels = "MAZE_LEVELS_DIR"
	EnvConfig = "MAZE_CONFIG"
)

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without replacing variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// ConfigPathFromEnv returns MAZE_CONFIG, or fallback when it is unset.
func ConfigPathFromEnv(fallback string) string {
	return getEnvWithDefault(EnvConfig, fallback)
}

// ApplyEnv overrides path settings from the environment.
func ApplyEnv(cfg *MazeConfig) {
	cfg.Paths.DB = getEnvWithDefault(EnvDB, cfg.Paths.DB)
	cfg.Paths.Levels = getEnvWithDefault(EnvLevels, cfg.Paths.Levels)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
