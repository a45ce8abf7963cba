// Package config loads CLI configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings the CLI needs to find its data.
type Config struct {
	LibraryName  string `yaml:"library_name"`
	DBPath       string `yaml:"db_path"`
	SnapshotPath string `yaml:"snapshot_path"`
	SkipInvalid  bool   `yaml:"skip_invalid"`
}

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "library.yaml"

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LibraryName:  "Library",
		DBPath:       "library.db",
		SnapshotPath: "library.json",
	}
}

// Load reads the YAML file at path, falling back to defaults when the
// file is missing. A .env file (if present) and the process environment
// override file values: LIBRARY_NAME, LIBRARY_DB_PATH,
// LIBRARY_SNAPSHOT_PATH.
func Load(path string) (Config, error) {
	// Missing .env is fine; it is a local convenience.
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("LIBRARY_NAME"); v != "" {
		cfg.LibraryName = v
	}
	if v := os.Getenv("LIBRARY_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LIBRARY_SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
	return cfg, nil
}

// Save writes the configuration back as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
