// Package config loads the TOML configuration, creating it with defaults on
// first launch.
package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"

	// BackendSQLite stores data in a local SQLite database.
	BackendSQLite = "sqlite"
	// BackendFile stores the whole collection in one JSON file (simple mode).
	BackendFile = "file"
)

// Config is the on-disk configuration.
type Config struct {
	Backend      string `toml:"backend"`       // sqlite | file
	DBPath       string `toml:"db_path"`       // empty selects the default location
	DataPath     string `toml:"data_path"`     // simple-mode JSON file
	LogPath      string `toml:"log_path"`      // empty disables file logging
	DefaultColor string `toml:"default_color"` // color for new tasks
}

// ResolveConfigPath returns the config file location under the user config
// directory, falling back to the working directory.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "foco", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults first if the
// file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.DefaultColor == "" {
		cfg.DefaultColor = "blue"
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Backend:      BackendSQLite,
		DefaultColor: "blue",
	}
}
