package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"make10/internal/bridge"
)

// Default values used when neither the config file nor the environment set a field
const (
	DefaultAddr     = ":8080"
	DefaultDBPath   = "./make10.db"
	DefaultLogLevel = "info"
)

type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Cache    Cache    `toml:"cache"`
	Log      Log      `toml:"log"`
}

type Server struct {
	Addr string `toml:"addr"`
}

type Database struct {
	Path    string `toml:"path"`
	Disable bool   `toml:"disable"` // Serve without recording lookups
}

type Cache struct {
	Strategy string `toml:"strategy"` // "cached" or "transient"
}

type Log struct {
	Level       string `toml:"level"` // debug, info, warn, error
	Development bool   `toml:"development"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server:   Server{Addr: DefaultAddr},
		Database: Database{Path: DefaultDBPath},
		Cache:    Cache{Strategy: bridge.StrategyCached},
		Log:      Log{Level: DefaultLogLevel},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No config file, keep defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MAKE10_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("MAKE10_STRATEGY"); v != "" {
		c.Cache.Strategy = v
	}
	if v := os.Getenv("MAKE10_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if !c.Database.Disable && c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty unless database.disable is set")
	}
	switch c.Cache.Strategy {
	case bridge.StrategyCached, bridge.StrategyTransient:
	default:
		return fmt.Errorf("cache.strategy must be %q or %q, got %q",
			bridge.StrategyCached, bridge.StrategyTransient, c.Cache.Strategy)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}
