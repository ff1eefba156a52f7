package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Session  SessionConfig
	UI       UIConfig
	Cache    CacheConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
	Seed bool
}

// SessionConfig names who is looking at profiles.
type SessionConfig struct {
	Viewer string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Platform  string
	TileWidth int `mapstructure:"tile_width"`
}

// CacheConfig sizes the friend tile cache.
type CacheConfig struct {
	Size int
}

// LogConfig points the debug log somewhere that is not the terminal.
type LogConfig struct {
	Path string
}

func defaultDir(kind string) string {
	return filepath.Join(os.Getenv("HOME"), kind, "profileview")
}

func configPath() string {
	if p := os.Getenv("PROFILEVIEW_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(defaultDir(".config"), "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix PROFILEVIEW_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "profileview", "profileview.db"))
	v.SetDefault("database.seed", true)
	v.SetDefault("session.viewer", "chris")
	v.SetDefault("ui.platform", "terminal")
	v.SetDefault("ui.tile_width", 0)
	v.SetDefault("cache.size", 512)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "profileview", "debug.log"))

	path := configPath()
	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("PROFILEVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Session.Viewer = strings.TrimSpace(c.Session.Viewer)
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.seed", cfg.Database.Seed)
	v.Set("session.viewer", cfg.Session.Viewer)
	v.Set("ui.platform", cfg.UI.Platform)
	v.Set("ui.tile_width", cfg.UI.TileWidth)
	v.Set("cache.size", cfg.Cache.Size)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
