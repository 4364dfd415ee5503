package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// OBSConfig points at an obs-websocket server used for per-cue scene switching
type OBSConfig struct {
	Addr     string `json:"addr,omitempty"` // host:port, empty disables OBS
	Password string `json:"password,omitempty"`
	Timeout  string `json:"timeout,omitempty"` // e.g. "2s"
}

// Config is the main configuration structure
type Config struct {
	// Input and Output are port name substrings; an empty Input listens to every port
	Input  string `json:"input,omitempty"`
	Output string `json:"output,omitempty"`

	Channel     int  `json:"channel,omitempty"` // 1-16, 0 = all
	MinVelocity int  `json:"minVelocity"`
	Debug       bool `json:"debug,omitempty"`

	Score      string `json:"score,omitempty"`
	WatchScore bool   `json:"watchScore,omitempty"`

	Palette string    `json:"palette,omitempty"` // GIMP .gpl palette
	OBS     OBSConfig `json:"obs,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MinVelocity: 1,
		OBS: OBSConfig{
			Timeout: "2s",
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "score-follower"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, or returns defaults if it does not exist.
// Fields missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// may hold the OBS password
	return os.WriteFile(path, data, 0600)
}

// Validate checks ranges
func (c *Config) Validate() error {
	if c.Channel < 0 || c.Channel > 16 {
		return fmt.Errorf("channel must be 0-16, got %d", c.Channel)
	}
	if c.MinVelocity < 0 || c.MinVelocity > 127 {
		return fmt.Errorf("minVelocity must be 0-127, got %d", c.MinVelocity)
	}
	if _, err := c.OBSTimeout(); err != nil {
		return err
	}
	return nil
}

// OBSTimeout parses OBS.Timeout (0 when empty)
func (c *Config) OBSTimeout() (time.Duration, error) {
	if c.OBS.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.OBS.Timeout)
	if err != nil {
		return 0, fmt.Errorf("obs.timeout: %w", err)
	}
	return d, nil
}
