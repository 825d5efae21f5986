// Package config loads the Orbital daemon configuration from YAML with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/asheem/orbital/internal/control"
	"github.com/asheem/orbital/internal/scene"
)

// Config is the top-level YAML configuration for the Orbital daemon.
// Defaults and validation live here so the rest of the code can assume a
// well-formed config.
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Camera configuration
	Camera CameraConfig `yaml:"camera"`

	// Scene configuration
	Scene SceneConfig `yaml:"scene"`

	// Motion mapper tuning. Values stored in the database take precedence
	// once the daemon has run at least once.
	Tuning control.Tuning `yaml:"tuning"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir,omitempty"`
	DBPath    string `yaml:"db_path,omitempty"`
}

type CameraConfig struct {
	DeviceID int `yaml:"device_id"`

	// MotionThreshold is the percentage of changed pixels that wakes the
	// pipeline out of idle mode.
	MotionThreshold float64 `yaml:"motion_threshold"`
}

type SceneConfig struct {
	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`
}

// Default returns a fully-populated Config with defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Camera: CameraConfig{
			DeviceID:        0,
			MotionThreshold: 1.0,
		},
		Scene: SceneConfig{
			MinZoom: scene.DefaultMinZoom,
			MaxZoom: scene.DefaultMaxZoom,
		},
		Tuning: control.DefaultTuning(),
	}
}

// Load reads the configuration from path, applies environment overrides
// and validates the result. A missing file is not an error; defaults plus
// environment overrides are used instead.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv overrides config fields from ORBITAL_* environment variables.
// Only the fields useful for one-off overrides are exposed this way.
func (c *Config) applyEnv() {
	if v := os.Getenv("ORBITAL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ORBITAL_STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv("ORBITAL_DB_PATH"); v != "" {
		c.Server.DBPath = v
	}
	if v := os.Getenv("ORBITAL_CAMERA_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			c.Camera.DeviceID = id
		}
	}
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Camera.DeviceID < 0 {
		return fmt.Errorf("camera.device_id must not be negative, got %d", c.Camera.DeviceID)
	}
	if c.Camera.MotionThreshold <= 0 || c.Camera.MotionThreshold > 100 {
		return fmt.Errorf("camera.motion_threshold must be in (0, 100], got %g", c.Camera.MotionThreshold)
	}
	if c.Scene.MinZoom <= 0 || c.Scene.MaxZoom <= c.Scene.MinZoom {
		return fmt.Errorf("scene zoom bounds invalid: min %g, max %g", c.Scene.MinZoom, c.Scene.MaxZoom)
	}
	return nil
}

// DBPath returns the configured database path, falling back to
// ~/.orbital/orbital.db. The parent directory is created when missing.
func (c *Config) DBPath() (string, error) {
	if c.Server.DBPath != "" {
		return c.Server.DBPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dbDir := filepath.Join(homeDir, ".orbital")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(dbDir, "orbital.db"), nil
}
