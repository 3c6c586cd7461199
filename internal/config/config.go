package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAutoAdvanceMS = 500
	maxAutoAdvanceMS     = 10000
)

type Config struct {
	DatabasePath  string `yaml:"database_path"`
	Debug         bool   `yaml:"debug"`
	LogFile       string `yaml:"log_file"`
	AutoAdvanceMS int    `yaml:"auto_advance_ms"`
	DefaultUnit   string `yaml:"default_unit"`
}

func Default() *Config {
	return &Config{
		AutoAdvanceMS: DefaultAutoAdvanceMS,
		DefaultUnit:   "kg",
	}
}

// AutoAdvance is the delay between finishing an exercise's last set and
// moving to the next exercise.
func (c *Config) AutoAdvance() time.Duration {
	return time.Duration(c.AutoAdvanceMS) * time.Millisecond
}

// DefaultPath returns ~/.config/liftr/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "liftr", "config.yaml"), nil
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults are used instead.
// Env vars:
//
//	LIFTR_DB_PATH, LIFTR_DEBUG, LIFTR_LOG_FILE,
//	LIFTR_AUTO_ADVANCE_MS, LIFTR_DEFAULT_UNIT
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTR_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("LIFTR_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("LIFTR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LIFTR_AUTO_ADVANCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.AutoAdvanceMS = ms
		}
	}
	if v := os.Getenv("LIFTR_DEFAULT_UNIT"); v != "" {
		cfg.DefaultUnit = v
	}
}

// SetAutoAdvanceMS overrides the auto-advance delay with the same bounds
// as the config file.
func (c *Config) SetAutoAdvanceMS(ms int) error {
	prev := c.AutoAdvanceMS
	c.AutoAdvanceMS = ms
	if err := c.validate(); err != nil {
		c.AutoAdvanceMS = prev
		return err
	}
	return nil
}

func (c *Config) validate() error {
	if c.AutoAdvanceMS < 0 || c.AutoAdvanceMS > maxAutoAdvanceMS {
		return fmt.Errorf("auto_advance_ms must be between 0 and %d", maxAutoAdvanceMS)
	}
	if c.DefaultUnit != "kg" && c.DefaultUnit != "lbs" {
		return fmt.Errorf("default_unit must be kg or lbs, got %q", c.DefaultUnit)
	}
	return nil
}
