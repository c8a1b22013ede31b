// Package config loads the azcfg configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "AZCFG_CONFIG"

const (
	BackendCLI = "cli"
	BackendSDK = "sdk"
)

type Config struct {
	// Backend selects how requests reach Azure: through the az CLI or
	// through the Azure SDK.
	Backend      string `yaml:"backend"`
	Subscription string `yaml:"subscription"`
	Output       string `yaml:"output"`

	Log struct {
		Level      string `yaml:"level"`
		Dir        string `yaml:"dir"`
		Filename   string `yaml:"filename"`
		MaxAge     int    `yaml:"max_age"`     // hours
		RotateTime int    `yaml:"rotate_time"` // hours
	} `yaml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Backend: BackendCLI,
		Output:  "json",
	}
	cfg.Log.Level = "WARN"
	cfg.Log.Filename = "azcfg.log"
	cfg.Log.MaxAge = 24
	cfg.Log.RotateTime = 1
	return cfg
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCLI, BackendSDK:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendCLI, BackendSDK, c.Backend)
	}
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("output must be \"json\" or \"yaml\", got %q", c.Output)
	}
	if c.Log.MaxAge < 0 || c.Log.RotateTime < 0 {
		return fmt.Errorf("log max_age and rotate_time must not be negative")
	}
	return nil
}

// DefaultPath returns $AZCFG_CONFIG or <user config dir>/azcfg/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "azcfg", "config.yaml")
}

// LoadConfig reads filename over the defaults. A missing file is not an
// error.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
