// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Chart   ChartConfig   `toml:"chart"`
	Import  ImportConfig  `toml:"import"`
}

// StorageConfig maps storage settings.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
	JSON  *bool   `toml:"json"`
}

// ChartConfig maps progress chart settings.
type ChartConfig struct {
	Height *int `toml:"height"`
	Window *int `toml:"window"`
}

// ImportConfig maps CSV import settings.
type ImportConfig struct {
	Mode *string `toml:"mode"`
}

// Template is written by `trainlog config` when no config file exists yet.
const Template = `# trainlog configuration

[storage]
# backend = "json"   # json | sqlite
# path = ""          # defaults to the XDG data directory

[log]
# level = "info"
# file = ""          # "-" logs to stderr
# json = false

[chart]
# height = 10
# window = 1         # moving-average window for progress curves

[import]
# mode = "append"    # append | replace
`

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// EnsureFile creates path with the commented template when it is missing.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
