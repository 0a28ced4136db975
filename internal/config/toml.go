// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
}

// GenerateConfig maps generation-related settings.
type GenerateConfig struct {
	Numbers     *bool   `toml:"numbers"`
	Letters     *bool   `toml:"letters"`
	Special     *bool   `toml:"special"`
	BothCases   *bool   `toml:"both-cases"`
	Length      *int    `toml:"length"`
	Count       *int    `toml:"count"`
	SaveDir     *string `toml:"save-dir"`
	LegacyPools *bool   `toml:"legacy-pools"`
	History     *bool   `toml:"history"`
}

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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
