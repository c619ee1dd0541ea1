// Package config loads CLI configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/mdpress/internal/fileutil"
	"github.com/alnah/mdpress/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// Config holds all configuration for document generation.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Page   PageConfig   `yaml:"page"`
	CSS    CSSConfig    `yaml:"css"`
	Render RenderConfig `yaml:"render"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// PageConfig defines page layout options.
type PageConfig struct {
	MarginPixels int `yaml:"marginPixels"` // Uniform page margin in pixels
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, file path, or inline CSS (empty = built-in default)
}

// RenderConfig defines PDF rendering options.
type RenderConfig struct {
	Timeout string `yaml:"timeout"` // Duration string, e.g. "30s" (empty = default)
	Workers int    `yaml:"workers"` // Parallel workers for batch conversion (0 = auto)
}

// DefaultMarginPixels mirrors the library default so an absent config and
// an absent flag agree.
const DefaultMarginPixels = 50

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Page: PageConfig{MarginPixels: DefaultMarginPixels},
	}
}

// Validate checks config values that are not validated downstream.
func (c *Config) Validate() error {
	if c.Page.MarginPixels < 0 {
		return fmt.Errorf("%w: page.marginPixels must be >= 0, got %d", ErrInvalidConfig, c.Page.MarginPixels)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: render.workers must be >= 0, got %d", ErrInvalidConfig, c.Render.Workers)
	}
	if c.Render.Timeout != "" {
		if _, err := time.ParseDuration(c.Render.Timeout); err != nil {
			return fmt.Errorf("%w: render.timeout: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/mdpress/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "mdpress", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
