// Package config provides configuration loading and structs for the erabu server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Selection SelectionConfig `yaml:"selection"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CatalogConfig describes where the catalog is read from.
type CatalogConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // auto, raw, normalized or xlsx
	Watch  *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether to reload the catalog on change; defaults to true when unset.
func (c *CatalogConfig) WatchOrDefault() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return true
}

// SelectionConfig holds selection, ranking and card budget settings.
type SelectionConfig struct {
	DefaultLimit        int     `yaml:"default_limit"`
	MaxLimit            int     `yaml:"max_limit"`
	MaxResults          int     `yaml:"max_results"`
	SimilarLimit        int     `yaml:"similar_limit"`
	RRFK                float64 `yaml:"rrf_k"`
	DescriptionMaxChars int     `yaml:"description_max_chars"`
	MaxCardTags         int     `yaml:"max_card_tags"`
	CurrencySymbol      string  `yaml:"currency_symbol"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	cfg.Catalog.Path = expandPath(cfg.Catalog.Path, filepath.Dir(path))
	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
