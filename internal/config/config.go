// Package config holds the gribtmpl command line configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sdifrance/gribtemplates/catalog"
)

// Config is the gribtmpl configuration file.
type Config struct {
	// CatalogPath names a YAML file of code table entries laid over the
	// built-in tables.
	CatalogPath string `yaml:"catalog_path"`
	Color       bool   `yaml:"color"`
	// GridPoints is the grid size used to read bitmaps; 0 derives it from
	// the bitmap section length.
	GridPoints int   `yaml:"grid_points"`
	Discipline uint8 `yaml:"discipline"`
	Workers    int   `yaml:"workers"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Color:   true,
		Workers: 4,
	}
}

// LoadConfig loads configuration from the specified path. Keys the file
// leaves out keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.GridPoints < 0 {
		return fmt.Errorf("grid_points must not be negative, got %d", c.GridPoints)
	}
	return nil
}

// Catalog returns the built-in tables, with the entries of CatalogPath laid
// over them when it is set.
func (c *Config) Catalog() (*catalog.Table, error) {
	if c.CatalogPath == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(c.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	t, err := catalog.Overlay(catalog.Default(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", c.CatalogPath, err)
	}
	return t, nil
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
