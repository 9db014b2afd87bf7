// Package config provides configuration loading and management for labelmesh.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"labelmesh/pkg/atlas"
	"labelmesh/pkg/palette"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// Workers is the number of labels extracted concurrently
		Workers int `yaml:"workers"`

		// IsoLabel is the voxel value that marks label membership
		IsoLabel uint8 `yaml:"isoLabel"`

		// Delta is the marching cubes sampling step in voxels
		Delta float64 `yaml:"delta"`

		// SearchIterations refines each surface vertex by bisection
		SearchIterations int `yaml:"searchIterations"`

		// SmoothIterations runs area smoothing on extracted surfaces
		SmoothIterations int `yaml:"smoothIterations"`
	} `yaml:"processing"`

	// Palette parameters
	Palette struct {
		// Scheme is "hsv" or "indexed". A catalog file declares its own
		// scheme, which takes precedence.
		Scheme palette.Scheme `yaml:"scheme"`

		// CatalogFile is a YAML or TOML label catalog. Empty uses the
		// built-in catalog.
		CatalogFile string `yaml:"catalogFile"`
	} `yaml:"palette"`

	// Atlas parameters
	Atlas struct {
		// Enabled turns on slice atlas output
		Enabled bool `yaml:"enabled"`

		// Reverse writes the last label slice as the first atlas image
		Reverse bool `yaml:"reverse"`

		// Format is png, tiff or bmp
		Format string `yaml:"format"`

		// BackgroundDir holds greyscale slices painted under the labels
		BackgroundDir string `yaml:"backgroundDir"`
	} `yaml:"atlas"`

	// Output parameters
	Output struct {
		// Dir is the directory every output is written to
		Dir string `yaml:"dir"`

		Model    string `yaml:"model"`
		Material string `yaml:"material"`
		Palette  string `yaml:"palette"`

		// AtlasDir is the atlas subdirectory of Dir
		AtlasDir string `yaml:"atlasDir"`

		// Compress gzips the model
		Compress bool `yaml:"compress"`
	} `yaml:"output"`

	// Logging parameters
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.Workers = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.IsoLabel = 1
	cfg.Processing.Delta = 1.0
	cfg.Processing.SearchIterations = 8
	cfg.Processing.SmoothIterations = 0

	// Set default palette parameters
	cfg.Palette.Scheme = palette.HSVRamp

	// Set default atlas parameters
	cfg.Atlas.Enabled = false
	cfg.Atlas.Reverse = true
	cfg.Atlas.Format = string(atlas.PNG)

	// Set default output parameters
	cfg.Output.Dir = "."
	cfg.Output.Model = "output.obj"
	cfg.Output.Material = "material.mtl"
	cfg.Output.Palette = "palette.png"
	cfg.Output.AtlasDir = "atlas"

	cfg.Logging.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := homedir.Expand(configPath)
	if err != nil {
		return nil, fmt.Errorf("error expanding config path: %w", err)
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpandPaths replaces a leading ~ in every configured path with the
// user's home directory.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{
		&c.Palette.CatalogFile,
		&c.Atlas.BackgroundDir,
		&c.Output.Dir,
		&c.Logging.File,
	} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("error expanding path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Processing.Workers < 1 {
		return fmt.Errorf("processing.workers must be at least 1, got %d", c.Processing.Workers)
	}
	if c.Processing.Delta <= 0 {
		return fmt.Errorf("processing.delta must be positive, got %g", c.Processing.Delta)
	}
	if c.Processing.SearchIterations < 0 || c.Processing.SmoothIterations < 0 {
		return fmt.Errorf("processing iterations must not be negative")
	}
	switch c.Palette.Scheme {
	case palette.HSVRamp, palette.Indexed:
	default:
		return fmt.Errorf("palette.scheme must be %q or %q, got %q", palette.HSVRamp, palette.Indexed, c.Palette.Scheme)
	}
	if c.Palette.Scheme == palette.Indexed && c.Palette.CatalogFile == "" {
		return fmt.Errorf("palette.catalogFile is required for the indexed scheme")
	}
	if _, err := atlas.ParseFormat(c.Atlas.Format); err != nil {
		return fmt.Errorf("atlas.format: %w", err)
	}
	if c.Output.Model == "" || c.Output.Material == "" || c.Output.Palette == "" {
		return fmt.Errorf("output file names must not be empty")
	}
	if c.Atlas.Enabled && c.Output.AtlasDir == "" {
		return fmt.Errorf("output.atlasDir must be set when the atlas is enabled")
	}
	return nil
}

// Path joins name onto the output directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.Output.Dir, name)
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	configPath, err := homedir.Expand(configPath)
	if err != nil {
		return fmt.Errorf("error expanding config path: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
