package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the shputil configuration.
type Config struct {
	Shapefile Paths    `yaml:"shapefile"`
	Port      int      `yaml:"port"`
	Bind      string   `yaml:"bind"`
	Security  Security `yaml:"security"`
	Decoding  Decoding `yaml:"decoding"`
}

// Paths locates the three files of the shapefile triplet. Shx and Dbf may
// be left empty to derive them from the main file path.
type Paths struct {
	Shp string `yaml:"shp"`
	Shx string `yaml:"shx"`
	Dbf string `yaml:"dbf"`
}

// Security contains security-related configuration.
type Security struct {
	// APIKey protects the HTTP API when set; empty disables authentication.
	APIKey string `yaml:"api_key"`
}

// Decoding contains decoder behavior configuration.
type Decoding struct {
	// Strict rejects unknown shape type codes instead of decoding them as
	// null shapes.
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Bind: "127.0.0.1",
	}
}

// ResolvePaths fills the index and attribute paths from the main file path
// when they are unset, swapping the .shp extension.
func (c *Config) ResolvePaths() {
	base := strings.TrimSuffix(c.Shapefile.Shp, filepath.Ext(c.Shapefile.Shp))
	if c.Shapefile.Shx == "" {
		c.Shapefile.Shx = base + ".shx"
	}
	if c.Shapefile.Dbf == "" {
		c.Shapefile.Dbf = base + ".dbf"
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./shputil.yaml"
	}
	return filepath.Join(homeDir, ".config", "shputil", "config.yaml")
}
