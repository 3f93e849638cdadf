/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"gopkg.in/yaml.v3"
)

// Config represents the aion2loc configuration
type Config struct {
	WorkDir   string    `yaml:"work_dir"`
	GamePath  string    `yaml:"game_path"`
	Codec     Codec     `yaml:"codec"`
	Updater   Updater   `yaml:"updater"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
	Snapshots Snapshots `yaml:"snapshots"`
}

// Codec contains the decoder safety ceilings
type Codec struct {
	MaxKeySpan   int `yaml:"max_key_span"`
	MaxValueSpan int `yaml:"max_value_span"`
}

// Updater contains the localization download settings
type Updater struct {
	URL            string        `yaml:"url"`
	TargetSubpath  string        `yaml:"target_subpath"`
	TargetFilename string        `yaml:"target_filename"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Server contains HTTP service settings
type Server struct {
	Port   int    `yaml:"port"`
	Bind   string `yaml:"bind"`
	APIKey string `yaml:"api_key"` // optional; required in X-API-Key when set
}

// Logging contains logging configuration
type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Snapshots contains the snapshot archive location
type Snapshots struct {
	Dir string `yaml:"dir"`
}

const (
	DefaultDownloadURL    = "https://github.com/Holastor/AION-2-Localization/raw/refs/heads/main/Localization%20pak%20file/pakchunk502000-Windows_9999_P.pak"
	DefaultTargetFilename = "pakchunk502000-Windows_9999_P.pak"
)

// DefaultTargetSubpath is where the pak file lives inside the game directory
var DefaultTargetSubpath = filepath.Join("Aion2", "Content", "Paks", "L10N", "Text", "en-US")

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		WorkDir: ".",
		Codec: Codec{
			MaxKeySpan:   codec.DefaultMaxKeySpan,
			MaxValueSpan: codec.DefaultMaxValueSpan,
		},
		Updater: Updater{
			URL:            DefaultDownloadURL,
			TargetSubpath:  DefaultTargetSubpath,
			TargetFilename: DefaultTargetFilename,
			Timeout:        10 * time.Minute,
		},
		Server: Server{
			Port: 9300,
			Bind: "127.0.0.1",
		},
		Logging: Logging{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Snapshots: Snapshots{
			Dir: "./snapshots",
		},
	}
}

// LoadConfig loads configuration from the specified path. Fields missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

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

// SaveConfig saves the configuration to the specified path with secure permissions
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

// BootstrapConfig creates and saves a default configuration, optionally
// recording the game path
func BootstrapConfig(configPath string, gamePath string) (*Config, error) {
	config := DefaultConfig()
	if gamePath != "" {
		config.GamePath = filepath.Clean(gamePath)
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// Validate checks values that would make the tool misbehave
func (c *Config) Validate() error {
	var errs []error
	if c.Codec.MaxKeySpan <= 0 {
		errs = append(errs, fmt.Errorf("codec.max_key_span must be positive, got %d", c.Codec.MaxKeySpan))
	}
	if c.Codec.MaxValueSpan <= 0 {
		errs = append(errs, fmt.Errorf("codec.max_value_span must be positive, got %d", c.Codec.MaxValueSpan))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("unknown logging.level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// CodecLimits returns the decoder limits described by the configuration
func (c *Config) CodecLimits() codec.Limits {
	return codec.Limits{
		MaxKeySpan:   c.Codec.MaxKeySpan,
		MaxValueSpan: c.Codec.MaxValueSpan,
	}
}

// TargetPath returns the full path of the localization pak inside the game directory
func (c *Config) TargetPath() string {
	return filepath.Join(c.GamePath, c.Updater.TargetSubpath, c.Updater.TargetFilename)
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./aion2loc.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "aion2loc")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
