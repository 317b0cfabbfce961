// Package config loads cosmetic user preferences for the rask CLI from a
// YAML file under the user config directory, with RASK_* environment
// variable overrides. Core roadmap behavior never depends on these settings.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Settings holds all user preferences.
type Settings struct {
	// Color enables colored terminal output
	Color bool `yaml:"color"`

	// DetailedList makes `rask list` show details by default
	DetailedList bool `yaml:"detailed_list"`

	// Logging controls the structured logger
	Logging LoggingSettings `yaml:"logging"`
}

// LoggingSettings mirrors the logger configuration in YAML form.
type LoggingSettings struct {
	Level      string `yaml:"level"`
	FilePath   string `yaml:"file_path"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() *Settings {
	return &Settings{
		Color: true,
		Logging: LoggingSettings{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
	}
}

var (
	globalSettings *Settings
	settingsOnce   sync.Once
	settingsErr    error
)

// Get returns the global settings, loading them once. Safe for concurrent use.
func Get() (*Settings, error) {
	settingsOnce.Do(func() {
		globalSettings, settingsErr = Load()
	})
	return globalSettings, settingsErr
}

// Load reads settings from the first config file found, then applies
// environment overrides. A missing file is not an error.
func Load() (*Settings, error) {
	s := Defaults()
	for _, path := range Paths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, err
		}
		break
	}
	s.applyEnvOverrides()
	return s, nil
}

// applyEnvOverrides applies RASK_* environment variables on top of the file.
func (s *Settings) applyEnvOverrides() {
	if val := os.Getenv("RASK_COLOR"); val != "" {
		s.Color = val == "true" || val == "1" || val == "yes"
	}
	if val := os.Getenv("RASK_DETAILED_LIST"); val != "" {
		s.DetailedList = val == "true" || val == "1" || val == "yes"
	}
	if val := os.Getenv("RASK_LOG_LEVEL"); val != "" {
		s.Logging.Level = val
	}
	if val := os.Getenv("RASK_LOG_FILE"); val != "" {
		s.Logging.FilePath = val
	}
}

// Paths returns the config file search order.
func Paths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "rask", "config.yaml"),
		filepath.Join(xdg.ConfigHome, "rask", "config.yml"),
	}
}

// Reload drops the cached settings and loads them again.
func Reload() (*Settings, error) {
	settingsOnce = sync.Once{}
	return Get()
}

// WriteExample writes a commented example configuration file.
func WriteExample(path string) error {
	example := `# rask configuration file
# Place this file at ` + filepath.Join("$XDG_CONFIG_HOME", "rask", "config.yaml") + `

# Colored terminal output
color: true

# Show task details in list output by default
detailed_list: false

# Structured logging
logging:
  # debug, info, warn, error
  level: info
  # Log file path; empty logs to the console only
  file_path: ""
  # Also log to the console when a file is configured
  console: false
  max_size_mb: 10
  max_backups: 3
  max_age_days: 14
  compress: true
`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(example), 0644)
}
