package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if !s.Color {
		t.Error("Color should default to true")
	}
	if s.DetailedList {
		t.Error("DetailedList should default to false")
	}
	if s.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", s.Logging.Level, "info")
	}
	if s.Logging.MaxSizeMB != 10 {
		t.Errorf("Logging.MaxSizeMB = %d, want 10", s.Logging.MaxSizeMB)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RASK_COLOR", "false")
	t.Setenv("RASK_DETAILED_LIST", "1")
	t.Setenv("RASK_LOG_LEVEL", "debug")
	t.Setenv("RASK_LOG_FILE", "/tmp/rask.log")

	s := Defaults()
	s.applyEnvOverrides()

	if s.Color {
		t.Error("RASK_COLOR=false not applied")
	}
	if !s.DetailedList {
		t.Error("RASK_DETAILED_LIST=1 not applied")
	}
	if s.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", s.Logging.Level, "debug")
	}
	if s.Logging.FilePath != "/tmp/rask.log" {
		t.Errorf("Logging.FilePath = %q", s.Logging.FilePath)
	}
}

func TestEnvOverridesIgnoreUnset(t *testing.T) {
	t.Setenv("RASK_COLOR", "")
	s := Defaults()
	s.applyEnvOverrides()
	if !s.Color {
		t.Error("empty RASK_COLOR should leave the default alone")
	}
}

func TestWriteExampleIsValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rask", "config.yaml")
	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if !s.Color {
		t.Error("example config should enable color")
	}
	if s.Logging.Level != "info" {
		t.Errorf("example Logging.Level = %q, want %q", s.Logging.Level, "info")
	}
}

func TestPathsOrder(t *testing.T) {
	paths := Paths()
	if len(paths) != 2 {
		t.Fatalf("len(Paths) = %d, want 2", len(paths))
	}
	if filepath.Base(paths[0]) != "config.yaml" {
		t.Errorf("paths[0] = %q, want config.yaml first", paths[0])
	}
	if filepath.Base(paths[1]) != "config.yml" {
		t.Errorf("paths[1] = %q, want config.yml second", paths[1])
	}
}
