package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(envConfigPath, want)
	if got := configPath(); got != want {
		t.Fatalf("config path mismatch: got %q want %q", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("loadConfig returned error: %v", err)
		}
		if cfg != (Config{}) {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "log_level: debug\nlog_format: json\ncontainer: tar\nformat_version: 5\nserver_address: 0.0.0.0:9000\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig returned error: %v", err)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.Container != "tar" || cfg.ServerAddress != "0.0.0.0:9000" {
			t.Fatalf("config mismatch: %+v", cfg)
		}
		if cfg.FormatVersion == nil || *cfg.FormatVersion != 5 {
			t.Fatalf("format_version mismatch: %v", cfg.FormatVersion)
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("log_level: [unterminated"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := loadConfig(path); err == nil {
			t.Fatal("expected an error for malformed yaml")
		}
	})
}
