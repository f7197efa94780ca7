package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigPath = "OSRMREADER_CONFIG"

// Config represents the osrmreader configuration file
// (~/.config/osrmreader/config.yaml).
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Container     string `yaml:"container"`
	FormatVersion *int64 `yaml:"format_version"`

	ServerAddress string `yaml:"server_address"`
}

// cfg holds the config file loaded by the root command.
var cfg Config

func configPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "osrmreader", "config.yaml")
}

// loadConfig reads the config file. A missing file yields a zero Config.
func loadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

func applyReaderConfig(c *cli.Command, cfg Config) {
	if cfg.Container != "" && !c.IsSet("container") {
		containerName = cfg.Container
	}
	if cfg.FormatVersion != nil && !c.IsSet("format-version") {
		formatVersion = *cfg.FormatVersion
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	applyReaderConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
