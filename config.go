package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the registry settings.
//
//	path: /_nb/
//	key: change-me-to-32-random-bytes....
//	block_markers: true
//	log_level: debug
type Config struct {
	Path         string `yaml:"path"`
	Key          string `yaml:"key"`
	BlockMarkers bool   `yaml:"block_markers"`
	LogLevel     string `yaml:"log_level"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("core: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data. A missing path defaults to
// DefaultPath; a missing key is an error.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("core: parse config: %w", err)
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("core: config: key is required")
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("core: config: %w", err)
	}
	return &cfg, nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// NewRegistry builds a registry from the config. Extra options are applied
// after the configured ones.
func (c *Config) NewRegistry(opts ...RegistryOption) *Registry {
	base := []RegistryOption{WithPath(c.Path), WithMarkers(c.BlockMarkers)}
	return NewRegistry([]byte(c.Key), append(base, opts...)...)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
