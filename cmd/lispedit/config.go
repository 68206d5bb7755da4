package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tool settings. Everything has a default; the config
// file is optional.
type Config struct {
	// RewriterURL is the websocket endpoint of the require-rewriter
	// backend used by the requires tidy/trim/base commands.
	RewriterURL string `yaml:"rewriter_url"`

	// RewriterTimeoutSeconds bounds one rewriter round trip.
	RewriterTimeoutSeconds int `yaml:"rewriter_timeout_seconds"`
}

// RewriterTimeout returns the round-trip bound as a duration. Zero and
// negative settings fall back to the default.
func (c Config) RewriterTimeout() time.Duration {
	if c.RewriterTimeoutSeconds <= 0 {
		return time.Duration(defaultConfig().RewriterTimeoutSeconds) * time.Second
	}
	return time.Duration(c.RewriterTimeoutSeconds) * time.Second
}

func defaultConfig() Config {
	return Config{
		RewriterURL:            "ws://127.0.0.1:9583/rewrite",
		RewriterTimeoutSeconds: 30,
	}
}

// LoadConfig reads path, or the default location when path is empty. A
// missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "lispedit", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
