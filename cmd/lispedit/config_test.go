package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RewriterURL != defaultConfig().RewriterURL {
		t.Fatalf("url=%q, want default", cfg.RewriterURL)
	}
	if cfg.RewriterTimeout() != 30*time.Second {
		t.Fatalf("timeout=%v, want 30s", cfg.RewriterTimeout())
	}
}

func TestLoadConfig_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rewriter_url: ws://example.test/rw\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RewriterURL != "ws://example.test/rw" {
		t.Fatalf("url=%q", cfg.RewriterURL)
	}
	if cfg.RewriterTimeout() != 30*time.Second {
		t.Fatalf("timeout=%v, want default 30s", cfg.RewriterTimeout())
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(": not yaml"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("want parse error")
	}
}
