package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gotrig.yaml")

	cfg := DefaultConfig()
	cfg.Port = 9999
	cfg.ReadTimeout = 30
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Port != 9999 {
		t.Errorf("want port 9999, got %d", loaded.Port)
	}
	if loaded.ReadTimeout != 30 {
		t.Errorf("want read timeout 30, got %d", loaded.ReadTimeout)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte("port: 1234\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 1234 {
		t.Errorf("want port 1234, got %d", cfg.Port)
	}
	// unspecified fields keep their defaults
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("want default max body bytes, got %d", cfg.MaxBodyBytes)
	}
	if cfg.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("want default idle timeout, got %d", cfg.IdleTimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("want error for a missing file")
	}
}
