package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerURL != "" || cfg.APIKey != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	err := Save(dir, &Config{
		ServerURL: "https://uh.example.com",
		APIKey:    "secret",
		Interval:  "5m",
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerURL != "https://uh.example.com" {
		t.Errorf("server url = %s", cfg.ServerURL)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("api key = %s", cfg.APIKey)
	}
	if cfg.Interval != "5m" {
		t.Errorf("interval = %s", cfg.Interval)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Config{ServerURL: "https://file.example.com", APIKey: "file-key"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("NSISYNC_SERVER_URL", "https://env.example.com")
	t.Setenv("NSISYNC_INTERVAL", "30s")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerURL != "https://env.example.com" {
		t.Errorf("env must win: %s", cfg.ServerURL)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("unset env must not clear file value: %s", cfg.APIKey)
	}
	if cfg.SyncInterval() != 30*time.Second {
		t.Errorf("interval = %v", cfg.SyncInterval())
	}
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Config{ServerURL: "https://uh.example.com"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	err := Update(dir, func(c *Config) {
		c.APIKey = "rotated"
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerURL != "https://uh.example.com" {
		t.Errorf("update clobbered server url: %s", cfg.ServerURL)
	}
	if cfg.APIKey != "rotated" {
		t.Errorf("api key = %s", cfg.APIKey)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Config{ServerURL: "x"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, ".nsisync"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "config.json" {
			t.Errorf("unexpected file %s", e.Name())
		}
	}
}

func TestSyncIntervalFallback(t *testing.T) {
	tests := []struct {
		interval string
		want     time.Duration
	}{
		{"", time.Minute},
		{"nonsense", time.Minute},
		{"-5m", time.Minute},
		{"2m30s", 2*time.Minute + 30*time.Second},
	}
	for _, tt := range tests {
		cfg := &Config{Interval: tt.interval}
		if got := cfg.SyncInterval(); got != tt.want {
			t.Errorf("SyncInterval(%q) = %v, want %v", tt.interval, got, tt.want)
		}
	}
}
