// Package config reads and writes the portal sync configuration stored at
// <base>/.nsisync/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

const configFile = ".nsisync/config.json"
const lockFile = ".nsisync/config.json.lock"

// DefaultInterval is the periodic sync interval when none is configured.
const DefaultInterval = "1m"

// Config holds the sync engine settings.
type Config struct {
	ServerURL string `json:"server_url"`
	APIKey    string `json:"api_key,omitempty"`
	Interval  string `json:"interval,omitempty"`   // duration string, default "1m"
	LogLevel  string `json:"log_level,omitempty"`  // debug|info|warn|error
	LogFormat string `json:"log_format,omitempty"` // text|json
}

// Load reads the config from disk. Environment variables override file
// values: NSISYNC_SERVER_URL, NSISYNC_API_KEY, NSISYNC_INTERVAL.
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	var cfg Config
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("NSISYNC_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("NSISYNC_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("NSISYNC_INTERVAL"); v != "" {
		cfg.Interval = v
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename).
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// Update applies fn to the config under the file lock and saves the result.
func Update(baseDir string, fn func(*Config)) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		fn(cfg)
		return Save(baseDir, cfg)
	})
}

// SyncInterval parses the configured interval, falling back to the default.
func (c *Config) SyncInterval() time.Duration {
	raw := c.Interval
	if raw == "" {
		raw = DefaultInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultInterval)
	}
	return d
}

// withConfigLock serializes access to config.json using flock.
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}
