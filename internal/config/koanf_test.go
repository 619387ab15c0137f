// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultK != 10 {
		t.Errorf("Expected default k 10, got %d", cfg.Recommend.DefaultK)
	}
	if !slices.Equal(cfg.Recommend.AllowedK, []int{5, 10, 15, 20}) {
		t.Errorf("Expected allowed k [5 10 15 20], got %v", cfg.Recommend.AllowedK)
	}
	if cfg.Recommend.DefaultMode != "auto" {
		t.Errorf("Expected default mode auto, got %s", cfg.Recommend.DefaultMode)
	}
	if cfg.Recommend.MaxDiversity != 10 || cfg.Recommend.DefaultDiversity != 5 {
		t.Errorf("Expected diversity 5 of 10, got %v of %v", cfg.Recommend.DefaultDiversity, cfg.Recommend.MaxDiversity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}
	if cfg.Data.CatalogPath != "/data/catalog.csv" {
		t.Errorf("Expected default catalog path, got %s", cfg.Data.CatalogPath)
	}
	if cfg.Reload.Interval != 5*time.Minute {
		t.Errorf("Expected reload interval 5m, got %v", cfg.Reload.Interval)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOBLEND_CATALOG_PATH", "/srv/catalog.csv")
	t.Setenv("RECOMMEND_ALLOWED_K", "3, 6,9")
	t.Setenv("RECOMMEND_DEFAULT_K", "6")
	t.Setenv("RECOMMEND_DEFAULT_MODE", "hybrid")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RELOAD_INTERVAL", "30s")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Data.CatalogPath != "/srv/catalog.csv" {
		t.Errorf("Expected catalog path /srv/catalog.csv, got %s", cfg.Data.CatalogPath)
	}
	if !slices.Equal(cfg.Recommend.AllowedK, []int{3, 6, 9}) {
		t.Errorf("Expected allowed k [3 6 9], got %v", cfg.Recommend.AllowedK)
	}
	if cfg.Recommend.DefaultMode != "hybrid" {
		t.Errorf("Expected mode hybrid, got %s", cfg.Recommend.DefaultMode)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Expected two CORS origins, got %v", cfg.Security.CORSOrigins)
	}
	if cfg.Reload.Interval != 30*time.Second {
		t.Errorf("Expected reload interval 30s, got %v", cfg.Reload.Interval)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	content := `
server:
  port: 7070
data:
  content_path: /srv/features.csv
recommend:
  max_diversity: 4
  default_diversity: 1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7171")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	// Environment wins over the file.
	if cfg.Server.Port != 7171 {
		t.Errorf("Expected port 7171, got %d", cfg.Server.Port)
	}
	if cfg.Data.ContentPath != "/srv/features.csv" {
		t.Errorf("Expected content path from file, got %s", cfg.Data.ContentPath)
	}
	if cfg.Recommend.MaxDiversity != 4 || cfg.Recommend.DefaultDiversity != 1 {
		t.Errorf("Expected diversity 1 of 4, got %v of %v", cfg.Recommend.DefaultDiversity, cfg.Recommend.MaxDiversity)
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "70000")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("Expected validation error for port 70000")
	}
	if !strings.Contains(err.Error(), "HTTP_PORT") {
		t.Errorf("Expected error to mention HTTP_PORT, got: %v", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
	if got := findConfigFile(); got != "" {
		t.Errorf("Expected no config file, got %s", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("logging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("Expected config.yaml, got %q", got)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_FORMAT", "logging.format"},
		{"RECOBLEND_INTERACTIONS_PATH", "data.interactions_path"},
		{"RECOMMEND_CACHE_TTL", "recommend.cache_ttl"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"missing catalog", func(c *Config) { c.Data.CatalogPath = "" }, "RECOBLEND_CATALOG_PATH"},
		{"missing content", func(c *Config) { c.Data.ContentPath = "" }, "RECOBLEND_CONTENT_PATH"},
		{"interactions optional", func(c *Config) { c.Data.InteractionsPath = "" }, ""},
		{"max k below default", func(c *Config) { c.Recommend.MaxK = 5 }, "RECOMMEND_MAX_K"},
		{"allowed k above max", func(c *Config) { c.Recommend.AllowedK = []int{5, 25} }, "RECOMMEND_ALLOWED_K"},
		{"empty allowed k", func(c *Config) { c.Recommend.AllowedK = nil }, ""},
		{"default diversity out of range", func(c *Config) { c.Recommend.DefaultDiversity = 11 }, "RECOMMEND_DEFAULT_DIVERSITY"},
		{"bad mode", func(c *Config) { c.Recommend.DefaultMode = "random" }, "RECOMMEND_DEFAULT_MODE"},
		{"cache without ttl", func(c *Config) { c.Recommend.CacheTTL = 0 }, "RECOMMEND_CACHE_TTL"},
		{"cache disabled without ttl", func(c *Config) {
			c.Recommend.CacheEnabled = false
			c.Recommend.CacheTTL = 0
		}, ""},
		{"reload without interval", func(c *Config) { c.Reload.Interval = 0 }, "RELOAD_INTERVAL"},
		{"reload disabled without interval", func(c *Config) {
			c.Reload.Enabled = false
			c.Reload.Interval = 0
		}, ""},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQS"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
