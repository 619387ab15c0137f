// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package config

import (
	"fmt"
	"slices"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "console"}
	validModes      = []string{"hybrid", "content", "auto"}
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateReload(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.CatalogPath == "" {
		return fmt.Errorf("RECOBLEND_CATALOG_PATH is required")
	}
	if c.Data.ContentPath == "" {
		return fmt.Errorf("RECOBLEND_CONTENT_PATH is required")
	}
	if c.Data.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultK < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be positive")
	}
	if r.MaxK < r.DefaultK {
		return fmt.Errorf("RECOMMEND_MAX_K must be >= RECOMMEND_DEFAULT_K (%d < %d)", r.MaxK, r.DefaultK)
	}
	for _, k := range r.AllowedK {
		if k < 1 || k > r.MaxK {
			return fmt.Errorf("RECOMMEND_ALLOWED_K values must be between 1 and %d, got %d", r.MaxK, k)
		}
	}
	if r.MaxDiversity <= 0 {
		return fmt.Errorf("RECOMMEND_MAX_DIVERSITY must be positive")
	}
	if r.DefaultDiversity < 0 || r.DefaultDiversity > r.MaxDiversity {
		return fmt.Errorf("RECOMMEND_DEFAULT_DIVERSITY must be between 0 and %v", r.MaxDiversity)
	}
	if !slices.Contains(validModes, r.DefaultMode) {
		return fmt.Errorf("RECOMMEND_DEFAULT_MODE must be one of: hybrid, content, auto")
	}
	if r.CacheEnabled && (r.CacheTTL <= 0 || r.CacheMaxEntries < 1) {
		return fmt.Errorf("RECOMMEND_CACHE_TTL and RECOMMEND_CACHE_MAX_ENTRIES must be positive when caching is enabled")
	}
	return nil
}

func (c *Config) validateReload() error {
	if !c.Reload.Enabled {
		return nil
	}
	if c.Reload.Interval <= 0 {
		return fmt.Errorf("RELOAD_INTERVAL must be positive when reloading is enabled")
	}
	if c.Reload.LoadTimeout <= 0 {
		return fmt.Errorf("RELOAD_LOAD_TIMEOUT must be positive")
	}
	if c.Reload.BreakerFailures == 0 {
		return fmt.Errorf("RELOAD_BREAKER_FAILURES must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be positive")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !slices.Contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
