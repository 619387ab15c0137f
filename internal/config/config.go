// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package config

import "time"

// Config holds all application configuration.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Reload    ReloadConfig    `koanf:"reload"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DataConfig locates the dataset files and tunes the DuckDB instance used
// to read them.
//
// Environment Variables:
//   - RECOBLEND_CATALOG_PATH: song catalog CSV (track_id, name, artist, ...)
//   - RECOBLEND_CONTENT_PATH: content feature CSV (track_id + numeric columns)
//   - RECOBLEND_INTERACTIONS_PATH: listening triplets CSV (track_id, user_id, playcount);
//     empty disables hybrid scoring
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: DuckDB worker threads, 0 for the DuckDB default
type DataConfig struct {
	CatalogPath      string `koanf:"catalog_path"`
	ContentPath      string `koanf:"content_path"`
	InteractionsPath string `koanf:"interactions_path"`
	MaxMemory        string `koanf:"max_memory"`
	Threads          int    `koanf:"threads"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_K: results when k is omitted (default: 10)
//   - RECOMMEND_MAX_K: largest accepted k (default: 20)
//   - RECOMMEND_ALLOWED_K: comma-separated k menu (default: 5,10,15,20)
//   - RECOMMEND_MAX_DIVERSITY: top of the diversity scale (default: 10)
//   - RECOMMEND_DEFAULT_DIVERSITY: diversity when omitted (default: 5)
//   - RECOMMEND_DEFAULT_MODE: hybrid, content or auto (default: auto)
//   - RECOMMEND_CACHE_ENABLED / RECOMMEND_CACHE_TTL / RECOMMEND_CACHE_MAX_ENTRIES
type RecommendConfig struct {
	DefaultK         int           `koanf:"default_k"`
	MaxK             int           `koanf:"max_k"`
	AllowedK         []int         `koanf:"allowed_k"`
	MaxDiversity     float64       `koanf:"max_diversity"`
	DefaultDiversity float64       `koanf:"default_diversity"`
	DefaultMode      string        `koanf:"default_mode"`
	CacheEnabled     bool          `koanf:"cache_enabled"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries  int           `koanf:"cache_max_entries"`
}

// ReloadConfig controls periodic dataset reloading.
//
// A reload runs only when a dataset file changed. Consecutive failures
// open a circuit breaker so a broken file is not re-read every interval.
type ReloadConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Interval        time.Duration `koanf:"interval"`
	LoadTimeout     time.Duration `koanf:"load_timeout"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and
// environment variables, in that order.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
