// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Blend controls the content/collaborative weighting.
	Blend BlendConfig `json:"blend"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// BlendConfig controls how the two signals are weighted.
type BlendConfig struct {
	// MaxDiversity is the top of the diversity scale.
	// weight_content = 1 - diversity/MaxDiversity. Default: 10.
	MaxDiversity float64 `json:"max_diversity"`

	// DefaultDiversity applies when a request sets neither a weight nor a
	// diversity. Default: 5 (equal weights).
	DefaultDiversity float64 `json:"default_diversity"`

	// DefaultMode applies when a request sets no mode. Default: auto.
	DefaultMode Mode `json:"default_mode"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultK is used when a request sets no k. Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK caps k. Default: 20.
	MaxK int `json:"max_k"`

	// AllowedK restricts k to a fixed menu when non-empty.
	// Default: 5, 10, 15, 20.
	AllowedK []int `json:"allowed_k"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled turns response caching on. Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the lifetime of a cached response. Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size. Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Blend: BlendConfig{
			MaxDiversity:     10,
			DefaultDiversity: 5,
			DefaultMode:      ModeAuto,
		},
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     20,
			AllowedK: []int{5, 10, 15, 20},
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Blend.MaxDiversity <= 0 || math.IsNaN(c.Blend.MaxDiversity) {
		return fmt.Errorf("blend.max_diversity must be positive, got %v", c.Blend.MaxDiversity)
	}
	if c.Blend.DefaultDiversity < 0 || c.Blend.DefaultDiversity > c.Blend.MaxDiversity {
		return fmt.Errorf("blend.default_diversity must be in [0, %v], got %v",
			c.Blend.MaxDiversity, c.Blend.DefaultDiversity)
	}
	if c.Blend.DefaultMode == "" {
		return fmt.Errorf("blend.default_mode must be set")
	}
	if _, err := ParseMode(string(c.Blend.DefaultMode)); err != nil {
		return fmt.Errorf("blend.default_mode: %w", err)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	for _, k := range c.Limits.AllowedK {
		if k < 1 || k > c.Limits.MaxK {
			return fmt.Errorf("limits.allowed_k values must be in [1, %d], got %d", c.Limits.MaxK, k)
		}
	}
	if len(c.Limits.AllowedK) > 0 && !slices.Contains(c.Limits.AllowedK, c.Limits.DefaultK) {
		return fmt.Errorf("limits.default_k %d is not in limits.allowed_k %v", c.Limits.DefaultK, c.Limits.AllowedK)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Limits.AllowedK = slices.Clone(c.Limits.AllowedK)
	return &clone
}

// WeightFromDiversity converts a diversity setting into a content weight:
// 1 - diversity/maxDiversity. Higher diversity leans on listener behaviour.
func WeightFromDiversity(diversity, maxDiversity float64) (float64, error) {
	if maxDiversity <= 0 {
		return 0, fmt.Errorf("%w: max diversity must be positive, got %v", ErrInvalidWeight, maxDiversity)
	}
	if math.IsNaN(diversity) || diversity < 0 || diversity > maxDiversity {
		return 0, fmt.Errorf("%w: diversity %v is outside [0, %v]", ErrInvalidWeight, diversity, maxDiversity)
	}
	return 1 - diversity/maxDiversity, nil
}
