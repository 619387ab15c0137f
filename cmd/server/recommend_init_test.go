// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recoblend/internal/config"
	"github.com/tomtom215/recoblend/internal/recommend"
)

func testAppConfig() *config.Config {
	return &config.Config{
		Data: config.DataConfig{
			CatalogPath:      "catalog.csv",
			ContentPath:      "content.csv",
			InteractionsPath: "interactions.csv",
			MaxMemory:        "512MB",
			Threads:          2,
		},
		Recommend: config.RecommendConfig{
			DefaultK:         10,
			MaxK:             20,
			AllowedK:         []int{5, 10, 15, 20},
			MaxDiversity:     10,
			DefaultDiversity: 5,
			DefaultMode:      "auto",
			CacheEnabled:     true,
			CacheTTL:         5 * time.Minute,
			CacheMaxEntries:  1000,
		},
		Reload: config.ReloadConfig{
			Enabled:         true,
			Interval:        time.Minute,
			LoadTimeout:     30 * time.Second,
			BreakerFailures: 4,
			BreakerTimeout:  time.Hour,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:   50,
			RateLimitWindow: 30 * time.Second,
			CORSOrigins:     []string{"https://example.com"},
		},
	}
}

func TestBuildEngineConfig_MatchesEngineDefaults(t *testing.T) {
	t.Parallel()

	got := buildEngineConfig(testAppConfig())
	if err := got.Validate(); err != nil {
		t.Fatalf("Expected valid engine config, got %v", err)
	}
	if want := recommend.DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestBuildEngineConfig_CopiesAllowedK(t *testing.T) {
	t.Parallel()

	cfg := testAppConfig()
	engineCfg := buildEngineConfig(cfg)
	cfg.Recommend.AllowedK[0] = 99

	if engineCfg.Limits.AllowedK[0] != 5 {
		t.Error("Expected the engine config to own its k menu")
	}
}

func TestBuildDatasetAndReloadConfig(t *testing.T) {
	t.Parallel()

	cfg := testAppConfig()

	ds := buildDatasetConfig(cfg)
	if ds.CatalogPath != "catalog.csv" || ds.InteractionsPath != "interactions.csv" || ds.Threads != 2 || ds.MaxMemory != "512MB" {
		t.Errorf("Unexpected dataset config %+v", ds)
	}

	rc := buildReloadConfig(cfg)
	if !rc.Enabled || rc.Interval != time.Minute || rc.BreakerFailures != 4 || rc.BreakerTimeout != time.Hour {
		t.Errorf("Unexpected reload config %+v", rc)
	}
}

func TestBuildMiddlewareConfig(t *testing.T) {
	t.Parallel()

	mw := buildMiddlewareConfig(testAppConfig())
	if len(mw.CORSAllowedOrigins) != 1 || mw.CORSAllowedOrigins[0] != "https://example.com" {
		t.Errorf("Unexpected origins %v", mw.CORSAllowedOrigins)
	}
	if mw.RateLimitRequests != 50 || mw.RateLimitWindow != 30*time.Second || mw.RateLimitDisabled {
		t.Errorf("Unexpected rate limit settings %+v", mw)
	}
}

func TestInitRecommend(t *testing.T) {
	t.Parallel()

	components, err := initRecommend(testAppConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("initRecommend: %v", err)
	}
	if components.Engine.Ready() {
		t.Error("Expected the engine to start without a snapshot")
	}
	if components.Reload.Status().BreakerState != "closed" {
		t.Errorf("Expected closed breaker, got %s", components.Reload.Status().BreakerState)
	}

	bad := testAppConfig()
	bad.Recommend.DefaultMode = "random"
	if _, err := initRecommend(bad, zerolog.Nop()); err == nil {
		t.Error("Expected an invalid default mode to fail")
	}
}

func TestInitRecommend_ReportsDatasetFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testAppConfig()
	cfg.Data.CatalogPath = filepath.Join(dir, "catalog.csv")
	cfg.Data.ContentPath = filepath.Join(dir, "content.csv")
	cfg.Data.InteractionsPath = filepath.Join(dir, "interactions.csv")

	var missing bytes.Buffer
	if _, err := initRecommend(cfg, zerolog.New(&missing)); err != nil {
		t.Fatalf("initRecommend: %v", err)
	}
	if !strings.Contains(missing.String(), "Dataset not readable yet") {
		t.Errorf("Expected a warning for missing files, got: %s", missing.String())
	}

	for _, p := range []string{cfg.Data.CatalogPath, cfg.Data.ContentPath, cfg.Data.InteractionsPath} {
		if err := os.WriteFile(p, []byte("track_id\n"), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	var found bytes.Buffer
	if _, err := initRecommend(cfg, zerolog.New(&found)); err != nil {
		t.Fatalf("initRecommend: %v", err)
	}
	if !strings.Contains(found.String(), `"files":3`) {
		t.Errorf("Expected three dataset files reported, got: %s", found.String())
	}
}
