// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package main

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recoblend/internal/api"
	"github.com/tomtom215/recoblend/internal/config"
	"github.com/tomtom215/recoblend/internal/dataset"
	"github.com/tomtom215/recoblend/internal/recommend"
	"github.com/tomtom215/recoblend/internal/supervisor/services"
)

// RecommendComponents holds the recommendation engine and its reloader.
type RecommendComponents struct {
	Engine *recommend.Engine
	Reload *services.ReloadService
}

// initRecommend builds the engine and the reload service. The engine starts
// without a snapshot; the reload service performs the first load.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(buildDatasetConfig(cfg), logger)
	reload := services.NewReloadService(loader, engine, buildReloadConfig(cfg), logger)

	logger.Info().
		Str("catalog", cfg.Data.CatalogPath).
		Str("content", cfg.Data.ContentPath).
		Str("interactions", cfg.Data.InteractionsPath).
		Str("default_mode", cfg.Recommend.DefaultMode).
		Ints("allowed_k", cfg.Recommend.AllowedK).
		Bool("reload_enabled", cfg.Reload.Enabled).
		Msg("Recommendation engine initialized")

	// The first load happens in the supervisor tree; report missing files now
	// so a misconfigured path shows up before the first retry interval.
	if fp, err := loader.Fingerprint(); err != nil {
		logger.Warn().Err(err).Msg("Dataset not readable yet, serving 503 until it loads")
	} else {
		logger.Info().Int("files", len(fp)).Msg("Dataset files found")
	}

	return &RecommendComponents{
		Engine: engine,
		Reload: reload,
	}, nil
}

// buildEngineConfig maps application config onto the engine config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Blend: recommend.BlendConfig{
			MaxDiversity:     cfg.Recommend.MaxDiversity,
			DefaultDiversity: cfg.Recommend.DefaultDiversity,
			DefaultMode:      recommend.Mode(cfg.Recommend.DefaultMode),
		},
		Limits: recommend.LimitsConfig{
			DefaultK: cfg.Recommend.DefaultK,
			MaxK:     cfg.Recommend.MaxK,
			AllowedK: slices.Clone(cfg.Recommend.AllowedK),
		},
		Cache: recommend.CacheConfig{
			Enabled:    cfg.Recommend.CacheEnabled,
			TTL:        cfg.Recommend.CacheTTL,
			MaxEntries: cfg.Recommend.CacheMaxEntries,
		},
	}
}

// buildDatasetConfig maps application config onto the loader config.
func buildDatasetConfig(cfg *config.Config) dataset.Config {
	return dataset.Config{
		CatalogPath:      cfg.Data.CatalogPath,
		ContentPath:      cfg.Data.ContentPath,
		InteractionsPath: cfg.Data.InteractionsPath,
		MaxMemory:        cfg.Data.MaxMemory,
		Threads:          cfg.Data.Threads,
	}
}

// buildReloadConfig maps application config onto the reload service config.
func buildReloadConfig(cfg *config.Config) services.ReloadConfig {
	return services.ReloadConfig{
		Enabled:         cfg.Reload.Enabled,
		Interval:        cfg.Reload.Interval,
		LoadTimeout:     cfg.Reload.LoadTimeout,
		BreakerFailures: cfg.Reload.BreakerFailures,
		BreakerTimeout:  cfg.Reload.BreakerTimeout,
	}
}

// buildMiddlewareConfig maps security settings onto the CORS and rate
// limit middleware.
func buildMiddlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		mw.CORSAllowedOrigins = slices.Clone(cfg.Security.CORSOrigins)
	}
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
