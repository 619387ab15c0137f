// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package api

import (
	"time"

	"github.com/tomtom215/recoblend/internal/middleware"
	"github.com/tomtom215/recoblend/internal/models"
	"github.com/tomtom215/recoblend/internal/recommend"
)

// ReloadStatus reports the state of the dataset reloader.
type ReloadStatus interface {
	Status() models.ReloadInfo
}

// HandlerConfig holds handler settings.
type HandlerConfig struct {
	// RequestTimeout bounds a single recommendation. Zero means no bound.
	RequestTimeout time.Duration

	// Version is reported by the health endpoints.
	Version string
}

// Handler serves the API endpoints.
type Handler struct {
	engine    *recommend.Engine
	reload    ReloadStatus
	latency   *middleware.LatencyTracker
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler. reload and latency may be nil.
func NewHandler(engine *recommend.Engine, reload ReloadStatus, latency *middleware.LatencyTracker, cfg HandlerConfig) *Handler {
	return &Handler{
		engine:    engine,
		reload:    reload,
		latency:   latency,
		config:    cfg,
		startTime: time.Now(),
	}
}
