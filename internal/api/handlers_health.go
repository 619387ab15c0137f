// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/recoblend/internal/metrics"
	"github.com/tomtom215/recoblend/internal/models"
)

// HealthLive handles liveness probes.
// Returns 200 while the process is serving HTTP, regardless of data.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	metrics.UpdateUptime(h.startTime)
	respondSuccess(w, r, models.HealthData{
		Status:  "alive",
		Ready:   h.engine.Ready(),
		Version: h.config.Version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}, models.Metadata{})
}

// HealthReady handles readiness probes.
// Returns 200 once a snapshot is loaded and 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	if snap == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrorCodeNotReady,
			"Recommendation data is not loaded yet", nil)
		return
	}

	respondSuccess(w, r, models.HealthData{
		Status:          "ready",
		Ready:           true,
		SnapshotVersion: snap.Version(),
		Version:         h.config.Version,
	}, models.Metadata{})
}
