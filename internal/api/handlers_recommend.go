// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/recoblend/internal/metrics"
	"github.com/tomtom215/recoblend/internal/middleware"
	"github.com/tomtom215/recoblend/internal/models"
	"github.com/tomtom215/recoblend/internal/recommend"
	"github.com/tomtom215/recoblend/internal/validation"
)

// Recommendations handles GET /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q, apiErr := parseRecommendationQuery(r)
	if apiErr == nil {
		apiErr = validateRequest(&q)
	}
	modeLabel := q.Mode
	if modeLabel == "" {
		modeLabel = "default"
	}
	if apiErr != nil {
		metrics.RecordRecommendation(modeLabel, metrics.OutcomeInvalid, time.Since(start))
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := recommend.Request{
		RequestID:     middleware.GetRequestID(r.Context()),
		Song:          q.Song,
		Artist:        q.Artist,
		WeightContent: q.Weight,
		Diversity:     q.Diversity,
		Mode:          recommend.Mode(q.Mode),
	}
	if q.K != nil {
		req.K = *q.K
	}

	ctx := r.Context()
	if h.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.RequestTimeout)
		defer cancel()
	}

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		status, code, message, outcome := classifyError(err)
		metrics.RecordRecommendation(modeLabel, outcome, time.Since(start))
		respondErrorDetails(w, r, status, &models.APIError{
			Code:    code,
			Message: message,
			Details: map[string]any{
				"song":   q.Song,
				"artist": q.Artist,
				"mode":   modeLabel,
			},
		}, err)
		return
	}

	metrics.RecordRecommendation(modeLabel, metrics.OutcomeSuccess, time.Since(start))
	metrics.RecordCacheLookup(resp.Metadata.CacheHit)
	if !resp.Metadata.CacheHit && req.Mode != recommend.ModeContent && resp.Metadata.Mode == recommend.ModeContent {
		metrics.RecordFallback()
	}

	respondSuccess(w, r, recommendationData(resp), models.Metadata{
		RequestID:   resp.Metadata.RequestID,
		QueryTimeMS: resp.Metadata.LatencyMS,
		Cached:      resp.Metadata.CacheHit,
	})
}

// Lookup handles GET /api/v1/songs/lookup.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := validation.LookupQuery{
		Song:   r.URL.Query().Get("song"),
		Artist: r.URL.Query().Get("artist"),
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	result, err := h.engine.Lookup(q.Song, q.Artist)
	if err != nil {
		status, code, message, _ := classifyError(err)
		respondError(w, r, status, code, message, err)
		return
	}

	modes := []string{string(recommend.ModeContent)}
	if result.InCollaborative {
		modes = append(modes, string(recommend.ModeHybrid))
	}

	respondSuccess(w, r, models.LookupData{
		Song:            songItem(result.Song),
		InContent:       result.InContent,
		InCollaborative: result.InCollaborative,
		Modes:           modes,
	}, models.Metadata{})
}

// Status handles GET /api/v1/recommendations/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	cfg := h.engine.GetConfig()
	m := h.engine.GetMetrics()

	data := models.StatusData{
		Ready: h.engine.Ready(),
		Engine: models.EngineCounters{
			RequestCount:  m.RequestCount,
			CacheHits:     m.CacheHits,
			CacheMisses:   m.CacheMisses,
			NotFoundCount: m.NotFoundCount,
			FallbackCount: m.FallbackCount,
			ErrorCount:    m.ErrorCount,
		},
		AllowedK:     cfg.Limits.AllowedK,
		MaxDiversity: cfg.Blend.MaxDiversity,
		DefaultMode:  string(cfg.Blend.DefaultMode),
	}
	if snap := h.engine.Snapshot(); snap != nil {
		s := snap.Stats()
		data.Snapshot = &models.SnapshotInfo{
			Version:          s.Version,
			LoadedAt:         s.LoadedAt,
			Source:           s.Source,
			CatalogSize:      s.CatalogSize,
			ContentFeatures:  s.ContentFeatures,
			InteractionRows:  s.InteractionRows,
			InteractionUsers: s.InteractionUsers,
		}
	}
	if h.reload != nil {
		info := h.reload.Status()
		data.Reload = &info
	}
	if h.latency != nil {
		data.Latency = h.latency.Stats()
	}

	respondSuccess(w, r, data, models.Metadata{})
}

// parseRecommendationQuery reads the query string. Parse errors are
// reported before struct validation runs.
func parseRecommendationQuery(r *http.Request) (validation.RecommendationQuery, *models.APIError) {
	values := r.URL.Query()
	q := validation.RecommendationQuery{
		Song:   values.Get("song"),
		Artist: values.Get("artist"),
		Mode:   values.Get("mode"),
	}

	var apiErr *models.APIError
	if q.K, apiErr = parseIntParam(values, "k"); apiErr != nil {
		return q, apiErr
	}
	if q.Diversity, apiErr = parseFloatParam(values, "diversity"); apiErr != nil {
		return q, apiErr
	}
	if q.Weight, apiErr = parseFloatParam(values, "weight"); apiErr != nil {
		return q, apiErr
	}
	return q, nil
}

// classifyError maps an engine error to status, code, message and metric outcome.
func classifyError(err error) (status int, code, message, outcome string) {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, models.ErrorCodeSongNotFound,
			"Song not found in the requested dataset", metrics.OutcomeNotFound
	case errors.Is(err, recommend.ErrInvalidK),
		errors.Is(err, recommend.ErrInvalidWeight),
		errors.Is(err, recommend.ErrInvalidMode):
		return http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), metrics.OutcomeInvalid
	case errors.Is(err, recommend.ErrNoSnapshot):
		return http.StatusServiceUnavailable, models.ErrorCodeNotReady,
			"Recommendation data is not loaded yet", metrics.OutcomeNotReady
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, models.ErrorCodeTimeout,
			"Recommendation request timed out", metrics.OutcomeCancelled
	default:
		return http.StatusInternalServerError, models.ErrorCodeRecommendation,
			"Failed to compute recommendations", metrics.OutcomeError
	}
}

func songItem(s recommend.Song) models.SongItem {
	return models.SongItem{
		TrackID:    s.TrackID,
		Name:       s.Name,
		Artist:     s.Artist,
		PreviewURL: s.PreviewURL,
		Extra:      s.Extra,
	}
}

func recommendationData(resp *recommend.Response) models.RecommendationData {
	items := make([]models.SongItem, len(resp.Items))
	for i, s := range resp.Items {
		items[i] = songItem(s)
	}
	return models.RecommendationData{
		Query:           songItem(resp.Metadata.Query),
		Items:           items,
		Mode:            string(resp.Metadata.Mode),
		K:               resp.Metadata.K,
		WeightContent:   resp.Metadata.WeightContent,
		SnapshotVersion: resp.Metadata.SnapshotVersion,
	}
}
