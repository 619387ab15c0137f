// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

// Engine serves recommendations from the current dataset snapshot.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	snapshot atomic.Pointer[Snapshot]

	// cache is nil when caching is disabled.
	cache *expirable.LRU[string, *Response]

	// Metrics
	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	notFoundCount atomic.Int64
	fallbackCount atomic.Int64
	errorCount    atomic.Int64
}

// query is a request with defaults applied and weights resolved.
type query struct {
	requestID string
	song      string
	artist    string
	k         int
	weight    float64
	mode      Mode
}

// NewEngine creates a new recommendation engine with no snapshot loaded.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = expirable.NewLRU[string, *Response](cfg.Cache.MaxEntries, nil, cfg.Cache.TTL)
	}
	return e, nil
}

// SwapSnapshot atomically installs snap and returns the previous snapshot,
// which stays valid for requests already using it.
func (e *Engine) SwapSnapshot(snap *Snapshot) *Snapshot {
	prev := e.snapshot.Swap(snap)
	if e.cache != nil {
		e.cache.Purge()
	}
	if snap == nil {
		e.logger.Warn().Msg("snapshot cleared")
		return prev
	}

	stats := snap.Stats()
	e.logger.Info().
		Uint64("version", stats.Version).
		Int("catalog_size", stats.CatalogSize).
		Int("interaction_rows", stats.InteractionRows).
		Msg("snapshot installed")

	return prev
}

// Snapshot returns the current snapshot, or nil before the first load.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Ready reports whether a snapshot is loaded.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Recommend returns up to K songs similar to the query song.
//
// Errors wrap ErrNotFound when the song cannot be resolved, ErrInvalidK,
// ErrInvalidWeight or ErrInvalidMode for bad parameters, ErrNoSnapshot before the first load,
// and ErrRecommendation for anything else.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := e.snapshot.Load()
	if snap == nil {
		e.errorCount.Add(1)
		return nil, ErrNoSnapshot
	}

	q, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	logger := e.createRequestLogger(q)
	logger.Debug().Msg("processing recommendation request")

	key := cacheKey(q, snap.Version())
	if resp := e.tryGetCachedResponse(key, q, start, logger); resp != nil {
		return resp, nil
	}

	song, items, mode, err := e.run(snap, q, logger)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			e.notFoundCount.Add(1)
			logger.Debug().Err(err).Msg("song not found")
			return nil, fmt.Errorf("recommend: %w", err)
		}
		e.errorCount.Add(1)
		logger.Error().Err(err).Msg("recommendation failed")
		return nil, fmt.Errorf("%w: %w", ErrRecommendation, err)
	}

	weight := q.weight
	if mode == ModeContent {
		weight = 1
	}
	resp := &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:       q.requestID,
			Query:           song,
			Mode:            mode,
			K:               q.k,
			WeightContent:   weight,
			SnapshotVersion: snap.Version(),
			LatencyMS:       time.Since(start).Milliseconds(),
			Timestamp:       time.Now(),
		},
	}
	if e.cache != nil {
		e.cache.Add(key, copyResponse(resp))
	}

	logger.Debug().
		Str("resolved_mode", mode.String()).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// run dispatches to the scoring path selected by q.mode.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) run(snap *Snapshot, q query, logger zerolog.Logger) (Song, []Song, Mode, error) {
	switch q.mode {
	case ModeContent:
		song, items, err := snap.contentOnly(q.song, q.artist, q.k)
		return song, items, ModeContent, err

	case ModeAuto:
		song, items, err := snap.hybrid(q.song, q.artist, q.k, q.weight)
		if !errors.Is(err, ErrNotFound) {
			return song, items, ModeHybrid, err
		}
		logger.Debug().Err(err).Msg("falling back to content similarity")
		song, items, err = snap.contentOnly(q.song, q.artist, q.k)
		if err == nil {
			e.fallbackCount.Add(1)
		}
		return song, items, ModeContent, err

	default:
		song, items, err := snap.hybrid(q.song, q.artist, q.k, q.weight)
		return song, items, ModeHybrid, err
	}
}

// Lookup reports whether a song is in the catalog and the interaction data.
func (e *Engine) Lookup(name, artist string) (LookupResult, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return LookupResult{}, ErrNoSnapshot
	}
	return snap.lookup(name, artist)
}

// prepareRequest applies defaults and validates parameters.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (query, error) {
	q := query{
		requestID: req.RequestID,
		song:      req.Song,
		artist:    req.Artist,
		k:         req.K,
		mode:      req.Mode,
	}
	if q.requestID == "" {
		q.requestID = uuid.NewString()
	}
	if q.mode == "" {
		q.mode = e.config.Blend.DefaultMode
	}
	if _, err := ParseMode(string(q.mode)); err != nil {
		return q, err
	}

	if q.k == 0 {
		q.k = e.config.Limits.DefaultK
	}
	if q.k < 1 || q.k > e.config.Limits.MaxK {
		return q, fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidK, q.k, e.config.Limits.MaxK)
	}
	if len(e.config.Limits.AllowedK) > 0 && !slices.Contains(e.config.Limits.AllowedK, q.k) {
		return q, fmt.Errorf("%w: %d is not one of %v", ErrInvalidK, q.k, e.config.Limits.AllowedK)
	}

	switch {
	case req.WeightContent != nil:
		if err := ValidateWeight(*req.WeightContent); err != nil {
			return q, err
		}
		q.weight = *req.WeightContent
	default:
		diversity := e.config.Blend.DefaultDiversity
		if req.Diversity != nil {
			diversity = *req.Diversity
		}
		w, err := WeightFromDiversity(diversity, e.config.Blend.MaxDiversity)
		if err != nil {
			return q, err
		}
		q.weight = w
	}

	return q, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) createRequestLogger(q query) zerolog.Logger {
	return e.logger.With().
		Str("request_id", q.requestID).
		Str("song", q.song).
		Str("artist", q.artist).
		Int("k", q.k).
		Float64("weight_content", q.weight).
		Str("mode", q.mode.String()).
		Logger()
}

// tryGetCachedResponse returns a copy of a cached response, or nil.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, q query, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := copyResponse(cached)
	resp.Metadata.RequestID = q.requestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	logger.Debug().Msg("cache hit")
	return resp
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:  e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		NotFoundCount: e.notFoundCount.Load(),
		FallbackCount: e.fallbackCount.Load(),
		ErrorCount:    e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// cacheKey identifies a prepared query against a snapshot version, so a
// swap never serves results from older data.
//
//nolint:gocritic // hugeParam: q passed by value for simplicity
func cacheKey(q query, version uint64) string {
	return q.mode.String() + "\x00" +
		NormalizeKey(q.song) + "\x00" +
		NormalizeKey(q.artist) + "\x00" +
		strconv.Itoa(q.k) + "\x00" +
		strconv.FormatFloat(q.weight, 'g', -1, 64) + "\x00" +
		strconv.FormatUint(version, 10)
}

// copyResponse returns a copy whose Items slice is not shared.
func copyResponse(resp *Response) *Response {
	return &Response{
		Items:    slices.Clone(resp.Items),
		Metadata: resp.Metadata,
	}
}
