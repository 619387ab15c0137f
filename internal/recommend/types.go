// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"fmt"
	"time"
)

// Song is a catalog record.
type Song struct {
	// TrackID is the stable identifier shared by the catalog and the
	// interaction data.
	TrackID string `json:"track_id"`

	// Name is the song title.
	Name string `json:"name"`

	// Artist is the performing artist.
	Artist string `json:"artist"`

	// PreviewURL locates a short audio preview, if any.
	PreviewURL string `json:"spotify_preview_url,omitempty"`

	// Extra holds any other catalog columns.
	Extra map[string]string `json:"extra,omitempty"`
}

// Mode selects the scoring path for a request.
type Mode string

const (
	// ModeHybrid blends content and collaborative similarity.
	ModeHybrid Mode = "hybrid"

	// ModeContent ranks by content similarity over the full catalog.
	ModeContent Mode = "content"

	// ModeAuto uses hybrid scoring when the song has interaction data and
	// falls back to content scoring otherwise.
	ModeAuto Mode = "auto"
)

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// ParseMode parses a mode name. An empty string yields an empty Mode so the
// engine default applies.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeHybrid, ModeContent, ModeAuto:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Request describes a recommendation query.
type Request struct {
	// RequestID is used for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`

	// Song is the query song name.
	Song string `json:"song"`

	// Artist is the query song artist.
	Artist string `json:"artist"`

	// K is the number of recommendations. Zero selects the configured default.
	K int `json:"k,omitempty"`

	// WeightContent is the content weight in [0, 1]. Takes precedence over
	// Diversity when set.
	WeightContent *float64 `json:"weight_content,omitempty"`

	// Diversity derives the content weight as 1 - diversity/max_diversity.
	// Nil selects the configured default.
	Diversity *float64 `json:"diversity,omitempty"`

	// Mode selects the scoring path. Empty selects the configured default.
	Mode Mode `json:"mode,omitempty"`
}

// Response holds ordered recommendations. Scores are never exposed.
type Response struct {
	// Items are the recommended songs, best first.
	Items []Song `json:"items"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes a recommendation response.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`

	// Query is the catalog song the request resolved to.
	Query Song `json:"query"`

	// Mode is the path that produced the items, never ModeAuto.
	Mode Mode `json:"mode"`

	// K is the requested number of items.
	K int `json:"k"`

	// WeightContent is the content weight used. It is 1 for content mode.
	WeightContent float64 `json:"weight_content"`

	// SnapshotVersion identifies the dataset snapshot used.
	SnapshotVersion uint64 `json:"snapshot_version"`

	LatencyMS int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}

// LookupResult reports where a song is available.
type LookupResult struct {
	Song Song `json:"song"`

	// InContent is true when the song has content features.
	InContent bool `json:"in_content"`

	// InCollaborative is true when the song has interaction data, so
	// hybrid recommendations are possible.
	InCollaborative bool `json:"in_collaborative"`
}

// Metrics contains engine counters.
type Metrics struct {
	RequestCount  int64 `json:"request_count"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	NotFoundCount int64 `json:"not_found_count"`
	FallbackCount int64 `json:"fallback_count"`
	ErrorCount    int64 `json:"error_count"`
}
