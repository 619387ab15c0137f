// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package models

import "time"

// SongItem is one song in a recommendation list.
type SongItem struct {
	TrackID    string            `json:"track_id"`
	Name       string            `json:"name"`
	Artist     string            `json:"artist"`
	PreviewURL string            `json:"spotify_preview_url,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// RecommendationData is the payload of GET /api/v1/recommendations.
//
// Example:
//
//	{
//	  "query": {"track_id": "TR1", "name": "Yesterday", "artist": "The Beatles"},
//	  "items": [{"track_id": "TR7", "name": "Michelle", "artist": "The Beatles"}],
//	  "mode": "hybrid",
//	  "k": 10,
//	  "weight_content": 0.5,
//	  "snapshot_version": 3
//	}
type RecommendationData struct {
	Query           SongItem   `json:"query"`
	Items           []SongItem `json:"items"`
	Mode            string     `json:"mode"`
	K               int        `json:"k"`
	WeightContent   float64    `json:"weight_content"`
	SnapshotVersion uint64     `json:"snapshot_version"`
}

// LookupData is the payload of GET /api/v1/songs/lookup.
type LookupData struct {
	Song            SongItem `json:"song"`
	InContent       bool     `json:"in_content"`
	InCollaborative bool     `json:"in_collaborative"`
	Modes           []string `json:"modes"`
}

// SnapshotInfo describes the served dataset snapshot.
type SnapshotInfo struct {
	Version          uint64    `json:"version"`
	LoadedAt         time.Time `json:"loaded_at"`
	Source           string    `json:"source,omitempty"`
	CatalogSize      int       `json:"catalog_size"`
	ContentFeatures  int       `json:"content_features"`
	InteractionRows  int       `json:"interaction_rows"`
	InteractionUsers int       `json:"interaction_users"`
}

// EngineCounters mirrors the engine's request counters.
type EngineCounters struct {
	RequestCount  int64 `json:"request_count"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	NotFoundCount int64 `json:"not_found_count"`
	FallbackCount int64 `json:"fallback_count"`
	ErrorCount    int64 `json:"error_count"`
}

// ReloadInfo reports the state of the dataset reloader.
type ReloadInfo struct {
	Enabled      bool       `json:"enabled"`
	BreakerState string     `json:"breaker_state"`
	LastAttempt  *time.Time `json:"last_attempt,omitempty"`
	LastSuccess  *time.Time `json:"last_success,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
}

// RouteLatency is the rolling latency summary of one route.
type RouteLatency struct {
	Route        string  `json:"route"`
	RequestCount int64   `json:"request_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// StatusData is the payload of GET /api/v1/recommendations/status.
type StatusData struct {
	Ready        bool           `json:"ready"`
	Snapshot     *SnapshotInfo  `json:"snapshot,omitempty"`
	Engine       EngineCounters `json:"engine"`
	Reload       *ReloadInfo    `json:"reload,omitempty"`
	Latency      []RouteLatency `json:"latency,omitempty"`
	AllowedK     []int          `json:"allowed_k"`
	MaxDiversity float64        `json:"max_diversity"`
	DefaultMode  string         `json:"default_mode"`
}

// HealthData is the payload of the health endpoints.
type HealthData struct {
	Status          string `json:"status"`
	Ready           bool   `json:"ready"`
	SnapshotVersion uint64 `json:"snapshot_version,omitempty"`
	Version         string `json:"version,omitempty"`
	Uptime          string `json:"uptime,omitempty"`
}
