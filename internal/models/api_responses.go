// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package models

import (
	"time"
)

// Error codes returned in APIError.Code.
const (
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeSongNotFound   = "SONG_NOT_FOUND"
	ErrorCodeRecommendation = "RECOMMENDATION_ERROR"
	ErrorCodeNotReady       = "NOT_READY"
	ErrorCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	ErrorCodeTimeout        = "REQUEST_TIMEOUT"
	ErrorCodeNotFound       = "NOT_FOUND"
	ErrorCodeMethod         = "METHOD_NOT_ALLOWED"
)

// APIResponse is the envelope used by all HTTP endpoints.
//
// Status is "success" with Data populated, or "error" with Error populated.
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Example:
//
//	{
//	  "code": "SONG_NOT_FOUND",
//	  "message": "song not found in the requested dataset",
//	  "details": {"song": "Yesterday", "artist": "The Beatles", "mode": "hybrid"}
//	}
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
