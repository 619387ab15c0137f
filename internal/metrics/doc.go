// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package metrics defines the Prometheus metrics exported by RecoBlend.

All collectors are registered with the default registry through promauto
and exposed by the /metrics endpoint.

# Metric Families

  - api_*: HTTP request counts, latency, in-flight requests and rate limit rejections
  - recommend_*: recommendation outcomes per mode, fallbacks and cache efficiency
  - snapshot_*: dataset snapshot version, size and reload results
  - duckdb_*: dataset loader query timings and errors
  - circuit_breaker_*: reload breaker state and transitions
  - app_*: build info and uptime

# Usage

Callers use the Record* helpers rather than touching collectors directly:

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation(string(mode), outcome, time.Since(start))

Label values are bounded. Endpoints are recorded by chi route pattern, not
raw path, so song names in query strings never become labels.
*/
package metrics
