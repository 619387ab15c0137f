// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package middleware provides HTTP middleware for the RecoBlend API.

All middleware uses the standard func(http.Handler) http.Handler shape so it
composes directly with chi's Use and With.

Key Components:

  - RequestID: X-Request-ID propagation into the request context and logger
  - Metrics: Prometheus request counts and latency, labelled by route pattern
  - Compression: gzip for clients that accept it
  - LatencyTracker: rolling per-route latency percentiles for the status endpoint

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(tracker.Middleware)
	r.Use(middleware.Compression)
*/
package middleware
