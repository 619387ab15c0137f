// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

/*
Package api provides the HTTP JSON API of RecoBlend on a chi router.

Endpoints:

  - GET /api/v1/recommendations?song=&artist=&k=&diversity=&weight=&mode=
  - GET /api/v1/recommendations/status
  - GET /api/v1/songs/lookup?song=&artist=
  - GET /api/v1/health/live
  - GET /api/v1/health/ready
  - GET /metrics

Every JSON response uses the models.APIResponse envelope. Engine errors map
to status codes as follows:

	recommend.ErrNotFound                          404 SONG_NOT_FOUND
	recommend.ErrInvalidK / ErrInvalidWeight / ... 400 VALIDATION_ERROR
	recommend.ErrNoSnapshot                        503 NOT_READY
	context deadline                               504 REQUEST_TIMEOUT
	anything else                                  500 RECOMMENDATION_ERROR

Middleware stack (outermost first): request ID, real IP, panic recovery,
CORS, Prometheus metrics and latency tracking. The /api/v1 routes other
than health are also rate limited per client IP with httprate and gzipped.
*/
package api
