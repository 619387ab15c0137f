// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import "errors"

var (
	// ErrNotFound is returned when the query song is absent from the catalog
	// or its track ID is absent from the interaction data.
	ErrNotFound = errors.New("song not found")

	// ErrShapeMismatch indicates misaligned or malformed matrices.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidWeight is returned for a content weight outside [0, 1].
	ErrInvalidWeight = errors.New("invalid content weight")

	// ErrInvalidMode is returned for an unknown scoring mode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidK is returned for a result count the engine does not accept.
	ErrInvalidK = errors.New("invalid k")

	// ErrNoSnapshot is returned when no dataset snapshot has been loaded yet.
	ErrNoSnapshot = errors.New("no dataset snapshot loaded")

	// ErrRecommendation wraps every failure that is not ErrNotFound, so
	// callers can tell a missing song apart from a broken dataset.
	ErrRecommendation = errors.New("recommendation failed")
)
