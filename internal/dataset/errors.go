// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package dataset

import (
	"errors"
	"io"
)

var (
	// ErrMissingColumn is returned when a required CSV column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrInvalidData is returned for empty files, blank keys and
	// values that cannot be interpreted.
	ErrInvalidData = errors.New("invalid dataset")

	// ErrMissingFeatures is returned when a catalog song has no feature row.
	ErrMissingFeatures = errors.New("catalog song has no content features")
)

// closeQuietly closes a resource, ignoring errors.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // cleanup is best-effort
	}
}
