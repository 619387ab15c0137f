// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so building it once matters on the request path. Field names in
// error messages come from the `query` struct tag, which keeps messages in
// terms of the HTTP parameters a client actually sent.
//
// Custom validators:
//   - songtext: non-blank after trimming and free of control characters
//
// Example usage:
//
//	q := validation.RecommendationQuery{Song: "Yesterday", Artist: "The Beatles"}
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//	    return
//	}
package validation
