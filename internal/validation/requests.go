// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package validation

// MaxTextLength bounds song and artist query parameters.
const MaxTextLength = 500

// RecommendationQuery holds the parameters of GET /api/v1/recommendations.
// Optional numeric parameters are nil when absent. Whether k is on the
// configured menu is checked by the engine, which owns that configuration.
type RecommendationQuery struct {
	Song      string   `query:"song" validate:"required,max=500,songtext"`
	Artist    string   `query:"artist" validate:"required,max=500,songtext"`
	K         *int     `query:"k" validate:"omitempty,min=1"`
	Diversity *float64 `query:"diversity" validate:"omitempty,gte=0"`
	Weight    *float64 `query:"weight" validate:"omitempty,gte=0,lte=1"`
	Mode      string   `query:"mode" validate:"omitempty,oneof=hybrid content auto"`
}

// LookupQuery holds the parameters of GET /api/v1/songs/lookup.
type LookupQuery struct {
	Song   string `query:"song" validate:"required,max=500,songtext"`
	Artist string `query:"artist" validate:"required,max=500,songtext"`
}
