// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

// MinMaxNormalize rescales scores to [0, 1] as (s - min) / (max - min).
//
// When every score is equal (including empty and single-element input) the
// result is all zeros. The input slice is not modified.
func MinMaxNormalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	span := maxScore - minScore
	if span == 0 {
		return out
	}
	for i, s := range scores {
		out[i] = (s - minScore) / span
	}
	return out
}
