// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"fmt"
	"math"
)

// Fuse blends two normalized score vectors as
// weightContent*content + (1-weightContent)*collab.
//
// The collaborative weight is always derived, so the two weights sum to 1.
// Weights of exactly 1 and 0 return copies of content and collab unchanged.
func Fuse(content, collab []float64, weightContent float64) ([]float64, error) {
	if len(content) != len(collab) {
		return nil, fmt.Errorf("%w: %d content scores vs %d collaborative scores",
			ErrShapeMismatch, len(content), len(collab))
	}
	if err := ValidateWeight(weightContent); err != nil {
		return nil, err
	}

	out := make([]float64, len(content))
	switch weightContent {
	case 1:
		copy(out, content)
	case 0:
		copy(out, collab)
	default:
		weightCollab := 1 - weightContent
		for i := range out {
			out[i] = weightContent*content[i] + weightCollab*collab[i]
		}
	}
	return out, nil
}

// ValidateWeight checks that w is a usable content weight.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return fmt.Errorf("%w: %v is outside [0, 1]", ErrInvalidWeight, w)
	}
	return nil
}
