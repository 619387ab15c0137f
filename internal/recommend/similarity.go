// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import "fmt"

// CosineScores returns the cosine similarity between the given row of m and every row
// of m, in row order. The query row scores itself at 1 (up to rounding).
//
// A zero query vector scores 0 against every row, and every zero row scores
// 0 against the query.
func CosineScores(m Matrix, row int) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrShapeMismatch)
	}
	rows := m.Rows()
	if row < 0 || row >= rows {
		return nil, fmt.Errorf("%w: row %d out of range [0, %d)", ErrShapeMismatch, row, rows)
	}

	scores := make([]float64, rows)
	queryNorm := m.RowNorm(row)
	if queryNorm == 0 {
		return scores, nil
	}

	m.MulVec(m.Row(row), scores)
	for i := range scores {
		n := m.RowNorm(i)
		if n == 0 {
			scores[i] = 0
			continue
		}
		scores[i] /= queryNorm * n
	}
	return scores, nil
}
