// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"errors"
	"math"
	"testing"
)

func TestNewDenseMatrix(t *testing.T) {
	t.Parallel()

	m, err := NewDenseMatrix(2, 3, []float64{3, 4, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("NewDenseMatrix failed: %v", err)
	}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("Expected 2x3, got %dx%d", m.Rows(), m.Cols())
	}
	if m.RowNorm(0) != 5 {
		t.Errorf("Expected row 0 norm 5, got %v", m.RowNorm(0))
	}
	if m.RowNorm(1) != 0 {
		t.Errorf("Expected row 1 norm 0, got %v", m.RowNorm(1))
	}

	if _, err := NewDenseMatrix(2, 3, []float64{1, 2}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch for short data, got %v", err)
	}
}

func TestNewDenseMatrixFromRows_Ragged(t *testing.T) {
	t.Parallel()

	_, err := NewDenseMatrixFromRows([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch for ragged rows, got %v", err)
	}
}

func TestDenseMatrix_RowIsCopy(t *testing.T) {
	t.Parallel()

	m, err := NewDenseMatrixFromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewDenseMatrixFromRows failed: %v", err)
	}

	row := m.Row(1)
	row[0] = 99
	if got := m.Row(1)[0]; got != 3 {
		t.Errorf("Row must return a copy, matrix now holds %v", got)
	}
}

func TestNewCSRMatrix_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    int
		cols    int
		indptr  []int
		indices []int
		values  []float64
	}{
		{"short indptr", 2, 3, []int{0, 1}, []int{0}, []float64{1}},
		{"indices values mismatch", 1, 3, []int{0, 2}, []int{0, 1}, []float64{1}},
		{"indptr does not span values", 1, 3, []int{0, 1}, []int{0, 1}, []float64{1, 2}},
		{"decreasing indptr", 2, 3, []int{0, 2, 1}, []int{0}, []float64{1}},
		{"column out of range", 1, 2, []int{0, 1}, []int{2}, []float64{1}},
		{"duplicate column", 1, 3, []int{0, 2}, []int{1, 1}, []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCSRMatrix(tt.rows, tt.cols, tt.indptr, tt.indices, tt.values)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Errorf("Expected ErrShapeMismatch, got %v", err)
			}
		})
	}
}

func TestCSRMatrix_MatchesDense(t *testing.T) {
	t.Parallel()

	dense, err := NewDenseMatrixFromRows([][]float64{
		{0, 2, 0, 1},
		{0, 0, 0, 0},
		{3, 0, 4, 0},
	})
	if err != nil {
		t.Fatalf("NewDenseMatrixFromRows failed: %v", err)
	}
	sparse, err := NewCSRMatrix(3, 4,
		[]int{0, 2, 2, 4},
		[]int{1, 3, 0, 2},
		[]float64{2, 1, 3, 4},
	)
	if err != nil {
		t.Fatalf("NewCSRMatrix failed: %v", err)
	}
	if sparse.NNZ() != 4 {
		t.Errorf("Expected 4 stored values, got %d", sparse.NNZ())
	}

	v := []float64{1, 2, 3, 4}
	want := make([]float64, 3)
	got := make([]float64, 3)
	dense.MulVec(v, want)
	sparse.MulVec(v, got)

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MulVec row %d: sparse %v, dense %v", i, got[i], want[i])
		}
		if math.Abs(sparse.RowNorm(i)-dense.RowNorm(i)) > 1e-12 {
			t.Errorf("RowNorm row %d: sparse %v, dense %v", i, sparse.RowNorm(i), dense.RowNorm(i))
		}
		sr, dr := sparse.Row(i), dense.Row(i)
		for j := range dr {
			if sr[j] != dr[j] {
				t.Errorf("Row %d col %d: sparse %v, dense %v", i, j, sr[j], dr[j])
			}
		}
	}
}
