// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"fmt"
	"math"
)

// Matrix is a read-only row matrix used as a similarity source.
// Implementations must be safe for concurrent reads.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// Row returns a dense copy of row i.
	Row(i int) []float64

	// RowNorm returns the Euclidean norm of row i.
	RowNorm(i int) float64

	// MulVec writes the dot product of every row with v into out.
	// len(v) must equal Cols() and len(out) must equal Rows().
	MulVec(v, out []float64)
}

// DenseMatrix is a row-major dense matrix with precomputed row norms.
type DenseMatrix struct {
	rows  int
	cols  int
	data  []float64
	norms []float64
}

// NewDenseMatrix creates a dense matrix from row-major data.
// The data slice is retained and must not be modified afterwards.
func NewDenseMatrix(rows, cols int, data []float64) (*DenseMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrShapeMismatch, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: dense data has %d values, want %d (%dx%d)",
			ErrShapeMismatch, len(data), rows*cols, rows, cols)
	}

	m := &DenseMatrix{
		rows:  rows,
		cols:  cols,
		data:  data,
		norms: make([]float64, rows),
	}
	for i := 0; i < rows; i++ {
		m.norms[i] = norm(data[i*cols : (i+1)*cols])
	}
	return m, nil
}

// NewDenseMatrixFromRows creates a dense matrix from a slice of rows.
// All rows must have the same length.
func NewDenseMatrixFromRows(rows [][]float64) (*DenseMatrix, error) {
	if len(rows) == 0 {
		return NewDenseMatrix(0, 0, nil)
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return NewDenseMatrix(len(rows), cols, data)
}

// Rows returns the number of rows.
func (m *DenseMatrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *DenseMatrix) Cols() int { return m.cols }

// Row returns a copy of row i.
func (m *DenseMatrix) Row(i int) []float64 {
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// RowNorm returns the precomputed norm of row i.
func (m *DenseMatrix) RowNorm(i int) float64 { return m.norms[i] }

// MulVec computes out[i] = row(i) . v.
func (m *DenseMatrix) MulVec(v, out []float64) {
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		var sum float64
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
}

// CSRMatrix is a compressed sparse row matrix with precomputed row norms.
// Interaction data (songs x listeners) is overwhelmingly zero, so this is
// the usual storage for the collaborative signal.
type CSRMatrix struct {
	rows    int
	cols    int
	indptr  []int
	indices []int
	values  []float64
	norms   []float64
}

// NewCSRMatrix creates a CSR matrix from its raw arrays.
//
// indptr has rows+1 entries; the column indices and values of row i are
// indices[indptr[i]:indptr[i+1]] and values[indptr[i]:indptr[i+1]].
// The slices are retained and must not be modified afterwards.
func NewCSRMatrix(rows, cols int, indptr, indices []int, values []float64) (*CSRMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrShapeMismatch, rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, fmt.Errorf("%w: indptr has %d entries, want %d", ErrShapeMismatch, len(indptr), rows+1)
	}
	if len(indices) != len(values) {
		return nil, fmt.Errorf("%w: %d indices but %d values", ErrShapeMismatch, len(indices), len(values))
	}
	if indptr[0] != 0 || indptr[rows] != len(values) {
		return nil, fmt.Errorf("%w: indptr must span [0, %d], got [%d, %d]",
			ErrShapeMismatch, len(values), indptr[0], indptr[rows])
	}
	for i := 0; i < rows; i++ {
		if indptr[i] > indptr[i+1] {
			return nil, fmt.Errorf("%w: indptr decreases at row %d", ErrShapeMismatch, i)
		}
	}
	// Column indices must be in range and strictly increasing within a row,
	// otherwise the stored norms would not match the densified rows.
	for i := 0; i < rows; i++ {
		prev := -1
		for p := indptr[i]; p < indptr[i+1]; p++ {
			c := indices[p]
			if c < 0 || c >= cols {
				return nil, fmt.Errorf("%w: column index %d in row %d out of range [0, %d)", ErrShapeMismatch, c, i, cols)
			}
			if c <= prev {
				return nil, fmt.Errorf("%w: column indices of row %d are not strictly increasing", ErrShapeMismatch, i)
			}
			prev = c
		}
	}

	m := &CSRMatrix{
		rows:    rows,
		cols:    cols,
		indptr:  indptr,
		indices: indices,
		values:  values,
		norms:   make([]float64, rows),
	}
	for i := 0; i < rows; i++ {
		m.norms[i] = norm(values[indptr[i]:indptr[i+1]])
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *CSRMatrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *CSRMatrix) Cols() int { return m.cols }

// NNZ returns the number of stored values.
func (m *CSRMatrix) NNZ() int { return len(m.values) }

// Row densifies row i.
func (m *CSRMatrix) Row(i int) []float64 {
	out := make([]float64, m.cols)
	for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
		out[m.indices[p]] = m.values[p]
	}
	return out
}

// RowNorm returns the precomputed norm of row i.
func (m *CSRMatrix) RowNorm(i int) float64 { return m.norms[i] }

// MulVec computes out[i] = row(i) . v.
func (m *CSRMatrix) MulVec(v, out []float64) {
	for i := 0; i < m.rows; i++ {
		var sum float64
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			sum += m.values[p] * v[m.indices[p]]
		}
		out[i] = sum
	}
}

// norm returns the Euclidean norm of v.
func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
