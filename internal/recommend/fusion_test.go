// RecoBlend - Hybrid Song Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recoblend

package recommend

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestFuse_Linear(t *testing.T) {
	t.Parallel()

	a := []float64{0, 0.3, 1, 0.8}
	b := []float64{1, 0.6, 0, 0.2}

	for _, w := range []float64{0.1, 0.25, 0.5, 0.9} {
		got, err := Fuse(a, b, w)
		if err != nil {
			t.Fatalf("Fuse(w=%v) failed: %v", w, err)
		}
		for i := range a {
			want := w*a[i] + (1-w)*b[i]
			if got[i] != want {
				t.Errorf("w=%v index %d: got %v, want %v", w, i, got[i], want)
			}
		}
	}
}

func TestFuse_Extremes(t *testing.T) {
	t.Parallel()

	a := []float64{0.1, 0.7, 1}
	b := []float64{0.9, 0.2, 0}

	got, err := Fuse(a, b, 1)
	if err != nil {
		t.Fatalf("Fuse(w=1) failed: %v", err)
	}
	if !slices.Equal(got, a) {
		t.Errorf("Fuse(a, b, 1) = %v, want %v", got, a)
	}

	got, err = Fuse(a, b, 0)
	if err != nil {
		t.Fatalf("Fuse(w=0) failed: %v", err)
	}
	if !slices.Equal(got, b) {
		t.Errorf("Fuse(a, b, 0) = %v, want %v", got, b)
	}
}

func TestFuse_ShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := Fuse([]float64{1, 2}, []float64{1}, 0.5)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch, got %v", err)
	}
}

func TestFuse_InvalidWeight(t *testing.T) {
	t.Parallel()

	for _, w := range []float64{-0.1, 1.5, math.NaN()} {
		if _, err := Fuse([]float64{1}, []float64{1}, w); !errors.Is(err, ErrInvalidWeight) {
			t.Errorf("Expected ErrInvalidWeight for w=%v, got %v", w, err)
		}
	}
}
