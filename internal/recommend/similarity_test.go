// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import (
	"math"
	"testing"
)

func TestNewSimilarityMatrix(t *testing.T) {
	reduced := [][]float64{
		{1, 0},
		{0.6, 0.8},
		{0, 1},
	}
	sim := newSimilarityMatrix(reduced)

	if sim.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", sim.Size())
	}
	for i := 0; i < 3; i++ {
		if sim.At(i, i) != 1 {
			t.Errorf("At(%d,%d) = %v, want exactly 1", i, i, sim.At(i, i))
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if sim.At(i, j) != sim.At(j, i) {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	if got := sim.At(0, 1); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("At(0,1) = %v, want 0.6", got)
	}
	if got := sim.At(0, 2); math.Abs(got) > 1e-12 {
		t.Errorf("At(0,2) = %v, want 0 for orthogonal rows", got)
	}
}

func TestNewSimilarityMatrix_ZeroRows(t *testing.T) {
	reduced := [][]float64{
		{1, 0},
		{0, 0}, // empty description
		{1, 0},
	}
	sim := newSimilarityMatrix(reduced)

	if sim.At(1, 1) != 1 {
		t.Errorf("zero row self-similarity = %v, want 1", sim.At(1, 1))
	}
	if sim.At(0, 1) != 0 || sim.At(1, 2) != 0 {
		t.Errorf("zero row should score 0 against others, got %v and %v", sim.At(0, 1), sim.At(1, 2))
	}
	if sim.At(0, 2) != 1 {
		t.Errorf("identical nonzero rows should score 1, got %v", sim.At(0, 2))
	}
}
