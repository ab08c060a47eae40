// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import (
	"math"
	"reflect"
	"sort"
	"testing"
)

func TestReduceDimensions_Deterministic(t *testing.T) {
	tf, err := vectorize([]string{
		"red cotton shirt",
		"blue cotton shirt",
		"leather wallet brown",
		"running sports shoes",
	})
	if err != nil {
		t.Fatalf("vectorize() error = %v", err)
	}

	a := reduceDimensions(tf.rows, tf.vocabSize, 3)
	b := reduceDimensions(tf.rows, tf.vocabSize, 3)
	if !reflect.DeepEqual(a, b) {
		t.Error("reduceDimensions should be deterministic across calls")
	}
}

func TestReduceDimensions_Shape(t *testing.T) {
	tf, err := vectorize([]string{
		"red cotton shirt",
		"blue denim jeans",
		"leather wallet",
	})
	if err != nil {
		t.Fatalf("vectorize() error = %v", err)
	}

	// k is clamped to n and to vocabSize.
	reduced := reduceDimensions(tf.rows, tf.vocabSize, 100)
	if len(reduced) != 3 {
		t.Fatalf("len(reduced) = %d, want 3", len(reduced))
	}
	k := len(reduced[0])
	if k < 1 || k > 3 {
		t.Errorf("component count = %d, want within [1, 3]", k)
	}
	for i := range reduced {
		if len(reduced[i]) != k {
			t.Errorf("ragged reduced matrix at row %d", i)
		}
	}
}

// With k at full rank the reduction is a rotation, so pairwise cosine in
// reduced space must match cosine over the TF-IDF rows.
func TestReduceDimensions_PreservesCosine(t *testing.T) {
	docs := []string{
		"red solid cotton shirt",
		"blue solid cotton shirt",
		"woman skinny denim jeans",
		"leather office wallet",
		"running mesh sports shoes",
	}
	tf, err := vectorize(docs)
	if err != nil {
		t.Fatalf("vectorize() error = %v", err)
	}
	reduced := reduceDimensions(tf.rows, tf.vocabSize, len(docs))
	sim := newSimilarityMatrix(reduced)

	for i := 0; i < len(docs); i++ {
		for j := 0; j < len(docs); j++ {
			want := cosineSparse(tf.rows[i], tf.rows[j])
			if i == j {
				want = 1
			}
			if got := sim.At(i, j); math.Abs(got-want) > 1e-6 {
				t.Errorf("sim(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestOrthonormalize(t *testing.T) {
	// Two independent columns plus a dependent third (col2 = col0 + col1).
	m := [][]float64{
		{1, 0, 1},
		{1, 1, 2},
		{0, 1, 1},
	}
	rank := orthonormalize(m)
	if rank != 2 {
		t.Fatalf("rank = %d, want 2", rank)
	}
	// The leading rank columns must be orthonormal.
	for a := 0; a < rank; a++ {
		for b := 0; b <= a; b++ {
			var dot float64
			for i := range m {
				dot += m[i][a] * m[i][b]
			}
			want := 0.0
			if a == b {
				want = 1.0
			}
			if math.Abs(dot-want) > 1e-12 {
				t.Errorf("col%d . col%d = %v, want %v", a, b, dot, want)
			}
		}
	}
	// The dependent column ends up zeroed past the rank.
	for i := range m {
		if m[i][2] != 0 {
			t.Errorf("dependent column should be zeroed, row %d = %v", i, m[i][2])
		}
	}
}

func TestJacobiEigen(t *testing.T) {
	// [[2,1],[1,2]] has eigenvalues 3 and 1.
	a := [][]float64{{2, 1}, {1, 2}}
	vals, vecs := jacobiEigen(a)

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	if math.Abs(sorted[0]-1) > 1e-10 || math.Abs(sorted[1]-3) > 1e-10 {
		t.Errorf("eigenvalues = %v, want {1, 3}", vals)
	}

	// Eigenvector columns stay unit length.
	for c := 0; c < 2; c++ {
		norm := vecs[0][c]*vecs[0][c] + vecs[1][c]*vecs[1][c]
		if math.Abs(norm-1) > 1e-10 {
			t.Errorf("eigenvector %d norm^2 = %v, want 1", c, norm)
		}
	}
}

func TestSortedDescending(t *testing.T) {
	got := sortedDescending([]float64{0.5, 3.0, 1.5})
	want := []int{1, 2, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortedDescending = %v, want %v", got, want)
	}
}
