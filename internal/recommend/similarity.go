// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import "math"

// Matrix is a dense, symmetric all-pairs cosine similarity matrix. The
// diagonal is exactly 1.0. Immutable after construction.
type Matrix struct {
	n      int
	scores [][]float64
}

// Size returns the matrix dimension (number of catalog rows).
func (m *Matrix) Size() int { return m.n }

// At returns the similarity between rows i and j.
func (m *Matrix) At(i, j int) float64 { return m.scores[i][j] }

// Row returns row i. Callers must not modify the returned slice.
func (m *Matrix) Row(i int) []float64 { return m.scores[i] }

// newSimilarityMatrix computes pairwise cosine over the reduced rows.
// Zero-magnitude rows score 0 against everything; every diagonal entry is
// set to 1 rather than computed, so self-similarity is exact even for
// zero vectors.
func newSimilarityMatrix(reduced [][]float64) *Matrix {
	n := len(reduced)
	norms := make([]float64, n)
	for i, row := range reduced {
		var sum float64
		for _, v := range row {
			sum += v * v
		}
		norms[i] = math.Sqrt(sum)
	}

	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
		scores[i][i] = 1
	}
	for i := 0; i < n; i++ {
		if norms[i] == 0 {
			continue
		}
		ri := reduced[i]
		for j := i + 1; j < n; j++ {
			if norms[j] == 0 {
				continue
			}
			rj := reduced[j]
			var dot float64
			for c := range ri {
				dot += ri[c] * rj[c]
			}
			s := dot / (norms[i] * norms[j])
			scores[i][j] = s
			scores[j][i] = s
		}
	}
	return &Matrix{n: n, scores: scores}
}
