// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import (
	"math"
	"math/rand"
)

// svdSeed fixes the random sketch so repeated builds over the same
// catalog produce identical reductions.
const svdSeed = 42

// powerIterations stabilizes the randomized range finder on matrices
// with slowly decaying spectra, which TF-IDF matrices typically have.
const powerIterations = 2

// reduceDimensions projects the sparse TF-IDF rows onto their top-k
// variance-maximizing directions (truncated SVD via randomized subspace
// iteration) and returns the dense n x k' reduced matrix, k' <= k. The
// effective rank can come out below k on degenerate corpora; callers use
// len(result[0]) as the realized component count.
func reduceDimensions(rows []sparseVector, vocabSize, k int) [][]float64 {
	n := len(rows)
	if k > n {
		k = n
	}
	if k > vocabSize {
		k = vocabSize
	}
	if k < 1 {
		k = 1
	}

	rng := rand.New(rand.NewSource(svdSeed))

	// Sketch Y = X * Omega with a Gaussian test matrix.
	omega := make([][]float64, vocabSize)
	for j := range omega {
		col := make([]float64, k)
		for c := range col {
			col[c] = rng.NormFloat64()
		}
		omega[j] = col
	}
	y := mulSparseDense(rows, omega, n, k)

	// Power iterations Y <- X (X^T Y), re-orthonormalizing each pass to
	// keep the basis numerically independent.
	for it := 0; it < powerIterations; it++ {
		orthonormalize(y)
		z := mulSparseTransposeDense(rows, y, vocabSize, k)
		y = mulSparseDense(rows, z, n, k)
	}

	// Q spans the approximate range of X.
	rank := orthonormalize(y)
	q := y
	if rank < k {
		k = rank
		for i := range q {
			q[i] = q[i][:k]
		}
	}

	// Project: B = Q^T X (k x vocab), then eigendecompose the small
	// Gram matrix B B^T = W diag(lambda) W^T.
	b := make([][]float64, k)
	for c := range b {
		b[c] = make([]float64, vocabSize)
	}
	for i, row := range rows {
		for _, tw := range row {
			for c := 0; c < k; c++ {
				b[c][tw.index] += q[i][c] * tw.value
			}
		}
	}
	gram := make([][]float64, k)
	for a := range gram {
		gram[a] = make([]float64, k)
		for c := 0; c <= a; c++ {
			var dot float64
			for j := 0; j < vocabSize; j++ {
				dot += b[a][j] * b[c][j]
			}
			gram[a][c] = dot
		}
	}
	for a := range gram {
		for c := a + 1; c < k; c++ {
			gram[a][c] = gram[c][a]
		}
	}
	eigvals, eigvecs := jacobiEigen(gram)

	// Reduced representation U_k Sigma_k = Q W sqrt(lambda), with
	// components ordered by decreasing singular value.
	order := sortedDescending(eigvals)
	reduced := make([][]float64, n)
	for i := range reduced {
		out := make([]float64, k)
		for c, src := range order {
			sigma := math.Sqrt(math.Max(eigvals[src], 0))
			var v float64
			for m := 0; m < k; m++ {
				v += q[i][m] * eigvecs[m][src]
			}
			out[c] = v * sigma
		}
		reduced[i] = out
	}
	return reduced
}

// mulSparseDense computes X * D for sparse X (n rows) and dense D
// (vocab x k), yielding n x k.
func mulSparseDense(rows []sparseVector, d [][]float64, n, k int) [][]float64 {
	out := make([][]float64, n)
	for i, row := range rows {
		acc := make([]float64, k)
		for _, tw := range row {
			dj := d[tw.index]
			for c := 0; c < k; c++ {
				acc[c] += tw.value * dj[c]
			}
		}
		out[i] = acc
	}
	return out
}

// mulSparseTransposeDense computes X^T * Y for sparse X and dense Y
// (n x k), yielding vocab x k.
func mulSparseTransposeDense(rows []sparseVector, y [][]float64, vocabSize, k int) [][]float64 {
	out := make([][]float64, vocabSize)
	for j := range out {
		out[j] = make([]float64, k)
	}
	for i, row := range rows {
		yi := y[i]
		for _, tw := range row {
			oj := out[tw.index]
			for c := 0; c < k; c++ {
				oj[c] += tw.value * yi[c]
			}
		}
	}
	return out
}

// orthonormalize runs modified Gram-Schmidt over the columns of m
// (n x k, column-major access via m[i][c]) in place and returns the
// numerical rank. Dependent columns are zeroed and swapped to the end.
func orthonormalize(m [][]float64) int {
	if len(m) == 0 {
		return 0
	}
	n, k := len(m), len(m[0])
	rank := 0
	for c := 0; c < k; c++ {
		for p := 0; p < rank; p++ {
			var dot float64
			for i := 0; i < n; i++ {
				dot += m[i][c] * m[i][p]
			}
			for i := 0; i < n; i++ {
				m[i][c] -= dot * m[i][p]
			}
		}
		var norm float64
		for i := 0; i < n; i++ {
			norm += m[i][c] * m[i][c]
		}
		norm = math.Sqrt(norm)
		if norm < 1e-10 {
			for i := 0; i < n; i++ {
				m[i][c] = 0
			}
			continue
		}
		for i := 0; i < n; i++ {
			m[i][c] /= norm
		}
		if c != rank {
			for i := 0; i < n; i++ {
				m[i][rank], m[i][c] = m[i][c], m[i][rank]
			}
		}
		rank++
	}
	return rank
}

// jacobiEigen diagonalizes a small symmetric matrix with cyclic Jacobi
// rotations, returning eigenvalues and the eigenvector matrix (columns).
func jacobiEigen(a [][]float64) ([]float64, [][]float64) {
	k := len(a)
	v := make([][]float64, k)
	for i := range v {
		v[i] = make([]float64, k)
		v[i][i] = 1
	}
	const maxSweeps = 50
	for sweep := 0; sweep < maxSweeps; sweep++ {
		var off float64
		for p := 0; p < k; p++ {
			for q := p + 1; q < k; q++ {
				off += a[p][q] * a[p][q]
			}
		}
		if off < 1e-18 {
			break
		}
		for p := 0; p < k; p++ {
			for q := p + 1; q < k; q++ {
				if math.Abs(a[p][q]) < 1e-15 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c
				for i := 0; i < k; i++ {
					aip, aiq := a[i][p], a[i][q]
					a[i][p] = c*aip - s*aiq
					a[i][q] = s*aip + c*aiq
				}
				for i := 0; i < k; i++ {
					api, aqi := a[p][i], a[q][i]
					a[p][i] = c*api - s*aqi
					a[q][i] = s*api + c*aqi
				}
				for i := 0; i < k; i++ {
					vip, viq := v[i][p], v[i][q]
					v[i][p] = c*vip - s*viq
					v[i][q] = s*vip + c*viq
				}
			}
		}
	}
	vals := make([]float64, k)
	for i := 0; i < k; i++ {
		vals[i] = a[i][i]
	}
	return vals, v
}

// sortedDescending returns column indices ordered by decreasing value.
func sortedDescending(vals []float64) []int {
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && vals[order[j]] > vals[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
