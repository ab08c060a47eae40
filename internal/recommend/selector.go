// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import "sort"

// topK returns the k most similar products to the row at queryRow,
// excluding the query itself. Ordering is by score descending with a
// stable tie-break on original row order, so results are deterministic
// even when descriptions are identical. k <= 0 yields nil; k larger than
// the candidate pool yields the whole pool.
func (m *Model) topK(queryRow, k int) []Scored {
	if k <= 0 {
		return nil
	}
	row := m.similarity.Row(queryRow)
	candidates := make([]int, 0, len(row)-1)
	for i := range row {
		if i != queryRow {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return row[candidates[a]] > row[candidates[b]]
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]Scored, k)
	for i := 0; i < k; i++ {
		out[i] = Scored{
			Product: m.catalog.At(candidates[i]),
			Score:   row[candidates[i]],
		}
	}
	return out
}
