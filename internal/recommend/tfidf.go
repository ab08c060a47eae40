// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// termWeight is one non-zero entry of a sparse document vector.
type termWeight struct {
	index int
	value float64
}

// sparseVector holds a document's non-zero term weights sorted by index.
type sparseVector []termWeight

// tfidfResult is the fitted vectorizer output: one L2-normalized sparse
// row per document plus the vocabulary size.
type tfidfResult struct {
	rows      []sparseVector
	vocabSize int
}

// vectorize fits TF-IDF over the documents: lowercase tokenization into
// word-character runs of length >= 2, stop-word removal, raw term counts,
// smoothed IDF ln((1+n)/(1+df))+1, then per-row L2 normalization.
//
// Documents with no surviving terms become zero vectors. When the entire
// corpus yields no terms the result is ErrEmptyVocabulary.
func vectorize(docs []string) (*tfidfResult, error) {
	n := len(docs)
	counts := make([]map[int]int, n)
	vocab := make(map[string]int)
	df := make([]int, 0, 256)

	for d, doc := range docs {
		row := make(map[int]int)
		for _, tok := range tokenize(doc) {
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
				df = append(df, 0)
			}
			if row[idx] == 0 {
				df[idx]++
			}
			row[idx]++
		}
		counts[d] = row
	}
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	idf := make([]float64, len(df))
	for i, f := range df {
		idf[i] = math.Log(float64(1+n)/float64(1+f)) + 1
	}

	rows := make([]sparseVector, n)
	for d, row := range counts {
		if len(row) == 0 {
			rows[d] = nil
			continue
		}
		vec := make(sparseVector, 0, len(row))
		var norm float64
		for idx, count := range row {
			w := float64(count) * idf[idx]
			vec = append(vec, termWeight{index: idx, value: w})
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for i := range vec {
				vec[i].value /= norm
			}
		}
		sort.Slice(vec, func(i, j int) bool { return vec[i].index < vec[j].index })
		rows[d] = vec
	}
	return &tfidfResult{rows: rows, vocabSize: len(vocab)}, nil
}

// tokenize lowercases text and splits it into runs of letters and digits,
// dropping single-character tokens and stop words.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if len([]rune(tok)) < 2 {
			return
		}
		if _, stop := englishStopWords[tok]; stop {
			return
		}
		tokens = append(tokens, tok)
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}
