// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package textvec

import (
	"math"
)

// VectorSpace is a term-weighted (TF-IDF) vector space built over a fixed
// set of documents. Vectors are L2-normalized, so cosine similarity between
// two documents reduces to a dot product.
//
// The space is immutable after construction and safe for concurrent reads.
type VectorSpace struct {
	vocab   map[string]int
	idf     []float64
	vectors [][]float64
}

// NewVectorSpace builds a TF-IDF space over the given documents.
// Document order is preserved: Vector(i) corresponds to docs[i].
func NewVectorSpace(docs []string) *VectorSpace {
	tokenized := make([][]string, len(docs))
	vocab := make(map[string]int)
	df := make([]int, 0, 64)

	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}

			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
				df = append(df, 0)
			}
			df[idx]++
		}
	}

	// Smoothed IDF so terms present in every document keep non-zero weight.
	n := float64(len(docs))
	idf := make([]float64, len(df))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		vec := make([]float64, len(vocab))
		for _, tok := range tokens {
			vec[vocab[tok]]++
		}
		for j := range vec {
			vec[j] *= idf[j]
		}
		normalize(vec)
		vectors[i] = vec
	}

	return &VectorSpace{
		vocab:   vocab,
		idf:     idf,
		vectors: vectors,
	}
}

// Vector returns the L2-normalized TF-IDF vector for document i.
func (s *VectorSpace) Vector(i int) []float64 {
	if i < 0 || i >= len(s.vectors) {
		return nil
	}
	return s.vectors[i]
}

// Len returns the number of documents in the space.
func (s *VectorSpace) Len() int {
	return len(s.vectors)
}

// VocabularySize returns the number of distinct terms in the space.
func (s *VectorSpace) VocabularySize() int {
	return len(s.vocab)
}

// Similarity returns the cosine similarity between documents i and j.
func (s *VectorSpace) Similarity(i, j int) float64 {
	return Cosine(s.Vector(i), s.Vector(j))
}

// Cosine computes cosine similarity between two vectors.
// Mismatched lengths or zero vectors yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// normalize scales vec to unit L2 norm in place. Zero vectors are left as-is.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range vec {
		vec[i] *= inv
	}
}
