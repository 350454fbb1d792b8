// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package textvec turns free-text fields into comparable numeric vectors.
//
// It provides the text primitives shared by the content-based scorer and the
// curriculum sequencer: tokenization with stop-word removal, frequency-based
// keyword extraction, a TF-IDF vector space over a document set, cosine
// similarity, and a deterministic k-means clustering pass.
//
// Everything here is pure computation over caller-supplied snapshots; there
// is no shared mutable state and no randomness.
package textvec

import (
	"sort"
	"strings"
	"unicode"
)

// minTokenLength is the minimum length for a token to be considered salient.
const minTokenLength = 4

// stopWords are common English words excluded from tokenization.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "are": {}, "for": {}, "with": {}, "this": {},
	"that": {}, "from": {}, "they": {}, "have": {}, "had": {}, "but": {},
	"not": {}, "you": {}, "all": {}, "can": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {},
	"him": {}, "his": {}, "how": {}, "its": {}, "may": {}, "new": {},
	"now": {}, "old": {}, "see": {}, "two": {}, "who": {}, "did": {},
	"she": {}, "use": {}, "way": {}, "man": {}, "men": {}, "say": {},
	"few": {}, "big": {}, "end": {}, "lot": {}, "own": {}, "run": {},
	"put": {}, "why": {}, "let": {}, "any": {}, "try": {}, "your": {},
	"will": {}, "what": {}, "when": {}, "which": {}, "their": {},
	"about": {}, "into": {}, "more": {}, "other": {}, "some": {},
	"then": {}, "them": {}, "these": {}, "than": {}, "also": {},
}

// Tokenize splits text into lowercase word tokens, dropping stop words and
// tokens shorter than the minimum salient length.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}

// Keywords extracts up to max salient keywords from text, ordered by
// descending frequency. Ties are broken alphabetically for determinism.
func Keywords(text string, max int) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 || max <= 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}

	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > max {
		words = words[:max]
	}
	return words
}

// WordCount returns the number of whitespace-separated words in text.
// Used by the heuristic complexity fallback.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
