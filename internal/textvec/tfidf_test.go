// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package textvec

import (
	"math"
	"testing"
)

func TestVectorSpaceSimilarity(t *testing.T) {
	docs := []string{
		"machine learning algorithms with python",
		"machine learning fundamentals with python",
		"watercolor painting techniques",
	}

	space := NewVectorSpace(docs)

	if space.Len() != 3 {
		t.Fatalf("Len = %d, want 3", space.Len())
	}

	simRelated := space.Similarity(0, 1)
	simUnrelated := space.Similarity(0, 2)

	if simRelated <= simUnrelated {
		t.Errorf("related docs should score higher: related=%f unrelated=%f", simRelated, simUnrelated)
	}
	if simUnrelated != 0 {
		t.Errorf("disjoint docs should have zero similarity, got %f", simUnrelated)
	}
}

func TestVectorSpaceSelfSimilarity(t *testing.T) {
	space := NewVectorSpace([]string{"distributed systems consensus protocols"})

	if sim := space.Similarity(0, 0); math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("self similarity = %f, want 1.0", sim)
	}
}

func TestVectorSpaceEmptyDoc(t *testing.T) {
	space := NewVectorSpace([]string{"", "database indexing strategies"})

	if sim := space.Similarity(0, 1); sim != 0 {
		t.Errorf("empty doc similarity = %f, want 0", sim)
	}
}

func TestVectorOutOfRange(t *testing.T) {
	space := NewVectorSpace([]string{"container orchestration"})

	if v := space.Vector(-1); v != nil {
		t.Error("Vector(-1) should be nil")
	}
	if v := space.Vector(5); v != nil {
		t.Error("Vector(5) should be nil")
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"mismatched length", []float64{1, 0}, []float64{1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine = %f, want %f", got, tt.want)
			}
		})
	}
}
