// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package complexity

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{" 7 ", 7, false},
		{"Complexity: 3", 3, false},
		{"level 9 (research)", 9, false},
		{"0", 0, true},
		{"10", 0, true},
		{"no number here", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHeuristicThresholds(t *testing.T) {
	word := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }

	tests := []struct {
		words int
		want  int
	}{
		{10, 1},
		{99, 1},
		{100, 3},
		{299, 3},
		{300, 5},
		{499, 5},
		{500, 7},
		{2000, 7},
	}

	for _, tt := range tests {
		if got := Heuristic("", word(tt.words)); got != tt.want {
			t.Errorf("Heuristic(%d words) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	if got := LevelName(1); got != "introductory" {
		t.Errorf("LevelName(1) = %q", got)
	}
	if got := LevelName(9); got != "research-level" {
		t.Errorf("LevelName(9) = %q", got)
	}
	if got := LevelName(0); got != "unknown" {
		t.Errorf("LevelName(0) = %q", got)
	}
}

// stubClassifier returns a fixed level or error and counts calls.
type stubClassifier struct {
	level int
	err   error
	calls int
}

func (s *stubClassifier) Classify(context.Context, string, string) (int, error) {
	s.calls++
	return s.level, s.err
}

func TestEstimatorMemoizes(t *testing.T) {
	stub := &stubClassifier{level: 4}
	e := NewEstimator(stub, nil)

	for i := 0; i < 3; i++ {
		if got := e.Estimate(context.Background(), "item-1", "Title", "Desc"); got != 4 {
			t.Fatalf("Estimate = %d, want 4", got)
		}
	}
	if stub.calls != 1 {
		t.Errorf("classifier called %d times, want 1", stub.calls)
	}
}

func TestEstimatorFallsBackOnError(t *testing.T) {
	stub := &stubClassifier{err: errors.New("upstream down")}
	e := NewEstimator(stub, nil)

	long := strings.Repeat("word ", 350)
	if got := e.Estimate(context.Background(), "item-1", "Title", long); got != 5 {
		t.Errorf("Estimate = %d, want heuristic value 5", got)
	}
}

func TestEstimatorRejectsOutOfScaleClassifier(t *testing.T) {
	stub := &stubClassifier{level: 42}
	e := NewEstimator(stub, nil)

	if got := e.Estimate(context.Background(), "item-1", "Title", "short"); got != 1 {
		t.Errorf("Estimate = %d, want heuristic value 1", got)
	}
}

func TestEstimatorNilClassifierUsesHeuristic(t *testing.T) {
	e := NewEstimator(nil, nil)
	if got := e.Estimate(context.Background(), "item-1", "Title", "short description"); got != 1 {
		t.Errorf("Estimate = %d, want 1", got)
	}
}
