// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package textvec

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "drops short tokens",
			text: "go is fun",
			want: nil,
		},
		{
			name: "drops stop words",
			text: "this that machine learning with python",
			want: []string{"machine", "learning", "python"},
		},
		{
			name: "case insensitive",
			text: "Machine LEARNING Machine",
			want: []string{"machine", "learning", "machine"},
		},
		{
			name: "splits on punctuation",
			text: "data-science, statistics; algorithms!",
			want: []string{"data", "science", "statistics", "algorithms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	text := "python python python statistics statistics algebra"

	got := Keywords(text, 2)
	want := []string{"python", "statistics"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestKeywordsTieBreakAlphabetical(t *testing.T) {
	got := Keywords("zebra apple zebra apple", 2)
	want := []string{"apple", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestKeywordsLimits(t *testing.T) {
	if got := Keywords("", 5); got != nil {
		t.Errorf("Keywords on empty text = %v, want nil", got)
	}
	if got := Keywords("machine learning", 0); got != nil {
		t.Errorf("Keywords with max 0 = %v, want nil", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"a few short words here", 5},
		{"  padded   whitespace  ", 2},
	}

	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
