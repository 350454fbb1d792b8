// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package adaptive

import (
	"context"
	"testing"

	"github.com/pathforge/pathforge/internal/expertise"
	"github.com/pathforge/pathforge/internal/recommend"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		name string
		perf Performance
		want ComplexityBand
	}{
		{"strong", Performance{AverageScore: 90, CompletionRate: 0.95}, ComplexityBand{6, 9}},
		{"strong boundary", Performance{AverageScore: 85, CompletionRate: 0.9}, ComplexityBand{6, 9}},
		{"solid", Performance{AverageScore: 75, CompletionRate: 0.8}, ComplexityBand{4, 7}},
		{"solid boundary", Performance{AverageScore: 70, CompletionRate: 0.7}, ComplexityBand{4, 7}},
		{"high score low completion", Performance{AverageScore: 95, CompletionRate: 0.5}, ComplexityBand{1, 5}},
		{"low score high completion", Performance{AverageScore: 40, CompletionRate: 1}, ComplexityBand{1, 5}},
		{"struggling", Performance{AverageScore: 30, CompletionRate: 0.2}, ComplexityBand{1, 5}},
		{"zero", Performance{}, ComplexityBand{1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BandFor(tt.perf); got != tt.want {
				t.Errorf("BandFor(%+v) = %+v, want %+v", tt.perf, got, tt.want)
			}
		})
	}
}

func TestComplexityBandContains(t *testing.T) {
	b := ComplexityBand{Min: 4, Max: 7}
	for level, want := range map[int]bool{3: false, 4: true, 7: true, 8: false} {
		if got := b.Contains(level); got != want {
			t.Errorf("Contains(%d) = %v, want %v", level, got, want)
		}
	}
}

func TestSynthesizeProfile(t *testing.T) {
	completed := []recommend.CatalogItem{
		{ID: "a", Category: "Programming", Complexity: 4, Tags: []string{"golang"}, Skills: []string{"testing"}},
		{ID: "b", Category: "Programming", Complexity: 6, Tags: []string{"golang", "web"}},
		{ID: "c", Category: "Design", Complexity: 3, Skills: []string{"figma"}},
	}

	profile := SynthesizeProfile("learner-1", completed)

	if profile.ID != "learner-1" {
		t.Errorf("ID = %s", profile.ID)
	}
	if len(profile.Completed) != 3 {
		t.Errorf("Completed = %v", profile.Completed)
	}

	levels := make(map[string]expertise.Level)
	for _, e := range profile.Expertise {
		levels[e.Subject] = e.Level
	}
	if levels["programming"] != 5 {
		t.Errorf("programming level = %d, want 5", levels["programming"])
	}
	if levels["design"] != 3 {
		t.Errorf("design level = %d, want 3", levels["design"])
	}

	wantInterests := map[string]bool{
		"programming": true, "design": true, "golang": true,
		"web": true, "testing": true, "figma": true,
	}
	if len(profile.Interests) != len(wantInterests) {
		t.Fatalf("Interests = %v", profile.Interests)
	}
	for _, in := range profile.Interests {
		if !wantInterests[in] {
			t.Errorf("unexpected interest %q", in)
		}
	}
}

func TestSynthesizeProfileRoundsAverage(t *testing.T) {
	completed := []recommend.CatalogItem{
		{ID: "a", Category: "math", Complexity: 3},
		{ID: "b", Category: "math", Complexity: 4},
	}

	profile := SynthesizeProfile("learner-1", completed)
	if len(profile.Expertise) != 1 || profile.Expertise[0].Level != 4 {
		t.Errorf("Expertise = %+v, want the 3.5 mean rounded to level 4", profile.Expertise)
	}
}

func TestSynthesizeProfileCapsExpertise(t *testing.T) {
	completed := []recommend.CatalogItem{
		{ID: "a", Category: "math", Complexity: 90},
	}

	profile := SynthesizeProfile("learner-1", completed)
	if len(profile.Expertise) != 1 || profile.Expertise[0].Level != expertise.MaxLevel {
		t.Errorf("Expertise = %+v, want level capped at %d", profile.Expertise, expertise.MaxLevel)
	}
}

func TestSelectFiltersToBand(t *testing.T) {
	catalog := []recommend.CatalogItem{
		{ID: "easy", Title: "Easy Go", Description: "golang basics for starters", Tags: []string{"golang"}, Complexity: 2, Rating: 4.5},
		{ID: "mid", Title: "Mid Go", Description: "golang patterns in practice", Tags: []string{"golang"}, Complexity: 5, Rating: 4.6},
		{ID: "hard", Title: "Hard Go", Description: "golang internals deep dive", Tags: []string{"golang"}, Complexity: 8, Rating: 4.7},
	}
	completed := []recommend.CatalogItem{
		{ID: "done", Category: "programming", Complexity: 5, Tags: []string{"golang"}},
	}

	engine := newTestEngine(t)
	s := NewSelector(engine, nil)

	resp, err := s.Select(context.Background(), "learner-1",
		Performance{AverageScore: 75, CompletionRate: 0.8}, completed, catalog)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	// Band is [4,7]: easy and hard are out of range.
	for _, c := range resp.Candidates {
		if c.ItemID == "easy" || c.ItemID == "hard" {
			t.Errorf("out-of-band item %s recommended", c.ItemID)
		}
	}
	if len(resp.Candidates) > DefaultLimit {
		t.Errorf("got %d candidates, limit is %d", len(resp.Candidates), DefaultLimit)
	}
}

func TestSelectExcludesCompleted(t *testing.T) {
	catalog := []recommend.CatalogItem{
		{ID: "done", Title: "Done Go", Description: "golang course already finished", Tags: []string{"golang"}, Complexity: 5, Rating: 4.9},
		{ID: "next", Title: "Next Go", Description: "golang course to take next", Tags: []string{"golang"}, Complexity: 5, Rating: 4.2},
	}
	completed := []recommend.CatalogItem{
		{ID: "done", Category: "programming", Complexity: 5, Tags: []string{"golang"}},
	}

	s := NewSelector(newTestEngine(t), nil)
	resp, err := s.Select(context.Background(), "learner-1",
		Performance{AverageScore: 75, CompletionRate: 0.8}, completed, catalog)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	for _, c := range resp.Candidates {
		if c.ItemID == "done" {
			t.Error("completed item recommended")
		}
	}
}

// fixedScorer scores every catalog item identically so selector tests
// exercise banding and exclusion, not ranking.
type fixedScorer struct{}

func (fixedScorer) Name() string { return recommend.SourceContent }

func (fixedScorer) Score(_ context.Context, req *recommend.Request) ([]recommend.Candidate, error) {
	out := make([]recommend.Candidate, 0, len(req.Catalog))
	for i := range req.Catalog {
		out = append(out, recommend.Candidate{ItemID: req.Catalog[i].ID, Score: 0.9})
	}
	return out, nil
}

func newTestEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	e, err := recommend.NewEngine(recommend.DefaultConfig(), []recommend.Scorer{fixedScorer{}}, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
