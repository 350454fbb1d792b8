// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package mentor

import (
	"errors"
	"math"
	"testing"

	"github.com/pathforge/pathforge/internal/expertise"
)

var mentorSubjects = []string{"math", "physics"}

func TestSuggestMentorsIdealGapScoring(t *testing.T) {
	learners := []Learner{
		{ID: "seeker", Mastery: expertise.MasteryProfile{"math": 0.5, "physics": 0.5}},
		{ID: "mentor", Mastery: expertise.MasteryProfile{"math": 0.58, "physics": 0.5}},
	}

	m := NewMatcher()
	got, err := m.SuggestMentors(learners, mentorSubjects, 0, 0)
	if err != nil {
		t.Fatalf("SuggestMentors: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("suggestions = %v, want 1", got)
	}

	// The 0.08 math gap sits in the ideal window and contributes 8.
	// Physics gap 0 contributes nothing. The candidate's mean mastery
	// 0.54 earns a 10 bonus; vectors are near-identical, so similarity
	// is above the bonus window and adds nothing.
	s := got[0]
	if s.Score < 17.9 || s.Score > 18.1 {
		t.Errorf("score = %f, want ~18", s.Score)
	}
	if len(s.StrongSubjects) != 1 || s.StrongSubjects[0] != "math" {
		t.Errorf("StrongSubjects = %v, want [math]", s.StrongSubjects)
	}
}

func TestSuggestMentorsAsymmetric(t *testing.T) {
	learners := []Learner{
		{ID: "junior", Mastery: expertise.MasteryProfile{"math": 0.5, "physics": 0.5}},
		{ID: "senior", Mastery: expertise.MasteryProfile{"math": 0.6, "physics": 0.55}},
	}

	m := NewMatcher()

	forJunior, err := m.SuggestMentors(learners, mentorSubjects, 0, 0)
	if err != nil {
		t.Fatalf("SuggestMentors: %v", err)
	}
	if len(forJunior) != 1 || forJunior[0].LearnerID != "senior" {
		t.Errorf("junior's mentors = %v, want senior", forJunior)
	}

	forSenior, err := m.SuggestMentors(learners, mentorSubjects, 1, 0)
	if err != nil {
		t.Fatalf("SuggestMentors: %v", err)
	}
	if len(forSenior) != 0 {
		t.Errorf("senior's mentors = %v, want none", forSenior)
	}
}

func TestSuggestMentorsGapWindow(t *testing.T) {
	tests := []struct {
		name     string
		mastery  expertise.MasteryProfile
		eligible bool
	}{
		{"below min gap", expertise.MasteryProfile{"math": 0.53, "physics": 0.5}, false},
		{"at min gap", expertise.MasteryProfile{"math": 0.54, "physics": 0.5}, true},
		{"near max gap", expertise.MasteryProfile{"math": 0.649, "physics": 0.5}, true},
		{"beyond max gap", expertise.MasteryProfile{"math": 0.66, "physics": 0.5}, false},
		{"one subject too far ahead", expertise.MasteryProfile{"math": 0.58, "physics": 0.9}, false},
	}

	m := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			learners := []Learner{
				{ID: "seeker", Mastery: expertise.MasteryProfile{"math": 0.5, "physics": 0.5}},
				{ID: "candidate", Mastery: tt.mastery},
			}
			got, err := m.SuggestMentors(learners, mentorSubjects, 0, 0)
			if err != nil {
				t.Fatalf("SuggestMentors: %v", err)
			}
			if (len(got) == 1) != tt.eligible {
				t.Errorf("eligible = %v, want %v", len(got) == 1, tt.eligible)
			}
		})
	}
}

func TestSuggestMentorsInvalidIndex(t *testing.T) {
	m := NewMatcher()
	learners := []Learner{{ID: "only"}}

	if _, err := m.SuggestMentors(learners, mentorSubjects, -1, 0); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("err = %v, want ErrInvalidIndex", err)
	}
	if _, err := m.SuggestMentors(learners, mentorSubjects, 1, 0); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("err = %v, want ErrInvalidIndex", err)
	}
}

func TestSimilarityBonusWindow(t *testing.T) {
	seeker := Learner{ID: "seeker", Mastery: expertise.MasteryProfile{"math": 0.5}}
	candidate := Learner{ID: "candidate", Mastery: expertise.MasteryProfile{"math": 0.58}}
	gaps := []float64{0.08}

	tests := []struct {
		similarity float64
		wantBonus  bool
	}{
		{0.29, false},
		{0.3, true},
		{0.8, true},
		{0.81, false},
	}

	for _, tt := range tests {
		base := compositeScore(seeker, candidate, []string{"math"}, gaps, 0)
		got := compositeScore(seeker, candidate, []string{"math"}, gaps, tt.similarity)
		bonus := got - base
		if tt.wantBonus {
			if math.Abs(bonus-tt.similarity*10) > 1e-9 {
				t.Errorf("similarity %v: bonus = %f, want %f", tt.similarity, bonus, tt.similarity*10)
			}
		} else if bonus != 0 {
			t.Errorf("similarity %v: bonus = %f, want 0", tt.similarity, bonus)
		}
	}
}

func TestCompositeScoreComplementarity(t *testing.T) {
	subjects := []string{"math"}
	weakSeeker := Learner{ID: "s", Mastery: expertise.MasteryProfile{"math": 0.55}}
	strongCandidate := Learner{ID: "c", Mastery: expertise.MasteryProfile{"math": 0.65}}

	base := compositeScore(weakSeeker, strongCandidate, subjects, []float64{0.1}, 0)

	// Same candidate against a weak seeker adds the complementarity 5.
	weakerSeeker := Learner{ID: "s2", Mastery: expertise.MasteryProfile{"math": 0.35}}
	boosted := compositeScore(weakerSeeker, strongCandidate, subjects, []float64{0.1}, 0)

	if math.Abs((boosted-base)-5) > 1e-9 {
		t.Errorf("complementarity bonus = %f, want 5", boosted-base)
	}
}
