// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package mentor

import (
	"fmt"
	"testing"

	"github.com/pathforge/pathforge/internal/expertise"
)

func TestFormStudyGroupsFoldsRemainder(t *testing.T) {
	// Nine mutually compatible learners split by group size 4 into
	// groups of 4 and 5, never a dangling single.
	learners := make([]Learner, 0, 9)
	for i := 0; i < 9; i++ {
		learners = append(learners, Learner{
			ID: fmt.Sprintf("learner-%d", i),
			Mastery: expertise.MasteryProfile{
				"math":    expertise.Mastery(0.5 + float64(i)*0.01),
				"physics": 0.5,
			},
		})
	}

	m := NewMatcher()
	groups, err := m.FormStudyGroups(learners, mentorSubjects, 0, 4)
	if err != nil {
		t.Fatalf("FormStudyGroups: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if len(groups[0].MemberIDs) != 4 || len(groups[1].MemberIDs) != 5 {
		t.Errorf("group sizes = %d and %d, want 4 and 5",
			len(groups[0].MemberIDs), len(groups[1].MemberIDs))
	}
	if groups[0].MemberIDs[0] != "learner-0" {
		t.Errorf("seeker not first: %v", groups[0].MemberIDs)
	}
}

func TestFormStudyGroupsFiltersIncompatiblePeers(t *testing.T) {
	learners := []Learner{
		{ID: "seeker", Mastery: expertise.MasteryProfile{"math": 0.5, "physics": 0.5}},
		{ID: "close", Mastery: expertise.MasteryProfile{"math": 0.55, "physics": 0.45}},
		{ID: "far-subject", Mastery: expertise.MasteryProfile{"math": 0.8, "physics": 0.5}},
		{ID: "orthogonal", Mastery: expertise.MasteryProfile{"math": 0, "physics": 0}},
	}

	m := NewMatcher()
	groups, err := m.FormStudyGroups(learners, mentorSubjects, 0, 2)
	if err != nil {
		t.Fatalf("FormStudyGroups: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("groups = %v, want 1", groups)
	}
	got := groups[0].MemberIDs
	if len(got) != 2 || got[0] != "seeker" || got[1] != "close" {
		t.Errorf("members = %v, want [seeker close]", got)
	}
}

func TestFormStudyGroupsSeekerAlone(t *testing.T) {
	learners := []Learner{
		{ID: "seeker", Mastery: expertise.MasteryProfile{"math": 0.5}},
		{ID: "stranger", Mastery: expertise.MasteryProfile{"math": 0.9}},
	}

	m := NewMatcher()
	groups, err := m.FormStudyGroups(learners, []string{"math"}, 0, 3)
	if err != nil {
		t.Fatalf("FormStudyGroups: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups = %v, want none without compatible peers", groups)
	}
}

func TestFormStudyGroupsNeverUndersized(t *testing.T) {
	// Three mutually compatible learners cannot fill a group of four; no
	// standalone undersized group may be emitted.
	learners := []Learner{
		{ID: "seeker", Mastery: expertise.MasteryProfile{"math": 0.5, "physics": 0.5}},
		{ID: "p1", Mastery: expertise.MasteryProfile{"math": 0.55, "physics": 0.5}},
		{ID: "p2", Mastery: expertise.MasteryProfile{"math": 0.45, "physics": 0.55}},
	}

	m := NewMatcher()
	groups, err := m.FormStudyGroups(learners, mentorSubjects, 0, 4)
	if err != nil {
		t.Fatalf("FormStudyGroups: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups = %v, want none when the pool cannot fill one group", groups)
	}
}

func TestFormStudyGroupsValidation(t *testing.T) {
	learners := []Learner{{ID: "a"}, {ID: "b"}}
	m := NewMatcher()

	if _, err := m.FormStudyGroups(learners, mentorSubjects, 5, 3); err == nil {
		t.Error("expected error for out-of-range seeker")
	}
	if _, err := m.FormStudyGroups(learners, mentorSubjects, 0, 1); err == nil {
		t.Error("expected error for group size below 2")
	}
}

func TestAnalyzeNetwork(t *testing.T) {
	learners := []Learner{
		{ID: "junior", Mastery: expertise.MasteryProfile{"math": 0.5, "physics": 0.5}},
		{ID: "senior", Mastery: expertise.MasteryProfile{"math": 0.6, "physics": 0.55}},
		{ID: "loner", Mastery: expertise.MasteryProfile{"math": 0.95, "physics": 0.95}},
	}

	m := NewMatcher()
	report := m.AnalyzeNetwork(learners, mentorSubjects)

	if report.MentorCounts["junior"] != 1 {
		t.Errorf("junior mentor count = %d, want 1", report.MentorCounts["junior"])
	}
	if report.MenteeCounts["senior"] != 1 {
		t.Errorf("senior mentee count = %d, want 1", report.MenteeCounts["senior"])
	}
	if len(report.Isolated) != 1 || report.Isolated[0] != "loner" {
		t.Errorf("Isolated = %v, want [loner]", report.Isolated)
	}
	if report.AverageConnections <= 0 {
		t.Errorf("AverageConnections = %f", report.AverageConnections)
	}
}

func TestLearningPathMentors(t *testing.T) {
	learners := []Learner{
		{ID: "seeker", Mastery: expertise.MasteryProfile{"sql": 0.2, "go": 0.7}},
		{ID: "dba", Mastery: expertise.MasteryProfile{"sql": 0.9}},
		{ID: "generalist", Mastery: expertise.MasteryProfile{"sql": 0.65, "go": 0.8}},
	}

	m := NewMatcher()
	got, err := m.LearningPathMentors(learners, 0, []string{"sql", "go", "rust"})
	if err != nil {
		t.Fatalf("LearningPathMentors: %v", err)
	}

	// "go" is skipped: the seeker is already competent. "sql" picks the
	// strongest candidate. "rust" has no strong learner and stays open.
	if len(got) != 2 {
		t.Fatalf("mentors = %v, want 2 entries", got)
	}
	if got[0].Subject != "sql" || got[0].LearnerID != "dba" {
		t.Errorf("sql mentor = %+v, want dba", got[0])
	}
	if got[1].Subject != "rust" || got[1].LearnerID != "" {
		t.Errorf("rust entry = %+v, want unfilled", got[1])
	}
}
