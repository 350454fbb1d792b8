// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package mentor matches learners with mentors and study groups based
// on per-subject mastery gaps. A good mentor is a few steps ahead: far
// enough to teach, close enough to relate.
package mentor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/expertise"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/textvec"
)

// ErrInvalidIndex is returned when a seeker index is out of range.
var ErrInvalidIndex = errors.New("mentor: seeker index out of range")

// Gap thresholds on the mastery scale.
const (
	// minMentorGap is the smallest lead that still counts as mentoring.
	minMentorGap = 0.04

	// maxMentorGap is the largest lead before the mentor is too far ahead.
	maxMentorGap = 0.15

	// idealGapLow and idealGapHigh bound the sweet spot rewarded most.
	idealGapLow  = 0.05
	idealGapHigh = 0.12
)

// Mastery thresholds used in scoring.
const (
	strongMastery = 0.6
	solidMastery  = 0.5
	expertMastery = 0.7
	weakMastery   = 0.4
)

// Similarity window in which shared context earns a bonus.
const (
	similarityBonusLow  = 0.3
	similarityBonusHigh = 0.8
)

// Learner is one participant in the mentoring pool.
type Learner struct {
	// ID is the learner identifier.
	ID string `json:"id"`

	// Mastery holds per-subject proficiency on the 0-1 scale.
	Mastery expertise.MasteryProfile `json:"mastery"`
}

// Suggestion is one ranked mentor candidate.
type Suggestion struct {
	// LearnerID identifies the suggested mentor.
	LearnerID string `json:"learner_id"`

	// Score is the composite match score; higher is better.
	Score float64 `json:"score"`

	// Similarity is the cosine similarity of the two mastery vectors.
	Similarity float64 `json:"similarity"`

	// StrongSubjects lists subjects where the mentor leads the seeker
	// inside the mentoring gap window.
	StrongSubjects []string `json:"strong_subjects,omitempty"`
}

// Matcher ranks mentor candidates and forms study groups.
type Matcher struct {
	logger zerolog.Logger
}

// NewMatcher creates a matcher.
func NewMatcher() *Matcher {
	return &Matcher{logger: logging.Component("mentor")}
}

// SuggestMentors ranks mentors for the learner at seekerIdx.
//
// A candidate is eligible when they lead the seeker by at least
// minMentorGap in some subject and by no more than maxMentorGap in any.
// Matching is asymmetric: A mentoring B says nothing about B mentoring
// A. Limit <= 0 returns all eligible candidates.
func (m *Matcher) SuggestMentors(learners []Learner, subjects []string, seekerIdx, limit int) ([]Suggestion, error) {
	if seekerIdx < 0 || seekerIdx >= len(learners) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, seekerIdx, len(learners))
	}
	seeker := learners[seekerIdx]

	suggestions := make([]Suggestion, 0, len(learners))
	for i, candidate := range learners {
		if i == seekerIdx {
			continue
		}
		gaps := expertise.Gaps(seeker.Mastery, candidate.Mastery, subjects)
		if !eligible(gaps) {
			continue
		}

		similarity := textvec.Cosine(seeker.Mastery.Vector(subjects), candidate.Mastery.Vector(subjects))
		suggestions = append(suggestions, Suggestion{
			LearnerID:      candidate.ID,
			Score:          compositeScore(seeker, candidate, subjects, gaps, similarity),
			Similarity:     similarity,
			StrongSubjects: strongSubjects(subjects, gaps),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].LearnerID < suggestions[j].LearnerID
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	m.logger.Debug().
		Str("seeker_id", seeker.ID).
		Int("pool", len(learners)-1).
		Int("eligible", len(suggestions)).
		Msg("mentor suggestions ready")

	return suggestions, nil
}

// eligible applies the gap window: some subject lead of at least
// minMentorGap, and no lead beyond maxMentorGap.
func eligible(gaps []float64) bool {
	hasLead := false
	for _, gap := range gaps {
		if gap > maxMentorGap {
			return false
		}
		if gap >= minMentorGap {
			hasLead = true
		}
	}
	return hasLead
}

// compositeScore combines gap quality, candidate strength, coverage,
// complementarity, and shared context into one match score.
func compositeScore(seeker, candidate Learner, subjects []string, gaps []float64, similarity float64) float64 {
	var score float64

	for _, gap := range gaps {
		switch {
		case gap >= idealGapLow && gap <= idealGapHigh:
			score += gap * 100
		case gap > 0:
			score += math.Min(gap*50, 10)
		}
	}

	switch mean := candidate.Mastery.Mean(subjects); {
	case mean >= expertMastery:
		score += 20
	case mean >= solidMastery:
		score += 10
	}

	for _, subject := range subjects {
		if candidate.Mastery[subject] >= strongMastery {
			score += 3
		}
		if seeker.Mastery[subject] < weakMastery && candidate.Mastery[subject] >= strongMastery {
			score += 5
		}
	}

	if similarity >= similarityBonusLow && similarity <= similarityBonusHigh {
		score += similarity * 10
	}
	return score
}

// strongSubjects lists the subjects where the gap sits inside the
// mentoring window.
func strongSubjects(subjects []string, gaps []float64) []string {
	var out []string
	for i, gap := range gaps {
		if gap >= minMentorGap && gap <= maxMentorGap {
			out = append(out, subjects[i])
		}
	}
	return out
}
