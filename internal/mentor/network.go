// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package mentor

import (
	"fmt"
	"sort"

	"github.com/pathforge/pathforge/internal/expertise"
)

// NetworkReport summarizes mentoring connectivity across a learner pool.
type NetworkReport struct {
	// MentorCounts maps each learner to the number of learners who
	// could mentor them.
	MentorCounts map[string]int `json:"mentor_counts"`

	// MenteeCounts maps each learner to the number of learners they
	// could mentor.
	MenteeCounts map[string]int `json:"mentee_counts"`

	// Isolated lists learners with no mentors and no mentees, sorted.
	Isolated []string `json:"isolated,omitempty"`

	// AverageConnections is the mean of mentor plus mentee counts
	// across the pool.
	AverageConnections float64 `json:"average_connections"`
}

// AnalyzeNetwork evaluates every ordered learner pair against the
// mentoring gap window and reports the resulting connectivity.
func (m *Matcher) AnalyzeNetwork(learners []Learner, subjects []string) *NetworkReport {
	report := &NetworkReport{
		MentorCounts: make(map[string]int, len(learners)),
		MenteeCounts: make(map[string]int, len(learners)),
	}
	for _, l := range learners {
		report.MentorCounts[l.ID] = 0
		report.MenteeCounts[l.ID] = 0
	}

	for i, seeker := range learners {
		for j, candidate := range learners {
			if i == j {
				continue
			}
			if eligible(expertise.Gaps(seeker.Mastery, candidate.Mastery, subjects)) {
				report.MentorCounts[seeker.ID]++
				report.MenteeCounts[candidate.ID]++
			}
		}
	}

	var total int
	for _, l := range learners {
		connections := report.MentorCounts[l.ID] + report.MenteeCounts[l.ID]
		total += connections
		if connections == 0 {
			report.Isolated = append(report.Isolated, l.ID)
		}
	}
	sort.Strings(report.Isolated)
	if len(learners) > 0 {
		report.AverageConnections = float64(total) / float64(len(learners))
	}

	m.logger.Debug().
		Int("pool", len(learners)).
		Int("isolated", len(report.Isolated)).
		Float64("avg_connections", report.AverageConnections).
		Msg("mentorship network analyzed")

	return report
}

// PathMentor recommends one mentor for one step of a learning path.
type PathMentor struct {
	// Subject is the path step needing support.
	Subject string `json:"subject"`

	// LearnerID identifies the recommended mentor, empty when no
	// learner in the pool is strong in the subject.
	LearnerID string `json:"learner_id,omitempty"`

	// Mastery is the mentor's mastery in the subject.
	Mastery expertise.Mastery `json:"mastery,omitempty"`
}

// LearningPathMentors picks a mentor per path subject the seeker is
// weak in. Subjects the seeker already handles are skipped. For each
// remaining step the strongest available learner is chosen, provided
// they reach the strong-mastery bar; ties go to the lexically smaller ID.
func (m *Matcher) LearningPathMentors(learners []Learner, seekerIdx int, pathSubjects []string) ([]PathMentor, error) {
	if seekerIdx < 0 || seekerIdx >= len(learners) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, seekerIdx, len(learners))
	}
	seeker := learners[seekerIdx]

	mentors := make([]PathMentor, 0, len(pathSubjects))
	for _, subject := range pathSubjects {
		if seeker.Mastery[subject] >= weakMastery {
			continue
		}

		best := PathMentor{Subject: subject}
		for i, candidate := range learners {
			if i == seekerIdx {
				continue
			}
			mastery := candidate.Mastery[subject]
			if mastery < expertise.Mastery(strongMastery) {
				continue
			}
			if mastery > best.Mastery || (mastery == best.Mastery && (best.LearnerID == "" || candidate.ID < best.LearnerID)) {
				best.LearnerID = candidate.ID
				best.Mastery = mastery
			}
		}
		mentors = append(mentors, best)
	}
	return mentors, nil
}
