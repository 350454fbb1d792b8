// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package mentor

import (
	"fmt"
	"math"
	"sort"

	"github.com/pathforge/pathforge/internal/expertise"
	"github.com/pathforge/pathforge/internal/textvec"
)

// Study group compatibility thresholds.
const (
	// groupSimilarityFloor is the minimum mastery-vector similarity for
	// two learners to study together.
	groupSimilarityFloor = 0.3

	// groupMaxSubjectGap is the largest per-subject mastery difference
	// tolerated inside a group, in either direction.
	groupMaxSubjectGap = 0.2
)

// StudyGroup is one formed group; the seeker is always in the first group.
type StudyGroup struct {
	// MemberIDs lists the group members.
	MemberIDs []string `json:"member_ids"`
}

// FormStudyGroups partitions the seeker and their compatible peers into
// groups of about groupSize members.
//
// A peer is compatible when their mastery vector is similar enough to
// the seeker's and no single subject differs by more than
// groupMaxSubjectGap in either direction. Peers are taken in descending
// similarity order, so earlier groups are tighter. Only full groups are
// formed: a trailing remainder smaller than groupSize is folded into
// the last full group, and a pool too small for even one full group
// yields no groups at all.
func (m *Matcher) FormStudyGroups(learners []Learner, subjects []string, seekerIdx, groupSize int) ([]StudyGroup, error) {
	if seekerIdx < 0 || seekerIdx >= len(learners) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, seekerIdx, len(learners))
	}
	if groupSize < 2 {
		return nil, fmt.Errorf("mentor: group size must be at least 2, got %d", groupSize)
	}
	seeker := learners[seekerIdx]
	seekerVec := seeker.Mastery.Vector(subjects)

	type scoredPeer struct {
		id         string
		similarity float64
	}
	peers := make([]scoredPeer, 0, len(learners))
	for i, peer := range learners {
		if i == seekerIdx {
			continue
		}
		similarity := textvec.Cosine(seekerVec, peer.Mastery.Vector(subjects))
		if similarity < groupSimilarityFloor {
			continue
		}
		if !withinSubjectGaps(seeker.Mastery, peer.Mastery, subjects) {
			continue
		}
		peers = append(peers, scoredPeer{id: peer.ID, similarity: similarity})
	}

	sort.Slice(peers, func(i, j int) bool {
		if peers[i].similarity != peers[j].similarity {
			return peers[i].similarity > peers[j].similarity
		}
		return peers[i].id < peers[j].id
	})

	members := make([]string, 0, len(peers)+1)
	members = append(members, seeker.ID)
	for _, p := range peers {
		members = append(members, p.id)
	}
	if len(members) < groupSize {
		m.logger.Debug().
			Str("seeker_id", seeker.ID).
			Int("compatible_peers", len(peers)).
			Msg("not enough compatible learners for a full study group")
		return nil, nil
	}

	groups := make([]StudyGroup, 0, (len(members)+groupSize-1)/groupSize)
	for start := 0; start < len(members); start += groupSize {
		end := start + groupSize
		if end > len(members) {
			end = len(members)
		}
		groups = append(groups, StudyGroup{MemberIDs: members[start:end]})
	}
	if n := len(groups); n > 1 && len(groups[n-1].MemberIDs) < groupSize {
		groups[n-2].MemberIDs = append(groups[n-2].MemberIDs, groups[n-1].MemberIDs...)
		groups = groups[:n-1]
	}

	m.logger.Debug().
		Str("seeker_id", seeker.ID).
		Int("compatible_peers", len(peers)).
		Int("groups", len(groups)).
		Msg("study groups formed")

	return groups, nil
}

func withinSubjectGaps(a, b expertise.MasteryProfile, subjects []string) bool {
	for _, gap := range expertise.Gaps(a, b, subjects) {
		if math.Abs(gap) > groupMaxSubjectGap {
			return false
		}
	}
	return true
}
