// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package scorers

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/recommend"
)

const (
	// maxPeers is the neighborhood size: only the most similar peers vote.
	maxPeers = 10

	// maxCollaborativeCandidates caps the collaborative scorer's output.
	maxCollaborativeCandidates = 15
)

// collaborativeReason explains peer-derived picks.
const collaborativeReason = "Completed by learners with similar interests"

// CollaborativeScorer ranks items by how many similar peers completed
// them, weighted by peer similarity.
type CollaborativeScorer struct {
	logger zerolog.Logger
}

// NewCollaborativeScorer creates the peer-completion scorer.
func NewCollaborativeScorer() *CollaborativeScorer {
	return &CollaborativeScorer{logger: logging.Component("scorer.collaborative")}
}

// Name implements recommend.Scorer.
func (s *CollaborativeScorer) Name() string { return recommend.SourceCollaborative }

// Score implements recommend.Scorer.
//
// With no peers there is no signal; the result is empty, not an error.
// Each item's score is the sum of the similarities of the neighborhood
// peers that completed it, clamped to 1.
func (s *CollaborativeScorer) Score(ctx context.Context, req *recommend.Request) ([]recommend.Candidate, error) {
	if len(req.Peers) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: collaborative scoring canceled: %v", ErrUnavailable, err)
	}

	peers := make([]recommend.Peer, len(req.Peers))
	copy(peers, req.Peers)
	sort.Slice(peers, func(i, j int) bool {
		if peers[i].Similarity != peers[j].Similarity {
			return peers[i].Similarity > peers[j].Similarity
		}
		return peers[i].ID < peers[j].ID
	})
	if len(peers) > maxPeers {
		peers = peers[:maxPeers]
	}

	catalog := make(map[string]struct{}, len(req.Catalog))
	for i := range req.Catalog {
		catalog[req.Catalog[i].ID] = struct{}{}
	}
	completed := req.Profile.CompletedSet()

	votes := make(map[string]float64)
	for _, peer := range peers {
		if peer.Similarity <= 0 || peer.ID == req.Profile.ID {
			continue
		}
		for _, itemID := range peer.Completed {
			if _, inCatalog := catalog[itemID]; !inCatalog {
				continue
			}
			if _, done := completed[itemID]; done {
				continue
			}
			votes[itemID] += peer.Similarity
		}
	}

	candidates := make([]recommend.Candidate, 0, len(votes))
	for itemID, score := range votes {
		if score > 1 {
			score = 1
		}
		candidates = append(candidates, recommend.Candidate{
			ItemID:  itemID,
			Score:   score,
			Reasons: []string{collaborativeReason},
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ItemID < candidates[j].ItemID
	})
	if len(candidates) > maxCollaborativeCandidates {
		candidates = candidates[:maxCollaborativeCandidates]
	}

	s.logger.Debug().
		Str("learner_id", req.Profile.ID).
		Int("peers", len(peers)).
		Int("candidates", len(candidates)).
		Msg("collaborative scoring complete")

	return candidates, nil
}
