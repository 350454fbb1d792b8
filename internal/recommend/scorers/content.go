// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package scorers provides the signal sources fused by the engine:
// content-based similarity, collaborative filtering over peer
// completions, and adaptation of externally sourced suggestions.
package scorers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/expertise"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/recommend"
	"github.com/pathforge/pathforge/internal/textvec"
)

// ErrUnavailable wraps failures that mean a signal source could not
// produce evidence for this request. The engine absorbs any scorer
// error as an absent signal; the sentinel lets callers and tests
// distinguish unavailability from invalid input.
var ErrUnavailable = errors.New("scorers: signal unavailable")

const (
	// maxContentCandidates caps the content scorer's output.
	maxContentCandidates = 20

	// maxProfileKeywords bounds the learner keyword document.
	maxProfileKeywords = 30

	// rawSimilarityFloor drops items before preference adjustment.
	rawSimilarityFloor = 0.1

	// adjustedScoreFloor drops items after preference adjustment.
	adjustedScoreFloor = 0.2
)

// Preference multipliers relative to the learner's preferred band.
const (
	exactBandBoost    = 1.2
	adjacentBandBoost = 1.1
	offBandPenalty    = 0.8
)

// expertiseAdjust maps (learner band, item band) to a multiplier.
// Beginners are pushed toward beginner content, advanced learners away
// from it.
var expertiseAdjust = [3][3]float64{
	expertise.BandBeginner:     {1.3, 1.0, 0.7},
	expertise.BandIntermediate: {0.8, 1.3, 1.1},
	expertise.BandAdvanced:     {0.6, 1.0, 1.3},
}

const (
	featuredBoost    = 1.05
	aiGeneratedBoost = 1.03
)

// ContentScorer ranks items by text similarity between the learner's
// interest profile and each item's combined text, then adjusts for
// difficulty preference, expertise fit, and editorial signals.
type ContentScorer struct {
	logger zerolog.Logger
}

// NewContentScorer creates the content-based scorer.
func NewContentScorer() *ContentScorer {
	return &ContentScorer{logger: logging.Component("scorer.content")}
}

// Name implements recommend.Scorer.
func (s *ContentScorer) Name() string { return recommend.SourceContent }

// Score implements recommend.Scorer.
//
// An empty interest profile or an empty catalog yields an empty result.
func (s *ContentScorer) Score(ctx context.Context, req *recommend.Request) ([]recommend.Candidate, error) {
	if len(req.Catalog) == 0 {
		return nil, nil
	}
	keywords := textvec.Keywords(req.Profile.InterestText(), maxProfileKeywords)
	if len(keywords) == 0 {
		return nil, nil
	}

	// The learner's keyword document is vectorized alongside the catalog
	// so all vectors share one vocabulary and IDF.
	docs := make([]string, 0, len(req.Catalog)+1)
	for i := range req.Catalog {
		docs = append(docs, req.Catalog[i].CombinedText())
	}
	docs = append(docs, strings.Join(keywords, " "))

	space := textvec.NewVectorSpace(docs)
	profileIdx := len(docs) - 1

	keywordSet := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		keywordSet[kw] = struct{}{}
	}

	learnerBand := req.Profile.Band()
	preferred, hasPreference := req.Profile.PreferredBand()
	completed := req.Profile.CompletedSet()

	candidates := make([]recommend.Candidate, 0, maxContentCandidates)
	for i := range req.Catalog {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: content scoring canceled: %v", ErrUnavailable, err)
		}
		item := &req.Catalog[i]
		if _, done := completed[item.ID]; done {
			continue
		}

		similarity := space.Similarity(profileIdx, i)
		if similarity < rawSimilarityFloor {
			continue
		}

		score := similarity
		itemBand := item.Band()
		if hasPreference {
			score *= bandPreferenceMultiplier(preferred, itemBand)
		}
		score *= expertiseAdjust[learnerBand][itemBand]
		if item.Featured {
			score *= featuredBoost
		}
		if item.AIGenerated {
			score *= aiGeneratedBoost
		}
		if score > 1 {
			score = 1
		}
		if score < adjustedScoreFloor {
			continue
		}

		candidates = append(candidates, recommend.Candidate{
			ItemID:  item.ID,
			Score:   score,
			Reasons: contentReasons(req, item, keywordSet, learnerBand),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ItemID < candidates[j].ItemID
	})
	if len(candidates) > maxContentCandidates {
		candidates = candidates[:maxContentCandidates]
	}

	s.logger.Debug().
		Str("learner_id", req.Profile.ID).
		Int("keywords", len(keywords)).
		Int("candidates", len(candidates)).
		Msg("content scoring complete")

	return candidates, nil
}

// bandPreferenceMultiplier rewards items in or adjacent to the
// learner's preferred difficulty band.
func bandPreferenceMultiplier(preferred, item expertise.Band) float64 {
	switch distance := int(preferred) - int(item); {
	case distance == 0:
		return exactBandBoost
	case distance == 1 || distance == -1:
		return adjacentBandBoost
	default:
		return offBandPenalty
	}
}

// contentReasons builds up to MaxCandidateReasons explanations in fixed
// priority order: interest overlap, new skills, difficulty fit, rating,
// popularity.
func contentReasons(req *recommend.Request, item *recommend.CatalogItem, keywords map[string]struct{}, band expertise.Band) []string {
	reasons := make([]string, 0, recommend.MaxCandidateReasons)

	if overlap := interestOverlap(item, keywords); len(overlap) > 0 {
		reasons = append(reasons, "Matches your interests in "+strings.Join(overlap, ", "))
	}
	if len(reasons) < recommend.MaxCandidateReasons && teachesNewSkills(req, item) {
		reasons = append(reasons, "Helps you develop new skills")
	}
	if len(reasons) < recommend.MaxCandidateReasons && item.Band() == band {
		reasons = append(reasons, "Matches your current skill level")
	}
	if len(reasons) < recommend.MaxCandidateReasons && item.Rating >= 4.5 {
		reasons = append(reasons, "Highly rated by learners")
	}
	if len(reasons) < recommend.MaxCandidateReasons && item.EnrollmentCount > 1000 {
		reasons = append(reasons, "Popular with thousands of learners")
	}
	return reasons
}

// interestOverlap returns up to three of the item's tags and skills that
// appear among the learner's keywords.
func interestOverlap(item *recommend.CatalogItem, keywords map[string]struct{}) []string {
	var overlap []string
	seen := make(map[string]struct{})
	for _, term := range append(append([]string{}, item.Tags...), item.Skills...) {
		lower := strings.ToLower(term)
		if _, dup := seen[lower]; dup {
			continue
		}
		for _, token := range textvec.Tokenize(lower) {
			if _, ok := keywords[token]; ok {
				seen[lower] = struct{}{}
				overlap = append(overlap, lower)
				break
			}
		}
		if len(overlap) == 3 {
			break
		}
	}
	sort.Strings(overlap)
	return overlap
}

// teachesNewSkills reports whether the item covers a skill the learner
// has no recorded expertise in.
func teachesNewSkills(req *recommend.Request, item *recommend.CatalogItem) bool {
	if len(item.Skills) == 0 {
		return false
	}
	known := make(map[string]struct{}, len(req.Profile.Expertise))
	for _, e := range req.Profile.Expertise {
		known[strings.ToLower(e.Subject)] = struct{}{}
	}
	for _, skill := range item.Skills {
		if _, ok := known[strings.ToLower(skill)]; !ok {
			return true
		}
	}
	return false
}
