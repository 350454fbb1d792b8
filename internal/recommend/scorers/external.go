// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package scorers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/recommend"
)

// ExternalScorer adapts externally sourced suggestions (typically from a
// remote model) into catalog-anchored candidates. Suggestions reference
// items loosely by title; each is resolved by case-insensitive substring
// match against catalog titles, taking the first match in catalog order.
// Unresolvable or malformed entries are dropped silently.
type ExternalScorer struct {
	logger zerolog.Logger
}

// NewExternalScorer creates the external-signal adapter.
func NewExternalScorer() *ExternalScorer {
	return &ExternalScorer{logger: logging.Component("scorer.external")}
}

// Name implements recommend.Scorer.
func (s *ExternalScorer) Name() string { return recommend.SourceExternal }

// Score implements recommend.Scorer. Malformed signals never cause an
// error, they just yield fewer candidates; only cancellation fails.
func (s *ExternalScorer) Score(ctx context.Context, req *recommend.Request) ([]recommend.Candidate, error) {
	if len(req.External) == 0 || len(req.Catalog) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: external adaptation canceled: %v", ErrUnavailable, err)
	}

	completed := req.Profile.CompletedSet()

	resolved := make(map[string]struct{}, len(req.External))
	candidates := make([]recommend.Candidate, 0, len(req.External))
	dropped := 0
	for _, sig := range req.External {
		item := resolveByTitle(req.Catalog, sig.Title)
		if item == nil {
			dropped++
			continue
		}
		if _, done := completed[item.ID]; done {
			continue
		}
		if _, dup := resolved[item.ID]; dup {
			continue
		}
		resolved[item.ID] = struct{}{}

		candidates = append(candidates, recommend.Candidate{
			ItemID:  item.ID,
			Score:   clampRelevance(sig.Relevance),
			Reasons: signalReasons(&sig),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ItemID < candidates[j].ItemID
	})

	if dropped > 0 {
		s.logger.Debug().
			Str("learner_id", req.Profile.ID).
			Int("dropped", dropped).
			Msg("external suggestions did not resolve to catalog items")
	}
	return candidates, nil
}

// resolveByTitle finds the first catalog item whose title contains the
// suggested title, case-insensitively. Returns nil when nothing matches
// or the suggestion has no usable title.
func resolveByTitle(catalog []recommend.CatalogItem, title string) *recommend.CatalogItem {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return nil
	}
	for i := range catalog {
		if strings.Contains(strings.ToLower(catalog[i].Title), needle) {
			return &catalog[i]
		}
	}
	return nil
}

func clampRelevance(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// signalReasons orders the signal's reasons, leading with a priority
// note for high-priority picks, capped at MaxCandidateReasons.
func signalReasons(sig *recommend.ExternalSignal) []string {
	reasons := make([]string, 0, recommend.MaxCandidateReasons)
	if strings.EqualFold(sig.Priority, "high") {
		reasons = append(reasons, "Recommended as a priority for your goals")
	}
	for _, r := range sig.Reasons {
		if len(reasons) == recommend.MaxCandidateReasons {
			break
		}
		if r == "" {
			continue
		}
		reasons = append(reasons, r)
	}
	return reasons
}
