// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package adaptive selects content matched to demonstrated performance.
// Recent scores and completion behavior place the learner in a
// complexity band; only catalog items inside the band are considered,
// and a profile synthesized from completion history drives the ranking.
package adaptive

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/complexity"
	"github.com/pathforge/pathforge/internal/expertise"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/recommend"
)

// DefaultLimit is the adaptive recommendation count.
const DefaultLimit = 5

// Performance summarizes a learner's recent results.
type Performance struct {
	// AverageScore is the mean assessment score on a 0-100 scale.
	AverageScore float64 `json:"average_score"`

	// CompletionRate is the fraction of started items finished, 0-1.
	CompletionRate float64 `json:"completion_rate"`
}

// ComplexityBand is an inclusive range on the 1-9 complexity scale.
type ComplexityBand struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether level falls inside the band.
func (b ComplexityBand) Contains(level int) bool {
	return level >= b.Min && level <= b.Max
}

// BandFor maps performance to a target complexity band. Strong results
// on both axes unlock harder material; weak results on either axis keep
// the band conservative.
func BandFor(p Performance) ComplexityBand {
	switch {
	case p.AverageScore >= 85 && p.CompletionRate >= 0.9:
		return ComplexityBand{Min: 6, Max: 9}
	case p.AverageScore >= 70 && p.CompletionRate >= 0.7:
		return ComplexityBand{Min: 4, Max: 7}
	default:
		return ComplexityBand{Min: 1, Max: 5}
	}
}

// Selector produces performance-adapted recommendations through the
// fusion engine.
type Selector struct {
	engine    *recommend.Engine
	estimator *complexity.Estimator
	logger    zerolog.Logger
}

// NewSelector creates a selector. A nil estimator gets the
// heuristic-only default.
func NewSelector(engine *recommend.Engine, estimator *complexity.Estimator) *Selector {
	if estimator == nil {
		estimator = complexity.NewEstimator(nil, nil)
	}
	return &Selector{
		engine:    engine,
		estimator: estimator,
		logger:    logging.Component("adaptive"),
	}
}

// Select recommends up to DefaultLimit items inside the learner's
// performance band. The learner profile is synthesized from the
// completed items: per-category expertise from average complexity, and
// interests from the union of categories, tags, and skills.
func (s *Selector) Select(ctx context.Context, learnerID string, perf Performance, completed, catalog []recommend.CatalogItem) (*recommend.Response, error) {
	band := BandFor(perf)

	banded := make([]recommend.CatalogItem, 0, len(catalog))
	for i := range catalog {
		item := catalog[i]
		if item.Complexity == 0 {
			item.Complexity = s.estimator.Estimate(ctx, item.ID, item.Title, item.Description)
		}
		if band.Contains(item.Complexity) {
			banded = append(banded, item)
		}
	}

	profile := SynthesizeProfile(learnerID, completed)

	s.logger.Debug().
		Str("learner_id", learnerID).
		Int("band_min", band.Min).
		Int("band_max", band.Max).
		Int("banded_items", len(banded)).
		Msg("adaptive selection")

	return s.engine.Recommend(ctx, &recommend.Request{
		Profile: profile,
		Catalog: banded,
		Limit:   DefaultLimit,
	})
}

// SynthesizeProfile derives a learner profile from completion history.
// Expertise per category is the average complexity of completed items
// in that category, rounded to the nearest level and capped at the
// Level scale maximum.
func SynthesizeProfile(learnerID string, completed []recommend.CatalogItem) recommend.LearnerProfile {
	type categoryStats struct {
		sum   int
		count int
	}
	stats := make(map[string]*categoryStats)
	interests := make(map[string]struct{})
	completedIDs := make([]string, 0, len(completed))

	for i := range completed {
		item := &completed[i]
		completedIDs = append(completedIDs, item.ID)

		if cat := strings.ToLower(strings.TrimSpace(item.Category)); cat != "" {
			st, ok := stats[cat]
			if !ok {
				st = &categoryStats{}
				stats[cat] = st
			}
			st.sum += item.Complexity
			st.count++
			interests[cat] = struct{}{}
		}
		for _, tag := range item.Tags {
			if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
				interests[tag] = struct{}{}
			}
		}
		for _, skill := range item.Skills {
			if skill = strings.ToLower(strings.TrimSpace(skill)); skill != "" {
				interests[skill] = struct{}{}
			}
		}
	}

	profile := recommend.LearnerProfile{
		ID:        learnerID,
		Completed: completedIDs,
	}
	for cat, st := range stats {
		avg := expertise.Level(math.Round(float64(st.sum) / float64(st.count))).Clamp()
		profile.Expertise = append(profile.Expertise, recommend.SubjectLevel{
			Subject: cat,
			Level:   avg,
		})
	}
	sort.Slice(profile.Expertise, func(i, j int) bool {
		return profile.Expertise[i].Subject < profile.Expertise[j].Subject
	})

	for interest := range interests {
		profile.Interests = append(profile.Interests, interest)
	}
	sort.Strings(profile.Interests)

	return profile
}
