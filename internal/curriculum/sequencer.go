// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package curriculum orders catalog items into a learnable sequence:
// easiest first, with topically related items grouped together.
package curriculum

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/complexity"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/recommend"
	"github.com/pathforge/pathforge/internal/textvec"
)

const (
	// minItemsForClustering: below this, a plain complexity sort is enough.
	minItemsForClustering = 4

	// maxClusters caps topical grouping regardless of catalog size.
	maxClusters = 5
)

// Sequencer orders items by complexity and topical affinity.
type Sequencer struct {
	estimator *complexity.Estimator
	logger    zerolog.Logger
}

// NewSequencer creates a sequencer over the given complexity estimator.
// A nil estimator gets the heuristic-only default.
func NewSequencer(estimator *complexity.Estimator) *Sequencer {
	if estimator == nil {
		estimator = complexity.NewEstimator(nil, nil)
	}
	return &Sequencer{
		estimator: estimator,
		logger:    logging.Component("curriculum"),
	}
}

// Sequence returns the items in study order. Items with no complexity
// get one estimated first. With more than three items the sequence is
// additionally grouped by topic: clusters are ordered by their easiest
// member and items stay complexity-sorted within each cluster. The
// sort is stable (equal complexities keep input order) and every step
// is deterministic, so re-sequencing an already sequenced list returns
// it unchanged. Clustering trouble degrades to the plain complexity
// sort; Sequence never fails.
func (s *Sequencer) Sequence(ctx context.Context, items []recommend.CatalogItem) []recommend.CatalogItem {
	if len(items) == 0 {
		return nil
	}

	sequenced := make([]recommend.CatalogItem, len(items))
	copy(sequenced, items)

	for i := range sequenced {
		if sequenced[i].Complexity == 0 {
			it := &sequenced[i]
			it.Complexity = s.estimator.Estimate(ctx, it.ID, it.Title, it.Description)
		}
	}

	sortByComplexity(sequenced)

	if len(sequenced) < minItemsForClustering {
		return sequenced
	}
	clustered, err := s.clusterByTopic(sequenced)
	if err != nil {
		s.logger.Debug().Err(err).Int("items", len(sequenced)).
			Msg("topic clustering unavailable, keeping plain complexity order")
		return sequenced
	}
	return clustered
}

// sortByComplexity orders items by complexity ascending. The sort is
// stable: equal-complexity items keep their input relative order.
func sortByComplexity(items []recommend.CatalogItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Complexity < items[j].Complexity
	})
}

// clusterByTopic groups complexity-sorted items by text similarity and
// concatenates the groups ordered by their easiest member.
func (s *Sequencer) clusterByTopic(items []recommend.CatalogItem) ([]recommend.CatalogItem, error) {
	docs := make([]string, len(items))
	for i := range items {
		docs[i] = items[i].CombinedText()
	}
	space := textvec.NewVectorSpace(docs)

	vectors := make([][]float64, len(items))
	for i := range items {
		vectors[i] = space.Vector(i)
	}

	k := len(items) / 2
	if k > maxClusters {
		k = maxClusters
	}
	assignments, err := textvec.KMeans(vectors, k)
	if err != nil {
		return nil, err
	}

	groups := make(map[int][]recommend.CatalogItem)
	for i, cluster := range assignments {
		groups[cluster] = append(groups[cluster], items[i])
	}

	type clusterGroup struct {
		minComplexity int
		order         int
		items         []recommend.CatalogItem
	}
	ordered := make([]clusterGroup, 0, len(groups))
	for cluster, members := range groups {
		// Members arrive complexity-sorted, so the first is the easiest.
		ordered = append(ordered, clusterGroup{
			minComplexity: members[0].Complexity,
			order:         cluster,
			items:         members,
		})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].minComplexity != ordered[j].minComplexity {
			return ordered[i].minComplexity < ordered[j].minComplexity
		}
		return ordered[i].order < ordered[j].order
	})

	result := make([]recommend.CatalogItem, 0, len(items))
	for _, g := range ordered {
		result = append(result, g.items...)
	}
	return result, nil
}
