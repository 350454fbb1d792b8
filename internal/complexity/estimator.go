// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package complexity

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/cache"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/metrics"
)

// Estimator cache bounds; catalog items rarely change complexity, so
// the TTL is generous.
const (
	estimateCacheSize = 10000
	estimateCacheTTL  = time.Hour
)

// Estimator memoizes complexity estimates per item. Classifier failures
// fall back to the word-count heuristic, so Estimate always yields a
// usable level.
type Estimator struct {
	classifier Classifier
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	cache      *cache.LRU[int]
}

// NewEstimator creates an estimator over the given classifier.
// A nil classifier uses the heuristic directly; metrics may be nil.
func NewEstimator(classifier Classifier, m *metrics.Metrics) *Estimator {
	if classifier == nil {
		classifier = HeuristicClassifier{}
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Estimator{
		classifier: classifier,
		metrics:    m,
		logger:     logging.Component("complexity"),
		cache:      cache.NewLRU[int](estimateCacheSize, estimateCacheTTL),
	}
}

// Estimate returns the complexity level for one item, consulting the
// cache first. The itemID keys the cache across requests, so it must
// stably identify the same title and description; an item whose text
// changes under a reused ID serves the old estimate until the TTL
// expires. Items with an empty ID are classified but not cached.
func (e *Estimator) Estimate(ctx context.Context, itemID, title, description string) int {
	if itemID != "" {
		if level, ok := e.cache.Get(itemID); ok {
			return level
		}
	}

	level, err := e.classifier.Classify(ctx, title, description)
	switch {
	case err != nil:
		e.metrics.ClassifierCalls.WithLabelValues("fallback").Inc()
		e.logger.Warn().
			Err(err).
			Str("item_id", itemID).
			Msg("classifier failed, using heuristic estimate")
		level = Heuristic(title, description)
	case level < MinLevel || level > MaxLevel:
		e.metrics.ClassifierCalls.WithLabelValues("fallback").Inc()
		level = Heuristic(title, description)
	default:
		e.metrics.ClassifierCalls.WithLabelValues("ok").Inc()
	}

	if itemID != "" {
		e.cache.Add(itemID, level)
	}
	return level
}
