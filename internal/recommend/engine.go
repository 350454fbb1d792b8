// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package recommend implements the signal-fusion recommendation engine.
//
// The engine fans a request out to independent scorers (content-based,
// collaborative, external), runs them concurrently with individual
// timeouts, and fuses their candidate lists into one weighted ranking.
// A failed or empty scorer contributes zero evidence; only when every
// source comes back empty does the engine fall back to a
// signal-independent top-rated set.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/metrics"
)

var (
	// ErrInvalidLimit is returned for a negative request limit.
	ErrInvalidLimit = errors.New("recommend: limit must not be negative")

	// ErrNoProfile is returned when the request carries no learner ID.
	ErrNoProfile = errors.New("recommend: learner profile has no ID")
)

// FallbackReason tags candidates that came from the signal-independent set.
const FallbackReason = "Popular high-quality content"

// Engine fuses scorer outputs into ranked recommendations.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	scorers []Scorer
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewEngine creates a fusion engine over the given scorers.
// The metrics argument may be nil.
func NewEngine(cfg *Config, scorers []Scorer, m *metrics.Metrics) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	seen := make(map[string]struct{}, len(scorers))
	weights := cfg.Weights.ToMap()
	for _, s := range scorers {
		name := s.Name()
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate scorer %q", name)
		}
		if _, ok := weights[name]; !ok {
			return nil, fmt.Errorf("scorer %q has no configured weight", name)
		}
		seen[name] = struct{}{}
	}

	if m == nil {
		m = metrics.NewNop()
	}

	return &Engine{
		config:  cfg.Clone(),
		scorers: scorers,
		metrics: m,
		logger:  logging.Component("recommend"),
	}, nil
}

// scorerResult is one scorer's outcome collected from its goroutine.
type scorerResult struct {
	name       string
	candidates []Candidate
	err        error
	elapsed    time.Duration
}

// Recommend runs one fusion pass for the request.
//
// Completed items never appear in the output. Candidates scoring at or
// below the configured floor are dropped. If every scorer fails or
// returns nothing, the response carries the fallback set and has its
// Fallback flag raised; the method itself only errors on invalid input.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	if req == nil {
		return nil, errors.New("recommend: nil request")
	}
	if req.Profile.ID == "" {
		return nil, ErrNoProfile
	}
	limit, err := e.resolveLimit(req.Limit)
	if err != nil {
		e.metrics.RequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	results := e.runScorers(ctx, req)

	candidates, sources := e.fuse(req, results, limit)

	resp := &Response{
		RequestID:   requestID,
		LearnerID:   req.Profile.ID,
		Candidates:  candidates,
		SourcesUsed: sources,
		GeneratedAt: time.Now().UTC(),
	}

	outcome := "ok"
	if len(candidates) == 0 {
		resp.Candidates = e.fallbackSet(req, limit)
		resp.Fallback = true
		outcome = "fallback"
		e.logger.Warn().
			Str("request_id", requestID).
			Str("learner_id", req.Profile.ID).
			Msg("all signal sources empty, serving fallback set")
	}

	resp.LatencyMS = time.Since(start).Milliseconds()
	e.metrics.RequestsTotal.WithLabelValues(outcome).Inc()
	e.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	e.metrics.CandidatesReturned.Observe(float64(len(resp.Candidates)))

	e.logger.Debug().
		Str("request_id", requestID).
		Str("learner_id", req.Profile.ID).
		Int("candidates", len(resp.Candidates)).
		Bool("fallback", resp.Fallback).
		Strs("sources", resp.SourcesUsed).
		Int64("latency_ms", resp.LatencyMS).
		Msg("fusion pass complete")

	return resp, nil
}

// resolveLimit applies the default and the cap to a requested limit.
func (e *Engine) resolveLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, ErrInvalidLimit
	}
	if limit == 0 {
		limit = e.config.DefaultLimit
	}
	if limit > e.config.MaxLimit {
		limit = e.config.MaxLimit
	}
	return limit, nil
}

// runScorers fans the request out to all scorers and joins their results.
// Each scorer gets its own bounded context; a scorer error is absorbed
// and logged, never propagated.
func (e *Engine) runScorers(ctx context.Context, req *Request) []scorerResult {
	results := make([]scorerResult, len(e.scorers))

	var wg sync.WaitGroup
	for i, scorer := range e.scorers {
		wg.Add(1)
		go func(idx int, s Scorer) {
			defer wg.Done()

			scoreCtx, cancel := context.WithTimeout(ctx, e.config.ScorerTimeout)
			defer cancel()

			began := time.Now()
			candidates, err := s.Score(scoreCtx, req)
			results[idx] = scorerResult{
				name:       s.Name(),
				candidates: candidates,
				err:        err,
				elapsed:    time.Since(began),
			}
		}(i, scorer)
	}
	wg.Wait()

	for _, r := range results {
		e.metrics.ScorerDuration.WithLabelValues(r.name).Observe(r.elapsed.Seconds())
		if r.err != nil {
			e.metrics.ScorerFailures.WithLabelValues(r.name).Inc()
			e.logger.Warn().
				Err(r.err).
				Str("scorer", r.name).
				Dur("elapsed", r.elapsed).
				Msg("scorer failed, treating signal as absent")
		}
	}
	return results
}

// fusedCandidate accumulates weighted evidence for one item.
type fusedCandidate struct {
	itemID  string
	score   float64
	reasons []string
	seen    map[string]struct{}
}

// fuse combines per-scorer candidate lists into one ranked list.
// Missing signals contribute zero. Returns the ranked candidates and
// the sorted names of the sources that contributed evidence.
func (e *Engine) fuse(req *Request, results []scorerResult, limit int) ([]Candidate, []string) {
	weights := e.config.Weights.ToMap()
	completed := req.Profile.CompletedSet()

	fused := make(map[string]*fusedCandidate)
	var sources []string

	for _, r := range results {
		if r.err != nil || len(r.candidates) == 0 {
			continue
		}
		weight := weights[r.name]
		contributed := false
		for _, c := range r.candidates {
			if c.ItemID == "" {
				continue
			}
			if _, done := completed[c.ItemID]; done {
				continue
			}
			contributed = true
			fc, ok := fused[c.ItemID]
			if !ok {
				fc = &fusedCandidate{itemID: c.ItemID, seen: make(map[string]struct{})}
				fused[c.ItemID] = fc
			}
			fc.score += weight * c.Score
			for _, reason := range c.Reasons {
				if _, dup := fc.seen[reason]; dup {
					continue
				}
				if len(fc.reasons) >= e.config.MaxReasons {
					break
				}
				fc.seen[reason] = struct{}{}
				fc.reasons = append(fc.reasons, reason)
			}
		}
		if contributed {
			sources = append(sources, r.name)
		}
	}
	sort.Strings(sources)

	quality := catalogQualityIndex(req.Catalog)

	candidates := make([]Candidate, 0, len(fused))
	for _, fc := range fused {
		if fc.score <= e.config.MinScore {
			continue
		}
		candidates = append(candidates, Candidate{
			ItemID:  fc.itemID,
			Score:   fc.score,
			Reasons: fc.reasons,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		qi, qj := quality[candidates[i].ItemID], quality[candidates[j].ItemID]
		if qi.rating != qj.rating {
			return qi.rating > qj.rating
		}
		if qi.enrollment != qj.enrollment {
			return qi.enrollment > qj.enrollment
		}
		return candidates[i].ItemID < candidates[j].ItemID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, sources
}

// itemQuality carries the tie-break keys for one catalog item.
type itemQuality struct {
	rating     float64
	enrollment int
}

func catalogQualityIndex(items []CatalogItem) map[string]itemQuality {
	idx := make(map[string]itemQuality, len(items))
	for _, it := range items {
		idx[it.ID] = itemQuality{rating: it.Rating, enrollment: it.EnrollmentCount}
	}
	return idx
}

// fallbackSet returns up to limit top-rated catalog items the learner has
// not completed, tagged as fallback picks.
func (e *Engine) fallbackSet(req *Request, limit int) []Candidate {
	completed := req.Profile.CompletedSet()

	items := make([]CatalogItem, 0, len(req.Catalog))
	for _, it := range req.Catalog {
		if _, done := completed[it.ID]; done {
			continue
		}
		items = append(items, it)
	}
	SortCatalogByQuality(items)

	if len(items) > limit {
		items = items[:limit]
	}
	candidates := make([]Candidate, 0, len(items))
	for _, it := range items {
		candidates = append(candidates, Candidate{
			ItemID:  it.ID,
			Score:   e.config.FallbackScore,
			Reasons: []string{FallbackReason},
		})
	}
	return candidates
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
