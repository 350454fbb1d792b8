// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the fusion engine.
type Config struct {
	// Weights defines the fixed contribution of each signal source.
	Weights SourceWeights `json:"weights" koanf:"weights"`

	// MinScore is the fusion-score floor; candidates at or below it are
	// dropped from the output.
	MinScore float64 `json:"min_score" koanf:"min_score"`

	// MaxReasons caps the merged reason list per candidate.
	MaxReasons int `json:"max_reasons" koanf:"max_reasons"`

	// DefaultLimit is used when a request does not specify a limit.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps the requested limit.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// ScorerTimeout bounds each scorer invocation.
	ScorerTimeout time.Duration `json:"scorer_timeout" koanf:"scorer_timeout"`

	// FallbackScore is the score assigned to fallback candidates.
	FallbackScore float64 `json:"fallback_score" koanf:"fallback_score"`
}

// SourceWeights defines the fixed contribution of each signal source.
// Unlike algorithm ensembles that normalize at runtime, these are fixed
// fractions of the final score and should sum to 1.0.
type SourceWeights struct {
	// Content is the weight for the content-based scorer.
	Content float64 `json:"content" koanf:"content"`

	// Collaborative is the weight for the peer-completion scorer.
	Collaborative float64 `json:"collaborative" koanf:"collaborative"`

	// External is the weight for the externally sourced signal.
	External float64 `json:"external" koanf:"external"`
}

// ToMap returns the weights keyed by scorer name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SourceWeights) ToMap() map[string]float64 {
	return map[string]float64{
		SourceContent:       w.Content,
		SourceCollaborative: w.Collaborative,
		SourceExternal:      w.External,
	}
}

// Scorer name constants; each selects its weight in SourceWeights.
const (
	SourceContent       = "content"
	SourceCollaborative = "collaborative"
	SourceExternal      = "external"
)

// DefaultConfig returns the default fusion configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: SourceWeights{
			Content:       0.4,
			Collaborative: 0.3,
			External:      0.3,
		},
		MinScore:      0.1,
		MaxReasons:    5,
		DefaultLimit:  10,
		MaxLimit:      50,
		ScorerTimeout: 5 * time.Second,
		FallbackScore: 0.7,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Weights.Content < 0 || c.Weights.Collaborative < 0 || c.Weights.External < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", c.Weights)
	}
	sum := c.Weights.Content + c.Weights.Collaborative + c.Weights.External
	if sum <= 0 {
		return fmt.Errorf("weights must sum to a positive value, got %f", sum)
	}
	if c.MinScore < 0 {
		return fmt.Errorf("min_score must be non-negative, got %f", c.MinScore)
	}
	if c.MaxReasons <= 0 {
		return fmt.Errorf("max_reasons must be positive, got %d", c.MaxReasons)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit %d must be >= default_limit %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.ScorerTimeout <= 0 {
		return fmt.Errorf("scorer_timeout must be positive, got %s", c.ScorerTimeout)
	}
	if c.FallbackScore < 0 || c.FallbackScore > 1 {
		return fmt.Errorf("fallback_score must be in [0,1], got %f", c.FallbackScore)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
