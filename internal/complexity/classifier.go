// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package complexity estimates how demanding a catalog item is on a
// 1-9 scale. A remote model classifier provides the estimate when
// available; a word-count heuristic stands in when it is not.
package complexity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pathforge/pathforge/internal/textvec"
)

// Complexity scale bounds.
const (
	MinLevel = 1
	MaxLevel = 9
)

// levelNames describes each scale step for classifier prompts and logs.
var levelNames = [MaxLevel]string{
	"introductory",
	"elementary",
	"basic",
	"lower-intermediate",
	"intermediate",
	"upper-intermediate",
	"advanced",
	"expert",
	"research-level",
}

// LevelName returns the descriptive name for a complexity level,
// or "unknown" outside the scale.
func LevelName(level int) string {
	if level < MinLevel || level > MaxLevel {
		return "unknown"
	}
	return levelNames[level-1]
}

// ErrUnparsableLevel is returned when a classifier response does not
// contain a level on the scale.
var ErrUnparsableLevel = errors.New("complexity: response contains no level between 1 and 9")

// Classifier estimates the complexity of one piece of content.
type Classifier interface {
	// Classify returns a level in [MinLevel, MaxLevel] for the content.
	Classify(ctx context.Context, title, description string) (int, error)
}

// ParseLevel extracts the first integer token from a classifier
// response and validates it against the scale.
func ParseLevel(response string) (int, error) {
	for _, field := range strings.FieldsFunc(response, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		level, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		if level < MinLevel || level > MaxLevel {
			return 0, fmt.Errorf("%w: got %d", ErrUnparsableLevel, level)
		}
		return level, nil
	}
	return 0, ErrUnparsableLevel
}

// Heuristic estimates complexity from description length alone. Longer
// descriptions correlate with denser material in practice, and the
// estimate degrades gracefully when the remote classifier is down.
func Heuristic(title, description string) int {
	words := textvec.WordCount(title + " " + description)
	switch {
	case words < 100:
		return 1
	case words < 300:
		return 3
	case words < 500:
		return 5
	default:
		return 7
	}
}

// HeuristicClassifier is a Classifier backed by Heuristic. It never fails.
type HeuristicClassifier struct{}

// Classify implements Classifier.
func (HeuristicClassifier) Classify(_ context.Context, title, description string) (int, error) {
	return Heuristic(title, description), nil
}
