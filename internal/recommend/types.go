// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package recommend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pathforge/pathforge/internal/expertise"
)

// SubjectLevel pairs a subject with a proficiency on the catalog Level scale.
type SubjectLevel struct {
	// Subject is the subject name (e.g., "machine learning").
	Subject string `json:"subject"`

	// Level is the proficiency on the 1-10 catalog scale.
	Level expertise.Level `json:"level"`
}

// LearnerProfile describes one learner for a single scoring pass.
// Profiles are caller-supplied snapshots; the engine never mutates them.
type LearnerProfile struct {
	// ID is the learner identifier.
	ID string `json:"id"`

	// Expertise holds per-subject proficiency on the catalog Level scale.
	Expertise []SubjectLevel `json:"expertise,omitempty"`

	// Interests are free-text interest terms.
	Interests []string `json:"interests,omitempty"`

	// LearningGoals are free-text goal statements.
	LearningGoals []string `json:"learning_goals,omitempty"`

	// Preferences holds key/value preferences; DifficultyPreferenceKey is
	// the one the scorers consult.
	Preferences map[string]string `json:"preferences,omitempty"`

	// Completed lists item IDs the learner has enrolled in or completed.
	// These are excluded from every recommendation list.
	Completed []string `json:"completed,omitempty"`
}

// DifficultyPreferenceKey is the preference key holding the learner's
// preferred difficulty band ("beginner", "intermediate", "advanced").
const DifficultyPreferenceKey = "difficultyLevel"

// CompletedSet returns the completed item IDs as a set.
func (p *LearnerProfile) CompletedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Completed))
	for _, id := range p.Completed {
		set[id] = struct{}{}
	}
	return set
}

// AverageLevel returns the learner's mean expertise on the Level scale,
// or 0 when no expertise is recorded.
func (p *LearnerProfile) AverageLevel() float64 {
	if len(p.Expertise) == 0 {
		return 0
	}
	var sum float64
	for _, e := range p.Expertise {
		sum += float64(e.Level)
	}
	return sum / float64(len(p.Expertise))
}

// Band returns the learner's coarse proficiency band derived from their
// average expertise level.
func (p *LearnerProfile) Band() expertise.Band {
	return expertise.BandForAverage(p.AverageLevel())
}

// PreferredBand returns the learner's preferred difficulty band and whether
// a preference was set at all.
func (p *LearnerProfile) PreferredBand() (expertise.Band, bool) {
	pref, ok := p.Preferences[DifficultyPreferenceKey]
	if !ok || pref == "" {
		return expertise.BandIntermediate, false
	}
	return expertise.ParseBand(strings.ToLower(pref)), true
}

// InterestText joins interests and learning goals into one free-text
// profile document for keyword extraction.
func (p *LearnerProfile) InterestText() string {
	parts := make([]string, 0, len(p.Interests)+len(p.LearningGoals))
	parts = append(parts, p.Interests...)
	parts = append(parts, p.LearningGoals...)
	return strings.Join(parts, " ")
}

// CatalogItem is one recommendable content item. Items are read-only
// catalog facts for the duration of a request.
type CatalogItem struct {
	// ID is the item identifier.
	ID string `json:"id"`

	// Title is the item title.
	Title string `json:"title"`

	// Description is the item description.
	Description string `json:"description"`

	// Category is the item's primary category.
	Category string `json:"category,omitempty"`

	// Tags are free-form topic tags.
	Tags []string `json:"tags,omitempty"`

	// Skills are the skills the item teaches.
	Skills []string `json:"skills,omitempty"`

	// Complexity is the 1-9 difficulty estimate; 0 means unknown and is
	// estimated lazily by the complexity package.
	Complexity int `json:"complexity,omitempty"`

	// Level is the coarse difficulty label: beginner, intermediate, advanced.
	Level string `json:"level,omitempty"`

	// Rating is the average learner rating (0-5).
	Rating float64 `json:"rating,omitempty"`

	// EnrollmentCount is the number of enrolled learners.
	EnrollmentCount int `json:"enrollment_count,omitempty"`

	// Featured marks editorially promoted items.
	Featured bool `json:"featured,omitempty"`

	// AIGenerated marks machine-authored content.
	AIGenerated bool `json:"ai_generated,omitempty"`
}

// CombinedText returns the item's searchable text: title, description,
// tags, and skills joined into one document.
func (it *CatalogItem) CombinedText() string {
	parts := make([]string, 0, 4)
	parts = append(parts, it.Title, it.Description)
	if len(it.Tags) > 0 {
		parts = append(parts, strings.Join(it.Tags, " "))
	}
	if len(it.Skills) > 0 {
		parts = append(parts, strings.Join(it.Skills, " "))
	}
	return strings.Join(parts, " ")
}

// Band returns the item's difficulty band parsed from its Level label.
func (it *CatalogItem) Band() expertise.Band {
	return expertise.ParseBand(strings.ToLower(it.Level))
}

// Candidate is one scored recommendation. Scores order candidates within a
// single fusion run only; they are not calibrated probabilities and are not
// comparable across runs or learners.
type Candidate struct {
	// ItemID identifies the recommended item.
	ItemID string `json:"item_id"`

	// Score is the relative rank strength, always >= 0.
	Score float64 `json:"score"`

	// Reasons are short human-readable justifications: at most
	// MaxCandidateReasons from one scorer, at most the engine's
	// configured MaxReasons after fusion.
	Reasons []string `json:"reasons,omitempty"`
}

// MaxCandidateReasons caps the reasons attached by a single scorer.
const MaxCandidateReasons = 3

// Peer is a fellow learner considered by the collaborative scorer.
type Peer struct {
	// ID is the peer's learner identifier.
	ID string `json:"id"`

	// Completed lists item IDs the peer has completed.
	Completed []string `json:"completed,omitempty"`

	// Similarity is the peer's similarity to the requesting learner (0-1).
	Similarity float64 `json:"similarity"`
}

// ExternalSignal is one externally proposed recommendation, typically from
// a remote model. Entries reference items loosely by title text.
type ExternalSignal struct {
	// Title is the proposed item title; matched case-insensitively as a
	// substring against catalog titles.
	Title string `json:"title"`

	// Relevance is the proposed relevance in [0, 1].
	Relevance float64 `json:"relevance"`

	// Reasons are the proposer's justifications.
	Reasons []string `json:"reasons,omitempty"`

	// Priority is an optional "high/medium/low" hint. It orders reasons
	// from this source but does not change fusion weighting.
	Priority string `json:"priority,omitempty"`
}

// Request is one recommendation request.
type Request struct {
	// Profile is the learner to recommend for.
	Profile LearnerProfile `json:"profile"`

	// Catalog is the candidate item set.
	Catalog []CatalogItem `json:"catalog"`

	// Peers is the optional peer pool for collaborative scoring.
	Peers []Peer `json:"peers,omitempty"`

	// External is the optional externally sourced signal list.
	External []ExternalSignal `json:"external,omitempty"`

	// Limit is the maximum number of candidates to return.
	// Zero selects the configured default; negative is an input error.
	Limit int `json:"limit,omitempty"`

	// RequestID is a unique identifier for tracing; generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the outcome of one fusion run.
type Response struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// LearnerID is the learner the candidates are for.
	LearnerID string `json:"learner_id"`

	// Candidates is the ranked, de-duplicated recommendation list.
	Candidates []Candidate `json:"candidates"`

	// Fallback indicates the candidates came from the signal-independent
	// fallback set because every primary source failed or was empty.
	Fallback bool `json:"fallback"`

	// SourcesUsed lists the scorers that contributed evidence.
	SourcesUsed []string `json:"sources_used"`

	// LatencyMS is the total fusion latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// GeneratedAt is when the response was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// Scorer produces one ranked candidate list from a single evidence source.
// Implementations must be safe for concurrent use and must treat data
// sparsity (no peers, no matches) as an empty result, not an error.
type Scorer interface {
	// Name returns the scorer identifier ("content", "collaborative",
	// "external"), which selects its fusion weight.
	Name() string

	// Score ranks catalog items for the request's learner. A returned
	// error marks the signal unavailable; the engine absorbs it as zero
	// evidence.
	Score(ctx context.Context, req *Request) ([]Candidate, error)
}

// SortCatalogByQuality orders items by rating descending, then enrollment
// count descending, then ID ascending. Used for the fallback set and for
// fusion tie-breaking.
func SortCatalogByQuality(items []CatalogItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Rating != items[j].Rating {
			return items[i].Rating > items[j].Rating
		}
		if items[i].EnrollmentCount != items[j].EnrollmentCount {
			return items[i].EnrollmentCount > items[j].EnrollmentCount
		}
		return items[i].ID < items[j].ID
	})
}
