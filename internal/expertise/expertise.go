// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package expertise models per-subject learner proficiency.
//
// Two measurement scales coexist in the system and are deliberately kept as
// distinct types: Mastery (0-1, used by mentor matching and peer grouping)
// and Level (1-10, used against catalog item complexity). The two are never
// implicitly converted; an API that takes one will not accept the other.
package expertise

// Mastery is a subject proficiency on the 0-1 mentor-matching scale.
type Mastery float64

// Clamp bounds a Mastery value to [0, 1].
func (m Mastery) Clamp() Mastery {
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// Level is a subject proficiency on the 1-10 course-complexity scale.
type Level int

// MaxLevel is the ceiling for the course-complexity proficiency scale.
const MaxLevel Level = 10

// Clamp bounds a Level value to [0, MaxLevel].
func (l Level) Clamp() Level {
	if l < 0 {
		return 0
	}
	if l > MaxLevel {
		return MaxLevel
	}
	return l
}

// MasteryProfile holds one learner's per-subject mastery values.
type MasteryProfile map[string]Mastery

// Vector projects the profile onto an ordered subject list.
// Missing subjects contribute 0.
func (p MasteryProfile) Vector(subjects []string) []float64 {
	vec := make([]float64, len(subjects))
	for i, s := range subjects {
		vec[i] = float64(p[s])
	}
	return vec
}

// Mean returns the average mastery across the given subjects.
// Missing subjects count as 0. An empty subject list yields 0.
func (p MasteryProfile) Mean(subjects []string) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var sum float64
	for _, s := range subjects {
		sum += float64(p[s])
	}
	return sum / float64(len(subjects))
}

// Gaps returns candidate minus base, per subject, in subject order.
// Positive values mean the candidate is ahead.
func Gaps(base, candidate MasteryProfile, subjects []string) []float64 {
	gaps := make([]float64, len(subjects))
	for i, s := range subjects {
		gaps[i] = float64(candidate[s]) - float64(base[s])
	}
	return gaps
}

// LevelProfile holds one learner's per-subject levels on the catalog scale.
type LevelProfile map[string]Level

// Average returns the mean level across all subjects in the profile,
// or 0 for an empty profile.
func (p LevelProfile) Average() float64 {
	if len(p) == 0 {
		return 0
	}
	var sum float64
	for _, l := range p {
		sum += float64(l)
	}
	return sum / float64(len(p))
}

// Band is a coarse three-way proficiency band derived from the Level scale.
type Band int

const (
	// BandBeginner covers average levels below 4.
	BandBeginner Band = iota
	// BandIntermediate covers average levels from 4 up to 7.
	BandIntermediate
	// BandAdvanced covers average levels of 7 and above.
	BandAdvanced
)

// String returns a human-readable band name.
func (b Band) String() string {
	switch b {
	case BandBeginner:
		return "beginner"
	case BandIntermediate:
		return "intermediate"
	case BandAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// BandForAverage maps an average Level-scale value to a Band.
func BandForAverage(avg float64) Band {
	switch {
	case avg >= 7:
		return BandAdvanced
	case avg >= 4:
		return BandIntermediate
	default:
		return BandBeginner
	}
}

// ParseBand maps a textual level name to a Band. Unknown names map to
// intermediate, matching how unlabeled catalog items are treated.
func ParseBand(s string) Band {
	switch s {
	case "beginner", "basic", "easy":
		return BandBeginner
	case "advanced", "hard", "expert":
		return BandAdvanced
	default:
		return BandIntermediate
	}
}
