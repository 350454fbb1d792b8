// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

package textvec

import (
	"errors"
)

// ErrDegenerateInput is returned when clustering input cannot produce a
// meaningful partition (no vectors, or all vectors zero).
var ErrDegenerateInput = errors.New("textvec: degenerate clustering input")

// maxKMeansIterations bounds the assignment/update loop.
const maxKMeansIterations = 50

// KMeans partitions vectors into at most k clusters and returns one cluster
// index per vector.
//
// Seeding is deterministic: the first centroid is the first vector, each
// subsequent centroid is the vector farthest (by cosine distance) from all
// chosen centroids. Re-clustering identical input therefore yields identical
// assignments, with no seed configuration required.
func KMeans(vectors [][]float64, k int) ([]int, error) {
	if len(vectors) == 0 {
		return nil, ErrDegenerateInput
	}
	if k < 1 {
		k = 1
	}
	if k > len(vectors) {
		k = len(vectors)
	}

	allZero := true
	for _, v := range vectors {
		for _, x := range v {
			if x != 0 {
				allZero = false
				break
			}
		}
		if !allZero {
			break
		}
	}
	if allZero {
		return nil, ErrDegenerateInput
	}

	centroids := seedCentroids(vectors, k)
	assignments := make([]int, len(vectors))

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, vec := range vectors {
			best := nearestCentroid(vec, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}

		if !changed && iter > 0 {
			break
		}

		recomputeCentroids(vectors, assignments, centroids)
	}

	return assignments, nil
}

// seedCentroids picks k starting centroids deterministically: the first
// vector, then repeatedly the vector with the greatest minimum cosine
// distance to the centroids chosen so far.
func seedCentroids(vectors [][]float64, k int) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneVector(vectors[0]))

	for len(centroids) < k {
		bestIdx := 0
		bestDist := -1.0

		for i, vec := range vectors {
			minDist := 2.0 // cosine distance upper bound
			for _, c := range centroids {
				d := 1 - Cosine(vec, c)
				if d < minDist {
					minDist = d
				}
			}
			if minDist > bestDist {
				bestDist = minDist
				bestIdx = i
			}
		}

		centroids = append(centroids, cloneVector(vectors[bestIdx]))
	}

	return centroids
}

// nearestCentroid returns the index of the centroid most similar to vec.
// Ties resolve to the lowest index for determinism.
func nearestCentroid(vec []float64, centroids [][]float64) int {
	best := 0
	bestSim := -2.0
	for i, c := range centroids {
		if sim := Cosine(vec, c); sim > bestSim {
			bestSim = sim
			best = i
		}
	}
	return best
}

// recomputeCentroids replaces each centroid with the mean of its members.
// Empty clusters keep their previous centroid.
func recomputeCentroids(vectors [][]float64, assignments []int, centroids [][]float64) {
	dim := len(vectors[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for i, vec := range vectors {
		cluster := assignments[i]
		counts[cluster]++
		for j, x := range vec {
			sums[cluster][j] += x
		}
	}

	for i := range centroids {
		if counts[i] == 0 {
			continue
		}
		inv := 1 / float64(counts[i])
		for j := range sums[i] {
			sums[i][j] *= inv
		}
		normalize(sums[i])
		centroids[i] = sums[i]
	}
}

func cloneVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
