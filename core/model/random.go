package model

import (
	"math/rand"
	"time"
)

// NewRand returns the random source for a model's stochastic draws
// (bootstrap sampling, feature subsampling, centroid seeding, shuffling).
// A non-negative seed gives a reproducible source; a negative seed gives a
// time-seeded one, matching the unseeded behavior of production use.
func NewRand(seed int64) *rand.Rand {
	if seed >= 0 {
		return rand.New(rand.NewSource(seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
