// Package rng provides the simulation-side random stream: deterministic,
// seedable, and independent of the token registry's crypto/rand stream.
package rng

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// DefaultSeed is used when a caller has not configured an explicit root seed.
const DefaultSeed = "dogrun"

// SeedValue derives a stable int64 seed from a root seed and a named stream
// label, so "loot:map1" and "spawn:map1" never collide even when sharing a
// root seed.
func SeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// New returns a *rand.Rand seeded deterministically from rootSeed and label.
func New(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(SeedValue(rootSeed, label)))
}

// Float returns a uniform float64 in [0, 1) from rng, falling back to a
// fresh default-seeded source if rng is nil.
func Float(rng *rand.Rand) float64 {
	if rng == nil {
		return New(DefaultSeed, "fallback").Float64()
	}
	return rng.Float64()
}

// Angle returns a uniform angle in [0, 2π).
func Angle(rng *rand.Rand) float64 {
	return Float(rng) * 2 * math.Pi
}

// IntRange returns a uniform integer in [min, max].
func IntRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
