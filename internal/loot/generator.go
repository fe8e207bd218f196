// Package loot implements the time-driven lost-item generator: given a
// session's elapsed time and current counts, it decides how many new items
// to produce this tick, deterministically under a seeded stream.
package loot

import (
	"math/rand"

	"dogrun-server/internal/geo"
	"dogrun-server/internal/rng"
)

// Generator produces new lost items at a long-run rate of roughly
// Probability * looterCount / BasePeriod, never producing more than the
// gap between looters and existing loot.
type Generator struct {
	BasePeriod  float64 // seconds
	Probability float64 // in [0, 1]
}

// Generate returns the number of new items to add this tick for a session
// with lootCount existing items and looterCount live dogs, given elapsed
// time dt. The RNG stream must be the session's dedicated loot stream.
func (g Generator) Generate(rngSrc *rand.Rand, dt float64, lootCount, looterCount int) int {
	room := looterCount - lootCount
	if room <= 0 {
		return 0
	}
	if g.BasePeriod <= 0 {
		return 0
	}
	trials := dt / g.BasePeriod
	n := 0
	for trials > 0 {
		step := trials
		if step > 1 {
			step = 1
		}
		p := g.Probability * step * float64(looterCount)
		if p > 1 {
			p = 1
		}
		if rng.Float(rngSrc) < p {
			n++
			if n >= room {
				break
			}
		}
		trials -= step
	}
	return n
}

// Spawn picks a uniform loot type index in [0, typeCount) and a random
// on-road position for a newly generated item.
func Spawn(rngSrc *rand.Rand, m *geo.Map, typeCount int) (typeIdx int, pos geo.Vec2) {
	if typeCount <= 0 {
		return 0, m.RandomSpawn(rngSrc, false)
	}
	return rngSrc.Intn(typeCount), m.RandomSpawn(rngSrc, false)
}

// Stream returns the deterministic per-session loot RNG stream for mapID,
// rooted at rootSeed.
func Stream(rootSeed, mapID string) *rand.Rand {
	return rng.New(rootSeed, "loot:"+mapID)
}
