package server

// Config bundles the game-level tunables that are not part of any single
// map's data: retirement timing, the deterministic RNG root seed, and the
// spawn-point policy.
type Config struct {
	// RetireAfterS is T_retire: seconds of unchanged (pos, vel, dir) after
	// which a dog is retired.
	RetireAfterS float64

	// RootSeed roots every deterministic simulation RNG stream (loot
	// generation, random spawn). Token bits never use this stream.
	RootSeed string

	// RandomSpawn selects a uniformly random road and coordinate for each
	// new dog. When false, every join spawns deterministically at the
	// first road's start point (spec.md 4.A "Random spawn"). This is
	// independent of whether the test-only tick endpoint is enabled: the
	// original gates spawn choice purely on its own
	// randomize_spawn_point flag (original_source/src/players.cpp,
	// main.cpp), never on test mode.
	RandomSpawn bool

	// LootBasePeriodS and LootProbability parameterize the loot
	// generator shared by every session (spec.md 4.B).
	LootBasePeriodS float64
	LootProbability float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		RetireAfterS:    15,
		RootSeed:        "dogrun",
		RandomSpawn:     true,
		LootBasePeriodS: 5,
		LootProbability: 0.5,
	}
}
