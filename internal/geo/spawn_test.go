package geo

import (
	"math/rand"
	"testing"
)

func TestRandomSpawnDeterministic(t *testing.T) {
	m := squareMap()
	pos := m.RandomSpawn(nil, true)
	if pos.X != 0 || pos.Y != 0 {
		t.Fatalf("deterministic spawn = %+v, want (0, 0)", pos)
	}
}

func TestRandomSpawnOnRoad(t *testing.T) {
	m := squareMap()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		pos := m.RandomSpawn(rng, false)
		if len(m.RoadsAt(pos.X, pos.Y)) == 0 {
			t.Fatalf("spawn point %+v is not on any road", pos)
		}
	}
}
