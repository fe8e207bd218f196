package geo

import "math/rand"

// RandomSpawn picks a uniformly random road and a uniform integer coordinate
// along it. When deterministic is set it instead returns the start of road
// 0 unconditionally, matching spec.md's "deterministic first-road point in
// test mode" — a policy governed by Config.RandomSpawn, independent of
// whether the test-only tick endpoint is enabled.
func (m *Map) RandomSpawn(rng *rand.Rand, deterministic bool) Vec2 {
	if len(m.Roads) == 0 {
		return Vec2{}
	}
	if deterministic {
		return m.roadPoint(m.Roads[0], m.Roads[0].Start)
	}
	idx := rng.Intn(len(m.Roads))
	road := m.Roads[idx]
	coord := road.Start
	if road.End > road.Start {
		coord = road.Start + rng.Intn(road.End-road.Start+1)
	}
	return m.roadPoint(road, coord)
}

func (m *Map) roadPoint(r Road, coord int) Vec2 {
	if r.Axis == Horizontal {
		return Vec2{X: float64(coord), Y: float64(r.Line)}
	}
	return Vec2{X: float64(r.Line), Y: float64(coord)}
}
