package geo

// DogState is the subset of a dog's state the motion rule reads and writes.
type DogState struct {
	Pos Vec2
	Vel Vec2
	Dir Direction
}

// MoveDog advances state by dt seconds under the constrained-motion rule:
// a dog travels freely while its start and end points share a road, and is
// otherwise clamped to the nearest road boundary with velocity zeroed.
func (m *Map) MoveDog(state DogState, dt float64) DogState {
	pNow := state.Pos
	pFuture := Vec2{X: pNow.X + dt*state.Vel.X, Y: pNow.Y + dt*state.Vel.Y}

	roadsNow := m.RoadsAt(pNow.X, pNow.Y)
	roadsFuture := m.RoadsAt(pFuture.X, pFuture.Y)
	if intSetsIntersect(roadsNow, roadsFuture) {
		return DogState{Pos: pFuture, Vel: state.Vel, Dir: state.Dir}
	}

	dx, dy := dirSign(state.Dir)
	wantAxis := Horizontal
	if dy != 0 {
		wantAxis = Vertical
	}

	bestIdx := -1
	bestAllowable := 0.0
	for _, idx := range roadsNow {
		r := m.Roads[idx]
		if r.Axis != wantAxis {
			continue
		}
		var allowable float64
		switch {
		case dx > 0:
			allowable = float64(r.End) - pNow.X
		case dx < 0:
			allowable = pNow.X - float64(r.Start)
		case dy > 0:
			allowable = float64(r.End) - pNow.Y
		case dy < 0:
			allowable = pNow.Y - float64(r.Start)
		default:
			continue
		}
		if allowable < 0 {
			allowable = 0
		}
		if bestIdx == -1 || allowable > bestAllowable {
			bestIdx = idx
			bestAllowable = allowable
		}
	}

	if bestIdx != -1 {
		// Advancing by allowable + HalfRoadWide lands exactly on the road
		// boundary, so the boundary is written directly rather than summed.
		r := m.Roads[bestIdx]
		newPos := pNow
		switch {
		case dx > 0:
			newPos.X = float64(r.End) + HalfRoadWide
		case dx < 0:
			newPos.X = float64(r.Start) - HalfRoadWide
		case dy > 0:
			newPos.Y = float64(r.End) + HalfRoadWide
		case dy < 0:
			newPos.Y = float64(r.Start) - HalfRoadWide
		}
		return DogState{Pos: newPos, Vel: Vec2{}, Dir: state.Dir}
	}

	newPos := Vec2{X: pNow.X, Y: pNow.Y}
	if state.Vel.X != 0 {
		sign := 1.0
		if state.Vel.X < 0 {
			sign = -1.0
		}
		newPos.X = float64(roundHalf(pNow.X)) + HalfRoadWide*sign
	}
	if state.Vel.Y != 0 {
		sign := 1.0
		if state.Vel.Y < 0 {
			sign = -1.0
		}
		newPos.Y = float64(roundHalf(pNow.Y)) + HalfRoadWide*sign
	}
	return DogState{Pos: newPos, Vel: Vec2{}, Dir: state.Dir}
}

// Velocity returns the axis-aligned velocity for a direction at speed s.
func Velocity(dir Direction, s float64) Vec2 {
	switch dir {
	case East:
		return Vec2{X: s}
	case West:
		return Vec2{X: -s}
	case North:
		return Vec2{Y: -s}
	case South:
		return Vec2{Y: s}
	default:
		return Vec2{}
	}
}
