package geo

import "testing"

func squareMap() *Map {
	roads := []Road{
		NewHorizontalRoad(0, 0, 40, 0),
		NewVerticalRoad(40, 0, 40, 30),
		NewHorizontalRoad(40, 30, 0, 30),
		NewVerticalRoad(0, 30, 0, 0),
	}
	return NewMap("square", "Square", roads, nil, nil, 4.5, 3)
}

func TestMoveDogCornerClamp(t *testing.T) {
	m := squareMap()

	state := DogState{Pos: Vec2{X: 0, Y: 0}, Vel: Vec2{X: 0, Y: 4.5}, Dir: South}
	state = m.MoveDog(state, 2)
	if state.Pos.X != 0 || state.Pos.Y != 9.0 {
		t.Fatalf("after D for 2s: got pos %+v, want (0, 9.0)", state.Pos)
	}

	state.Vel = Vec2{X: 0, Y: -4.5}
	state.Dir = North
	state = m.MoveDog(state, 10)
	if state.Pos.X != 0 || state.Pos.Y != -0.4 {
		t.Fatalf("after U for 10s: got pos %+v, want (0, -0.4)", state.Pos)
	}
	if state.Vel.X != 0 || state.Vel.Y != 0 {
		t.Fatalf("expected velocity zeroed after clamp, got %+v", state.Vel)
	}
}

func TestMoveDogFreeOnRoad(t *testing.T) {
	m := squareMap()
	state := DogState{Pos: Vec2{X: 10, Y: 0}, Vel: Vec2{X: 4.5, Y: 0}, Dir: East}
	next := m.MoveDog(state, 1)
	if next.Pos.X != 14.5 || next.Pos.Y != 0 {
		t.Fatalf("expected free travel to (14.5, 0), got %+v", next.Pos)
	}
	if next.Vel != state.Vel {
		t.Fatalf("expected velocity preserved on-road, got %+v", next.Vel)
	}
}

func TestRoadsAtCrossing(t *testing.T) {
	m := squareMap()
	roads := m.RoadsAt(0, 0)
	if len(roads) != 2 {
		t.Fatalf("expected 2 roads at corner (0,0), got %d", len(roads))
	}
}

func TestRoundHalfSymmetry(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.39, 0},
		{0.4, 0},
		{0.6, 1},
		{-0.39, 0},
		{-0.6, -1},
	}
	for _, c := range cases {
		if got := roundHalf(c.in); got != c.want {
			t.Errorf("roundHalf(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
