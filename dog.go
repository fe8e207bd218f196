package server

import "dogrun-server/internal/geo"

// Dog is one player's live avatar on a map.
type Dog struct {
	ID   string
	Name string

	Pos geo.Vec2
	Vel geo.Vec2
	Dir geo.Direction

	Bag   Bag
	Score int

	InactiveTimeS float64
	TotalTimeS    float64
}

// state returns the geo.DogState view MoveDog consumes.
func (d *Dog) state() geo.DogState {
	return geo.DogState{Pos: d.Pos, Vel: d.Vel, Dir: d.Dir}
}

// applyState writes a geo.DogState result back onto the dog.
func (d *Dog) applyState(s geo.DogState) {
	d.Pos = s.Pos
	d.Vel = s.Vel
}

// advanceTimers updates total/inactive time given whether this tick's
// motion changed position, velocity, or direction.
func (d *Dog) advanceTimers(dt float64, moved bool) {
	d.TotalTimeS += dt
	if moved {
		d.InactiveTimeS = 0
	} else {
		d.InactiveTimeS += dt
	}
}
