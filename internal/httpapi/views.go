package httpapi

import (
	"dogrun-server/internal/geo"
)

// mapSummaryView is one entry of GET /api/v1/maps.
type mapSummaryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type roadView struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

type officeView struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type lootTypeView struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Scale float64 `json:"scale"`
	Value int     `json:"value"`
}

// mapFullView is the body of GET /api/v1/maps/{id}.
type mapFullView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Roads       []roadView     `json:"roads"`
	Offices     []officeView   `json:"offices"`
	LootTypes   []lootTypeView `json:"lootTypes"`
	DogSpeed    float64        `json:"dogSpeed"`
	BagCapacity int            `json:"bagCapacity"`
}

func newMapFullView(m *geo.Map) mapFullView {
	roads := make([]roadView, 0, len(m.Roads))
	for _, r := range m.Roads {
		if r.Axis == geo.Horizontal {
			roads = append(roads, roadView{X0: r.Start, Y0: r.Line, X1: r.End, Y1: r.Line})
		} else {
			roads = append(roads, roadView{X0: r.Line, Y0: r.Start, X1: r.Line, Y1: r.End})
		}
	}
	offices := make([]officeView, 0, len(m.Offices))
	for _, o := range m.Offices {
		offices = append(offices, officeView{ID: o.ID, X: o.X, Y: o.Y})
	}
	lootTypes := make([]lootTypeView, 0, len(m.LootTypes))
	for _, lt := range m.LootTypes {
		lootTypes = append(lootTypes, lootTypeView{Name: lt.Name, Color: lt.Color, Scale: lt.Scale, Value: lt.Value})
	}
	return mapFullView{
		ID:          m.ID,
		Name:        m.Name,
		Roads:       roads,
		Offices:     offices,
		LootTypes:   lootTypes,
		DogSpeed:    m.DogSpeed,
		BagCapacity: m.BagCapacity,
	}
}

// playerNameView is the per-player body of GET /api/v1/game/players.
type playerNameView struct {
	Name string `json:"name"`
}

type pickedObjectView struct {
	ID   int `json:"id"`
	Type int `json:"type"`
}

// dogStateView is one dog's entry in GET /api/v1/game/state's players map.
type dogStateView struct {
	Pos   [2]float64         `json:"pos"`
	Speed [2]float64         `json:"speed"`
	Dir   string             `json:"dir"`
	Bag   []pickedObjectView `json:"bag"`
	Score int                `json:"score"`
}

// lostObjectView is one entry in GET /api/v1/game/state's lostObjects map.
type lostObjectView struct {
	Type int        `json:"type"`
	Pos  [2]float64 `json:"pos"`
}

type gameStateView struct {
	Players     map[string]dogStateView   `json:"players"`
	LostObjects map[string]lostObjectView `json:"lostObjects"`
}

type joinResponse struct {
	AuthToken string `json:"authToken"`
	PlayerID  string `json:"playerId"`
}

type championView struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	PlayTime int64  `json:"playTime"`
}
