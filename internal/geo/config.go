package geo

import (
	"encoding/json"
	"fmt"
	"io"
)

// roadConfig mirrors one road entry in the map config file.
type roadConfig struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

type officeConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type lootTypeConfig struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Scale float64 `json:"scale"`
	Value int     `json:"value"`
}

// mapConfig mirrors one map entry in the map config file.
type mapConfig struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Roads       []roadConfig     `json:"roads"`
	Offices     []officeConfig   `json:"offices"`
	LootTypes   []lootTypeConfig `json:"lootTypes"`
	DogSpeed    float64          `json:"dogSpeed"`
	BagCapacity int              `json:"bagCapacity"`
}

// LoadMaps reads a JSON array of map definitions and builds the
// corresponding *Map values with their indices already built.
func LoadMaps(r io.Reader) ([]*Map, error) {
	var configs []mapConfig
	if err := json.NewDecoder(r).Decode(&configs); err != nil {
		return nil, fmt.Errorf("geo: decode map config: %w", err)
	}

	maps := make([]*Map, 0, len(configs))
	for _, cfg := range configs {
		if cfg.ID == "" {
			return nil, fmt.Errorf("geo: map config missing id")
		}
		roads := make([]Road, 0, len(cfg.Roads))
		for _, rc := range cfg.Roads {
			if rc.X0 == rc.X1 {
				roads = append(roads, NewVerticalRoad(rc.X0, rc.Y0, rc.X1, rc.Y1))
			} else {
				roads = append(roads, NewHorizontalRoad(rc.X0, rc.Y0, rc.X1, rc.Y1))
			}
		}
		offices := make([]Office, 0, len(cfg.Offices))
		for i, oc := range cfg.Offices {
			offices = append(offices, Office{ID: i, X: oc.X, Y: oc.Y})
		}
		lootTypes := make([]LootType, 0, len(cfg.LootTypes))
		for _, lc := range cfg.LootTypes {
			lootTypes = append(lootTypes, LootType{
				Name:  lc.Name,
				Color: lc.Color,
				Scale: lc.Scale,
				Value: lc.Value,
			})
		}
		maps = append(maps, NewMap(cfg.ID, cfg.Name, roads, offices, lootTypes, cfg.DogSpeed, cfg.BagCapacity))
	}
	return maps, nil
}
