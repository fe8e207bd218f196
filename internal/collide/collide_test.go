package collide

import "testing"

type sliceItem struct {
	id     int
	x, y   float64
	radius float64
}

type sliceItems []sliceItem

func (s sliceItems) ItemCount() int { return len(s) }
func (s sliceItems) ItemAt(i int) (int, float64, float64, float64) {
	it := s[i]
	return it.id, it.x, it.y, it.radius
}

type sliceGatherer struct {
	id             string
	sx, sy, ex, ey float64
	radius         float64
}

type sliceGatherers []sliceGatherer

func (s sliceGatherers) GathererCount() int { return len(s) }
func (s sliceGatherers) GathererAt(j int) (string, float64, float64, float64, float64, float64) {
	g := s[j]
	return g.id, g.sx, g.sy, g.ex, g.ey, g.radius
}

func TestDetectStationaryGathererNoEvent(t *testing.T) {
	items := sliceItems{{id: 1, x: 0, y: 0, radius: 0}}
	gatherers := sliceGatherers{{id: "g1", sx: 5, sy: 5, ex: 5, ey: 5, radius: 0.3}}
	events := Detect(items, gatherers)
	if len(events) != 0 {
		t.Fatalf("expected no events for a zero-length sweep, got %v", events)
	}
}

func TestDetectSweepHitsItem(t *testing.T) {
	items := sliceItems{{id: 1, x: 5, y: 0, radius: 0}}
	gatherers := sliceGatherers{{id: "g1", sx: 0, sy: 0, ex: 10, ey: 0, radius: 0.3}}
	events := Detect(items, gatherers)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ItemID != 1 || events[0].GathererID != "g1" {
		t.Fatalf("unexpected event %+v", events[0])
	}
	if events[0].T < 0.49 || events[0].T > 0.51 {
		t.Fatalf("expected t near 0.5, got %v", events[0].T)
	}
}

func TestDetectSortedByT(t *testing.T) {
	items := sliceItems{
		{id: 1, x: 8, y: 0, radius: 0},
		{id: 2, x: 2, y: 0, radius: 0},
	}
	gatherers := sliceGatherers{{id: "g1", sx: 0, sy: 0, ex: 10, ey: 0, radius: 0.3}}
	events := Detect(items, gatherers)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ItemID != 2 || events[1].ItemID != 1 {
		t.Fatalf("expected ascending t order by item id 2 then 1, got %+v", events)
	}
}

func TestDetectItemRemainsAfterTouch(t *testing.T) {
	items := sliceItems{{id: 1, x: 5, y: 0, radius: 0}}
	gatherers := sliceGatherers{
		{id: "g1", sx: 0, sy: 0, ex: 10, ey: 0, radius: 0.3},
		{id: "g2", sx: 4, sy: 0, ex: 6, ey: 0, radius: 0.3},
	}
	events := Detect(items, gatherers)
	if len(events) != 2 {
		t.Fatalf("expected both gatherers to register an event on the same item, got %d", len(events))
	}
}
