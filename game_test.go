package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dogrun-server/internal/geo"
	"dogrun-server/internal/store"
	"dogrun-server/logging"
)

// straightMap is a single horizontal road with one office and one loot
// type, used to exercise the pickup/deliver/retire scenarios without the
// corner-clamp geometry already covered by internal/geo's tests.
func straightMap() *geo.Map {
	roads := []geo.Road{geo.NewHorizontalRoad(0, 0, 40, 0)}
	offices := []geo.Office{{ID: 0, X: 20, Y: 0}}
	lootTypes := []geo.LootType{{Name: "bone", Color: "white", Scale: 1, Value: 20}}
	return geo.NewMap("straight", "Straight", roads, offices, lootTypes, 5, 3)
}

func newTestGame(t *testing.T) (*Game, *geo.Map) {
	t.Helper()
	m := straightMap()
	cfg := DefaultConfig()
	cfg.RandomSpawn = false
	cfg.LootBasePeriodS = 0 // no incidental generation during these tests
	cfg.LootProbability = 0
	g := NewGame(cfg, []*geo.Map{m}, store.NewMemoryStore(), logging.NopPublisher())
	return g, m
}

// TestPickupThenDeliver is spec.md 8 scenario 2: a dog crosses a spawned
// item, then later crosses the office and is credited.
func TestPickupThenDeliver(t *testing.T) {
	ctx := context.Background()
	g, m := newTestGame(t)

	sess := g.sessionFor(m.ID)
	dog := &Dog{ID: "1", Name: "rex", Pos: geo.Vec2{X: 0, Y: 0}, Vel: geo.Velocity(geo.East, m.DogSpeed), Dir: geo.East, Bag: NewBag(m.BagCapacity)}
	sess.AddDog(dog)
	g.Players.Add(&Player{Dog: dog, MapID: m.ID})

	item := LostObject{ID: sess.NextObjectID(), Type: 0, Pos: geo.Vec2{X: 5, Y: 0}}
	sess.AddLostObject(item)

	g.Tick(ctx, 1) // 5 units at speed 5: (0,0) -> (5,0), crossing the item.
	if dog.Score != 0 {
		t.Fatalf("expected no score yet, got %d", dog.Score)
	}
	if dog.Bag.Len() != 1 {
		t.Fatalf("expected 1 item in bag after pickup, got %d", dog.Bag.Len())
	}
	if len(sess.LostObjects) != 0 {
		t.Fatalf("expected the lost object to be removed from the session, got %d", len(sess.LostObjects))
	}

	g.Tick(ctx, 3) // 15 units at speed 5: (5,0) -> (20,0), the office.
	if dog.Score != 20 {
		t.Fatalf("expected score 20 after delivery, got %d", dog.Score)
	}
	if dog.Bag.Len() != 0 {
		t.Fatalf("expected bag empty after delivery, got %d", dog.Bag.Len())
	}
}

// TestDeliveryBeforePickupOrdering is spec.md 8 scenario 3: a dog carrying
// one item crosses the office and a newly-available item in the same tick;
// the office flush must be resolved before the new item is picked up.
func TestDeliveryBeforePickupOrdering(t *testing.T) {
	ctx := context.Background()
	g, m := newTestGame(t)

	sess := g.sessionFor(m.ID)
	dog := &Dog{ID: "1", Name: "rex", Pos: geo.Vec2{X: 19, Y: 0}, Vel: geo.Velocity(geo.East, m.DogSpeed), Dir: geo.East, Bag: NewBag(m.BagCapacity)}
	priorItem := PickedObject{ID: 99, Type: 0}
	dog.Bag.AddPicked(priorItem)
	sess.AddDog(dog)
	g.Players.Add(&Player{Dog: dog, MapID: m.ID})

	newItem := LostObject{ID: sess.NextObjectID(), Type: 0, Pos: geo.Vec2{X: 20, Y: 0}}
	sess.AddLostObject(newItem)

	scoreBefore := dog.Score
	g.Tick(ctx, 0.4) // 2 units at speed 5: (19,0) -> (21,0), crossing both.

	wantScore := scoreBefore + m.LootTypes[priorItem.Type].Value
	if dog.Score != wantScore {
		t.Fatalf("expected score %d after delivery, got %d", wantScore, dog.Score)
	}
	if dog.Bag.Len() != 1 {
		t.Fatalf("expected bag to hold exactly the newly picked item, got %d", dog.Bag.Len())
	}
}

// TestInactivityRetirement is spec.md 8 scenario 4.
func TestInactivityRetirement(t *testing.T) {
	ctx := context.Background()
	g, m := newTestGame(t)
	g.Config.RetireAfterS = 15

	sess := g.sessionFor(m.ID)
	dog := &Dog{ID: "1", Name: "rex", Pos: geo.Vec2{X: 10, Y: 0}, Bag: NewBag(m.BagCapacity), Score: 40}
	sess.AddDog(dog)
	g.Players.Add(&Player{Dog: dog, MapID: m.ID})
	tok, err := g.Tokens.Issue(dog.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var champions []Champion
	for i := 0; i < 3; i++ {
		champions = append(champions, g.Tick(ctx, 5)...)
	}
	if len(champions) != 1 {
		t.Fatalf("expected exactly 1 retirement after 15s idle, got %d", len(champions))
	}
	champ := champions[0]
	if champ.Name != "rex" || champ.Score != 40 || champ.PlayTimeS != 15 {
		t.Fatalf("unexpected champion record: %+v", champ)
	}

	if _, ok := g.Players.Get(dog.ID); ok {
		t.Fatalf("expected player removed from registry after retirement")
	}
	if _, ok := g.Tokens.Lookup(tok); ok {
		t.Fatalf("expected token revoked after retirement")
	}
	if _, ok := sess.Dog(dog.ID); ok {
		t.Fatalf("expected dog removed from session after retirement")
	}

	records, err := g.Store.Top(ctx, 0, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(records) != 1 || records[0].Name != "rex" {
		t.Fatalf("expected retired player in leaderboard, got %+v", records)
	}
}

// TestJoinSpawnsAtDeterministicStart is spec.md 8 scenario 5 (state-query
// half is covered at the httpapi layer; this checks the spawn contract Join
// relies on when Config.RandomSpawn is disabled).
func TestJoinSpawnsAtDeterministicStart(t *testing.T) {
	ctx := context.Background()
	g, m := newTestGame(t)

	tok, dogID, err := g.Join(ctx, m.ID, "rex")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !ValidTokenShape(string(tok)) {
		t.Fatalf("expected 32-hex token, got %q", tok)
	}

	sess, ok := g.Session(m.ID)
	if !ok {
		t.Fatalf("expected session to exist after join")
	}
	dog, ok := sess.Dog(dogID)
	if !ok {
		t.Fatalf("expected dog %q in session", dogID)
	}
	want := m.Roads[0].Start
	if dog.Pos.X != float64(want) || dog.Pos.Y != float64(m.Roads[0].Line) {
		t.Fatalf("expected deterministic spawn at road 0's start, got %+v", dog.Pos)
	}
}

func TestJoinRejectsEmptyNameOrMap(t *testing.T) {
	ctx := context.Background()
	g, m := newTestGame(t)

	if _, _, err := g.Join(ctx, "", "rex"); err == nil {
		t.Fatalf("expected error for empty map id")
	} else if je, ok := err.(*JoinError); !ok || je.Kind != JoinInvalidMap {
		t.Fatalf("expected JoinInvalidMap, got %v", err)
	}

	if _, _, err := g.Join(ctx, m.ID, ""); err == nil {
		t.Fatalf("expected error for empty name")
	} else if je, ok := err.(*JoinError); !ok || je.Kind != JoinInvalidName {
		t.Fatalf("expected JoinInvalidName, got %v", err)
	}

	if _, _, err := g.Join(ctx, "missing", "rex"); err == nil {
		t.Fatalf("expected error for unknown map")
	} else if je, ok := err.(*JoinError); !ok || je.Kind != JoinMapNotFound {
		t.Fatalf("expected JoinMapNotFound, got %v", err)
	}
}

// TestSnapshotRoundTrip is spec.md 8 scenario 6.
func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	g, m := newTestGame(t)

	sess := g.sessionFor(m.ID)
	dog := &Dog{ID: "1", Name: "rex", Pos: geo.Vec2{X: 5, Y: 0}, Score: 20, InactiveTimeS: 2, TotalTimeS: 9, Bag: NewBag(m.BagCapacity)}
	dog.Bag.AddPicked(PickedObject{ID: 7, Type: 0})
	sess.AddDog(dog)
	g.Players.Add(&Player{Dog: dog, MapID: m.ID})
	tok, err := g.Tokens.Issue(dog.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	sess.AddLostObject(LostObject{ID: sess.NextObjectID(), Type: 0, Pos: geo.Vec2{X: 30, Y: 0}})

	path := filepath.Join(t.TempDir(), "state.bin")
	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	g2, m2 := newTestGame(t)
	_ = m2
	if err := g2.RestoreSnapshot(path); err != nil {
		t.Fatalf("restore snapshot: %v", err)
	}

	restoredSess, ok := g2.Session(m.ID)
	if !ok {
		t.Fatalf("expected restored session for %q", m.ID)
	}
	restoredDog, ok := restoredSess.Dog(dog.ID)
	if !ok {
		t.Fatalf("expected restored dog %q", dog.ID)
	}
	if restoredDog.Pos != dog.Pos || restoredDog.Score != dog.Score || restoredDog.TotalTimeS != dog.TotalTimeS {
		t.Fatalf("restored dog mismatch: got %+v, want pos=%+v score=%d total=%v", restoredDog, dog.Pos, dog.Score, dog.TotalTimeS)
	}
	if restoredDog.Bag.Len() != 1 {
		t.Fatalf("expected restored bag to have 1 item, got %d", restoredDog.Bag.Len())
	}
	if len(restoredSess.LostObjects) != 1 {
		t.Fatalf("expected restored session to have 1 lost object, got %d", len(restoredSess.LostObjects))
	}

	if p, ok := g2.Players.Get(dog.ID); !ok || p.MapID != m.ID {
		t.Fatalf("expected restored player registry entry for %q", dog.ID)
	}
	if id, ok := g2.Tokens.Lookup(tok); !ok || id != dog.ID {
		t.Fatalf("expected restored token to resolve to %q, got %q ok=%v", dog.ID, id, ok)
	}

	// A fresh join after restore must not collide with the restored id.
	if _, newID, err := g2.Join(ctx, m.ID, "fido"); err != nil || newID == dog.ID {
		t.Fatalf("expected a fresh, distinct dog id after restore, got %q err=%v", newID, err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
