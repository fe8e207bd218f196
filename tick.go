package server

import (
	"context"
	"sort"

	"dogrun-server/internal/collide"
	"dogrun-server/internal/geo"
	"dogrun-server/internal/loot"
	"dogrun-server/internal/store"
	"dogrun-server/logging"
	loggingsession "dogrun-server/logging/session"
	loggingworld "dogrun-server/logging/world"
)

// gatherer is one dog's swept path within a tick, the unit collide.Detect
// consumes for both the delivery and pickup passes.
type gatherer struct {
	dogID      string
	start, end geo.Vec2
}

// gathererProvider adapts a []gatherer slice to collide.GathererProvider.
type gathererProvider struct {
	gatherers []gatherer
	halfWidth float64
}

func (p gathererProvider) GathererCount() int { return len(p.gatherers) }

func (p gathererProvider) GathererAt(j int) (id string, sx, sy, ex, ey, radius float64) {
	g := p.gatherers[j]
	return g.dogID, g.start.X, g.start.Y, g.end.X, g.end.Y, p.halfWidth
}

// officeItemProvider adapts a map's offices to collide.ItemProvider for the
// delivery pass.
type officeItemProvider struct {
	offices []geo.Office
}

func (p officeItemProvider) ItemCount() int { return len(p.offices) }

func (p officeItemProvider) ItemAt(i int) (id int, x, y, radius float64) {
	o := p.offices[i]
	return o.ID, o.X, o.Y, geo.OfficeHalfWidth
}

// lostObjectProvider adapts a session's lost objects to collide.ItemProvider
// for the pickup pass.
type lostObjectProvider struct {
	objects []LostObject
}

func (p lostObjectProvider) ItemCount() int { return len(p.objects) }

func (p lostObjectProvider) ItemAt(i int) (id int, x, y, radius float64) {
	o := p.objects[i]
	return o.ID, o.Pos.X, o.Pos.Y, geo.ItemHalfWidth
}

func (p lostObjectProvider) find(id int) (LostObject, bool) {
	for _, o := range p.objects {
		if o.ID == id {
			return o, true
		}
	}
	return LostObject{}, false
}

// Tick advances the whole world by dt seconds, per spec.md 4.F: motion,
// generation, delivery, pickup, retirement. The caller must already be
// inside the world serializer (internal/sim.Strand); Tick takes no lock of
// its own. The returned Champions are the players retired this tick, in no
// particular order.
func (g *Game) Tick(ctx context.Context, dt float64) []Champion {
	g.tick++

	mapIDs := make([]string, 0, len(g.sessions))
	for id := range g.sessions {
		mapIDs = append(mapIDs, id)
	}
	sort.Strings(mapIDs)

	bySession := make(map[string][]gatherer, len(mapIDs))
	var retireCandidates []string

	// 1. Motion pass.
	for _, mapID := range mapIDs {
		sess := g.sessions[mapID]
		m := g.maps[mapID]
		for _, dogID := range sess.DogIDs() {
			dog, ok := sess.Dog(dogID)
			if !ok {
				continue
			}
			before := dog.state()
			after := m.MoveDog(before, dt)
			moved := after.Pos != before.Pos || after.Vel != before.Vel || after.Dir != before.Dir
			dog.advanceTimers(dt, moved)
			dog.applyState(after)

			bySession[mapID] = append(bySession[mapID], gatherer{dogID: dogID, start: before.Pos, end: dog.Pos})

			if dog.InactiveTimeS >= g.Config.RetireAfterS {
				retireCandidates = append(retireCandidates, dogID)
			}
		}
	}

	// 2. Per-session generation, delivery, pickup.
	for _, mapID := range mapIDs {
		sess := g.sessions[mapID]
		if sess.DogCount() == 0 {
			continue
		}
		m := g.maps[mapID]
		rng := g.lootRNG[mapID]

		gen := loot.Generator{BasePeriod: g.Config.LootBasePeriodS, Probability: g.Config.LootProbability}
		n := gen.Generate(rng, dt, len(sess.LostObjects), sess.DogCount())
		for i := 0; i < n; i++ {
			typeIdx, pos := loot.Spawn(rng, m, len(m.LootTypes))
			id := sess.NextObjectID()
			obj := LostObject{ID: id, Type: typeIdx, Pos: pos}
			sess.AddLostObject(obj)
			loggingworld.ItemSpawned(ctx, g.loot, g.tick, loggingworld.ItemSpawnedPayload{
				MapID: mapID, ID: obj.ID, Type: obj.Type, Pos: [2]float64{obj.Pos.X, obj.Pos.Y},
			})
		}

		gatherers := gathererProvider{gatherers: bySession[mapID], halfWidth: geo.GathererHalfWidth}

		// Delivery pass: offices first, per spec.md 4.F's ordering note.
		for _, ev := range collide.Detect(officeItemProvider{offices: m.Offices}, gatherers) {
			dog, ok := sess.Dog(ev.GathererID)
			if !ok || dog.Bag.Len() == 0 {
				continue
			}
			items := dog.Bag.Flush()
			scoreAdded := 0
			for _, it := range items {
				if it.Type >= 0 && it.Type < len(m.LootTypes) {
					scoreAdded += m.LootTypes[it.Type].Value
				}
			}
			dog.Score += scoreAdded
			loggingworld.ItemDelivered(ctx, g.loot, g.tick, logging.EntityRef{ID: dog.ID, Kind: logging.EntityKindDog}, loggingworld.ItemDeliveredPayload{
				MapID: mapID, OfficeID: ev.ItemID, ItemCount: len(items), ScoreAdded: scoreAdded,
			})
		}

		// Pickup pass against whatever is left in the loot list.
		items := lostObjectProvider{objects: sess.LostObjects}
		picked := make(map[int]bool)
		for _, ev := range collide.Detect(items, gatherers) {
			if picked[ev.ItemID] {
				continue
			}
			dog, ok := sess.Dog(ev.GathererID)
			if !ok {
				continue
			}
			obj, ok := items.find(ev.ItemID)
			if !ok {
				continue
			}
			if dog.Bag.AddPicked(PickedObject{ID: obj.ID, Type: obj.Type}) {
				picked[ev.ItemID] = true
				loggingworld.ItemPickedUp(ctx, g.loot, g.tick, logging.EntityRef{ID: dog.ID, Kind: logging.EntityKindDog}, loggingworld.ItemPickedUpPayload{
					MapID: mapID, ID: obj.ID, Type: obj.Type,
				})
			}
		}
		sess.RemoveLostObjects(picked)
	}

	// 3. Retirement, applied after the full session pass (spec.md 9's
	// "manual deleted-player flag": never mutate while ranging).
	var champions []Champion
	for _, dogID := range retireCandidates {
		p, ok := g.Players.Get(dogID)
		if !ok {
			continue
		}
		champ := Champion{Name: p.Dog.Name, Score: p.Dog.Score, PlayTimeS: p.Dog.TotalTimeS}
		champions = append(champions, champ)

		if err := g.Store.Save(ctx, store.Champion{Name: champ.Name, Score: champ.Score, PlayTimeS: champ.PlayTimeS}); err != nil {
			// spec.md 7: record loss is accepted to keep the loop live.
			g.loot.Publish(ctx, logging.Event{
				Type:     "store.save_failed",
				Tick:     g.tick,
				Severity: logging.SeverityError,
				Category: logging.CategorySystem,
				Payload:  map[string]any{"error": err.Error()},
			})
		}

		loggingsession.Retired(ctx, g.loot, g.tick, logging.EntityRef{ID: dogID, Kind: logging.EntityKindDog}, loggingsession.RetiredPayload{
			MapID: p.MapID, Name: champ.Name, Score: champ.Score, PlayTimeS: champ.PlayTimeS,
		})

		g.Players.Remove(dogID)
		g.Tokens.RevokeByDogID(dogID)
		if sess, ok := g.sessions[p.MapID]; ok {
			sess.RemoveDog(dogID)
		}
	}

	return champions
}
