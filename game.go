// Package server is the root of the simulation core: the Game type wires
// together the map catalog, per-map sessions, the player/token registries,
// the loot generator, and the leaderboard store behind a single serialized
// entry point (see internal/sim.Strand for the serializer itself).
package server

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"dogrun-server/internal/geo"
	"dogrun-server/internal/loot"
	"dogrun-server/internal/store"
	"dogrun-server/logging"
	loggingsession "dogrun-server/logging/session"
)

// JoinErrorKind enumerates the rejection reasons join() can return, per
// spec.md 4.E.
type JoinErrorKind string

const (
	JoinInvalidName     JoinErrorKind = "invalidName"
	JoinInvalidMap      JoinErrorKind = "invalidMap"
	JoinMapNotFound     JoinErrorKind = "mapNotFound"
	JoinSessionNotFound JoinErrorKind = "sessionNotFound"
)

// JoinError reports why a join attempt was rejected.
type JoinError struct {
	Kind JoinErrorKind
}

func (e *JoinError) Error() string {
	return string(e.Kind)
}

// Game owns every live map, session, player, and token for the process. All
// methods assume the caller has already entered the world serializer; Game
// itself holds no lock.
type Game struct {
	Config Config

	maps     map[string]*geo.Map
	mapOrder []string

	sessions map[string]*Session
	lootRNG  map[string]*rand.Rand // per-session deterministic loot stream

	Players *PlayerRegistry
	Tokens  *TokenRegistry
	Store   store.Store

	loot logging.Publisher // logging publisher (may be logging.NopPublisher())

	nextDogID uint64
	tick      uint64
}

// NewGame constructs a Game over the given map catalog. maps order is
// preserved for the /api/v1/maps listing.
func NewGame(cfg Config, maps []*geo.Map, st store.Store, pub logging.Publisher) *Game {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	g := &Game{
		Config:   cfg,
		maps:     make(map[string]*geo.Map, len(maps)),
		sessions: make(map[string]*Session),
		lootRNG:  make(map[string]*rand.Rand),
		Players:  NewPlayerRegistry(),
		Tokens:   NewTokenRegistry(),
		Store:    st,
		loot:     pub,
	}
	for _, m := range maps {
		g.maps[m.ID] = m
		g.mapOrder = append(g.mapOrder, m.ID)
	}
	return g
}

// MapIDs returns every loaded map id in load order.
func (g *Game) MapIDs() []string {
	return g.mapOrder
}

// Map looks up a loaded map by id.
func (g *Game) Map(id string) (*geo.Map, bool) {
	m, ok := g.maps[id]
	return m, ok
}

// sessionFor returns the session for mapID, lazily creating it (and its
// loot RNG stream) on first use, per spec.md 3's session lifecycle.
func (g *Game) sessionFor(mapID string) *Session {
	s, ok := g.sessions[mapID]
	if !ok {
		s = NewSession(mapID)
		g.sessions[mapID] = s
		g.lootRNG[mapID] = loot.Stream(g.Config.RootSeed, mapID)
	}
	return s
}

// Session exposes a map's session, if any dog has ever joined it.
func (g *Game) Session(mapID string) (*Session, bool) {
	s, ok := g.sessions[mapID]
	return s, ok
}

// Sessions returns every live session, keyed by map id.
func (g *Game) Sessions() map[string]*Session {
	return g.sessions
}

func (g *Game) newDogID() string {
	g.nextDogID++
	return strconv.FormatUint(g.nextDogID, 10)
}

// Join admits a new player to mapID under name, spawning their dog at a
// random point on the map, or at the first road's start when
// Config.RandomSpawn is false. Validation
// order follows spec.md 4.E: empty name/mapId are rejected before any
// session lookup.
func (g *Game) Join(ctx context.Context, mapID, name string) (Token, string, error) {
	if mapID == "" {
		return "", "", &JoinError{Kind: JoinInvalidMap}
	}
	if name == "" {
		return "", "", &JoinError{Kind: JoinInvalidName}
	}
	m, ok := g.maps[mapID]
	if !ok {
		loggingsession.Rejected(ctx, g.loot, g.tick, loggingsession.RejectedPayload{MapID: mapID, Reason: string(JoinMapNotFound)})
		return "", "", &JoinError{Kind: JoinMapNotFound}
	}

	sess := g.sessionFor(mapID)
	spawnRNG := g.lootRNG[mapID]
	pos := m.RandomSpawn(spawnRNG, !g.Config.RandomSpawn)

	dogID := g.newDogID()
	dog := &Dog{
		ID:   dogID,
		Name: name,
		Pos:  pos,
		Bag:  NewBag(m.BagCapacity),
	}
	sess.AddDog(dog)

	player := &Player{Dog: dog, MapID: mapID}
	g.Players.Add(player)

	tok, err := g.Tokens.Issue(dogID)
	if err != nil {
		g.Players.Remove(dogID)
		sess.RemoveDog(dogID)
		return "", "", fmt.Errorf("game: issue token: %w", err)
	}

	loggingsession.Joined(ctx, g.loot, g.tick, logging.EntityRef{ID: dogID, Kind: logging.EntityKindDog}, loggingsession.JoinedPayload{
		MapID: mapID,
		Name:  name,
		Pos:   [2]float64{pos.X, pos.Y},
	})

	return tok, dogID, nil
}

// SetDirection applies a move command to a live dog, translating the L/R/U/D
// encoding into an axis-aligned velocity at the map's dog speed.
func (g *Game) SetDirection(dogID string, dir geo.Direction) (ok bool) {
	p, ok := g.Players.Get(dogID)
	if !ok {
		return false
	}
	m, ok := g.maps[p.MapID]
	if !ok {
		return false
	}
	p.Dog.Dir = dir
	p.Dog.Vel = geo.Velocity(dir, m.DogSpeed)
	return true
}
