package server

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"dogrun-server/internal/geo"
	"dogrun-server/internal/loot"
)

// snapshotVersion is bumped whenever a record's shape changes.
const snapshotVersion = 1

// snapshotHeader is the first record in every snapshot file. SessionCount
// tells the reader how many sessionRecords follow before the player and
// token records.
type snapshotHeader struct {
	Version      int `json:"version"`
	SessionCount int `json:"sessionCount"`
}

// dogRecord is the durable form of a Dog.
type dogRecord struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Pos           geo.Vec2       `json:"pos"`
	Vel           geo.Vec2       `json:"vel"`
	Dir           geo.Direction  `json:"dir"`
	Bag           []PickedObject `json:"bag"`
	BagCapacity   int            `json:"bagCapacity"`
	Score         int            `json:"score"`
	InactiveTimeS float64        `json:"inactiveTimeS"`
	TotalTimeS    float64        `json:"totalTimeS"`
}

// sessionRecord is the durable form of one Session.
type sessionRecord struct {
	MapID        string       `json:"mapId"`
	Dogs         []dogRecord  `json:"dogs"`
	LostObjects  []LostObject `json:"lostObjects"`
	LastObjectID int          `json:"lastObjectId"`
}

// playerRecord binds a dog id to the map its player belongs to.
type playerRecord struct {
	DogID string `json:"dogId"`
	MapID string `json:"mapId"`
}

// tokenRecord binds a live token to its dog id.
type tokenRecord struct {
	Token string `json:"token"`
	DogID string `json:"dogId"`
}

// writeRecord writes v as length-prefixed JSON: a uint32 big-endian byte
// count, then the JSON bytes.
func writeRecord(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readRecord reads one length-prefixed JSON record into v.
func readRecord(r io.Reader, v any) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SaveSnapshot writes the live world (sessions, players, tokens; map data
// is never snapshotted) to path atomically: write to a temp file in the
// same directory, then rename over the target so readers never observe a
// partial file.
func (g *Game) SaveSnapshot(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "temporary-*")
	if err != nil {
		return fmt.Errorf("server: create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if err := g.writeSnapshot(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("server: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("server: close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("server: rename snapshot into place: %w", err)
	}
	return nil
}

func (g *Game) writeSnapshot(w io.Writer) error {
	mapIDs := make([]string, 0, len(g.sessions))
	for id := range g.sessions {
		mapIDs = append(mapIDs, id)
	}

	if err := writeRecord(w, snapshotHeader{Version: snapshotVersion, SessionCount: len(mapIDs)}); err != nil {
		return err
	}

	var playerRecords []playerRecord
	for _, mapID := range mapIDs {
		sess := g.sessions[mapID]
		rec := sessionRecord{
			MapID:        mapID,
			LostObjects:  sess.LostObjects,
			LastObjectID: sess.LastObjectID,
		}
		for _, dogID := range sess.DogIDs() {
			dog, ok := sess.Dog(dogID)
			if !ok {
				continue
			}
			rec.Dogs = append(rec.Dogs, dogRecord{
				ID:            dog.ID,
				Name:          dog.Name,
				Pos:           dog.Pos,
				Vel:           dog.Vel,
				Dir:           dog.Dir,
				Bag:           append([]PickedObject(nil), dog.Bag.Items()...),
				BagCapacity:   dog.Bag.Capacity(),
				Score:         dog.Score,
				InactiveTimeS: dog.InactiveTimeS,
				TotalTimeS:    dog.TotalTimeS,
			})
			playerRecords = append(playerRecords, playerRecord{DogID: dogID, MapID: mapID})
		}
		if err := writeRecord(w, rec); err != nil {
			return err
		}
	}

	var tokenRecords []tokenRecord
	for tok, dogID := range g.Tokens.byToken {
		tokenRecords = append(tokenRecords, tokenRecord{Token: string(tok), DogID: dogID})
	}

	if err := writeRecord(w, playerRecords); err != nil {
		return err
	}
	return writeRecord(w, tokenRecords)
}

// RestoreSnapshot reads path and rebuilds sessions, the player registry, and
// the token registry, attaching sessions by map id to the currently loaded
// game. Map data itself is never restored from the snapshot; it must
// already be loaded into g. A missing or unreadable file, or a corrupt
// record, is returned to the caller to decide on (spec.md 7: non-fatal,
// "start with empty world").
func (g *Game) RestoreSnapshot(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var header snapshotHeader
	if err := readRecord(f, &header); err != nil {
		return fmt.Errorf("server: read snapshot header: %w", err)
	}
	if header.Version != snapshotVersion {
		return fmt.Errorf("server: unsupported snapshot version %d", header.Version)
	}

	sessions := make(map[string]*Session, header.SessionCount)
	dogToMap := make(map[string]*Dog)
	var maxDogID uint64

	for i := 0; i < header.SessionCount; i++ {
		var rec sessionRecord
		if err := readRecord(f, &rec); err != nil {
			return fmt.Errorf("server: read session record %d: %w", i, err)
		}
		sess := NewSession(rec.MapID)
		sess.LastObjectID = rec.LastObjectID
		sess.LostObjects = rec.LostObjects
		for _, dr := range rec.Dogs {
			bag := NewBag(dr.BagCapacity)
			for _, item := range dr.Bag {
				bag.AddPicked(item)
			}
			dog := &Dog{
				ID:            dr.ID,
				Name:          dr.Name,
				Pos:           dr.Pos,
				Vel:           dr.Vel,
				Dir:           dr.Dir,
				Bag:           bag,
				Score:         dr.Score,
				InactiveTimeS: dr.InactiveTimeS,
				TotalTimeS:    dr.TotalTimeS,
			}
			sess.AddDog(dog)
			dogToMap[dr.ID] = dog
			if id, err := parseDogID(dr.ID); err == nil && id > maxDogID {
				maxDogID = id
			}
		}
		sessions[rec.MapID] = sess
	}

	var playerRecords []playerRecord
	if err := readRecord(f, &playerRecords); err != nil {
		return fmt.Errorf("server: read player records: %w", err)
	}
	var tokenRecords []tokenRecord
	if err := readRecord(f, &tokenRecords); err != nil {
		return fmt.Errorf("server: read token records: %w", err)
	}

	players := NewPlayerRegistry()
	for _, pr := range playerRecords {
		dog, ok := dogToMap[pr.DogID]
		if !ok {
			continue
		}
		players.Add(&Player{Dog: dog, MapID: pr.MapID})
	}

	tokens := NewTokenRegistry()
	for _, tr := range tokenRecords {
		tok := Token(tr.Token)
		tokens.byToken[tok] = tr.DogID
		tokens.byDogID[tr.DogID] = tok
	}

	g.sessions = sessions
	g.Players = players
	g.Tokens = tokens
	g.nextDogID = maxDogID
	g.lootRNG = make(map[string]*rand.Rand, len(sessions))
	for mapID := range sessions {
		g.lootRNG[mapID] = loot.Stream(g.Config.RootSeed, mapID)
	}
	return nil
}

func parseDogID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
