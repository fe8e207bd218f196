package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	server "dogrun-server"
	"dogrun-server/internal/apierr"
	"dogrun-server/internal/geo"
)

const maxRecordsPage = 100

func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	ids := s.Game.MapIDs()
	views := make([]mapSummaryView, 0, len(ids))
	for _, id := range ids {
		m, ok := s.Game.Map(id)
		if !ok {
			continue
		}
		views = append(views, mapSummaryView{ID: m.ID, Name: m.Name})
	}
	apierr.WriteJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleMapByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, ok := s.Game.Map(id)
	if !ok {
		apierr.Write(w, r, apierr.New(http.StatusNotFound, apierr.MapNotFound, "map not found"))
		return
	}
	apierr.WriteJSON(w, r, http.StatusOK, newMapFullView(m))
}

type joinRequest struct {
	UserName string `json:"userName"`
	MapID    string `json:"mapId"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "malformed request body"))
		return
	}

	var (
		tok   server.Token
		dogID string
		joinE error
	)
	err := s.Strand.Do(r.Context(), func() {
		tok, dogID, joinE = s.Game.Join(r.Context(), req.MapID, req.UserName)
	})
	if err != nil {
		apierr.Write(w, r, apierr.New(http.StatusServiceUnavailable, apierr.Internal, "server busy"))
		return
	}
	if joinE != nil {
		if je, ok := joinE.(*server.JoinError); ok {
			switch je.Kind {
			case server.JoinMapNotFound:
				apierr.Write(w, r, apierr.New(http.StatusNotFound, apierr.MapNotFound, "map not found"))
			default:
				apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "invalid name or map id"))
			}
			return
		}
		apierr.Write(w, r, apierr.New(http.StatusInternalServerError, apierr.Internal, "join failed"))
		return
	}

	apierr.WriteJSON(w, r, http.StatusOK, joinResponse{AuthToken: string(tok), PlayerID: dogID})
}

// withAuth resolves the Bearer token to a live dog id before calling next,
// per spec.md 4.E/6: malformed tokens are invalidToken, well-formed but
// unknown tokens are unknownToken.
func (s *Server) withAuth(next func(w http.ResponseWriter, r *http.Request, dogID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			apierr.Write(w, r, apierr.New(http.StatusUnauthorized, apierr.InvalidToken, "missing or malformed authorization header"))
			return
		}
		raw := strings.TrimPrefix(header, prefix)
		if !server.ValidTokenShape(raw) {
			apierr.Write(w, r, apierr.New(http.StatusUnauthorized, apierr.InvalidToken, "malformed token"))
			return
		}

		var (
			dogID string
			ok    bool
		)
		err := s.Strand.Do(r.Context(), func() {
			dogID, ok = s.Game.Tokens.Lookup(server.Token(raw))
		})
		if err != nil {
			apierr.Write(w, r, apierr.New(http.StatusServiceUnavailable, apierr.Internal, "server busy"))
			return
		}
		if !ok {
			apierr.Write(w, r, apierr.New(http.StatusUnauthorized, apierr.UnknownToken, "unknown token"))
			return
		}
		next(w, r, dogID)
	}
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request, dogID string) {
	out := make(map[string]playerNameView)
	err := s.Strand.Do(r.Context(), func() {
		p, ok := s.Game.Players.Get(dogID)
		if !ok {
			return
		}
		sess, ok := s.Game.Session(p.MapID)
		if !ok {
			return
		}
		for _, id := range sess.DogIDs() {
			dog, ok := sess.Dog(id)
			if !ok {
				continue
			}
			out[id] = playerNameView{Name: dog.Name}
		}
	})
	if err != nil {
		apierr.Write(w, r, apierr.New(http.StatusServiceUnavailable, apierr.Internal, "server busy"))
		return
	}
	apierr.WriteJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, dogID string) {
	view := gameStateView{Players: map[string]dogStateView{}, LostObjects: map[string]lostObjectView{}}
	err := s.Strand.Do(r.Context(), func() {
		p, ok := s.Game.Players.Get(dogID)
		if !ok {
			return
		}
		sess, ok := s.Game.Session(p.MapID)
		if !ok {
			return
		}
		for _, id := range sess.DogIDs() {
			dog, ok := sess.Dog(id)
			if !ok {
				continue
			}
			bag := make([]pickedObjectView, 0, dog.Bag.Len())
			for _, item := range dog.Bag.Items() {
				bag = append(bag, pickedObjectView{ID: item.ID, Type: item.Type})
			}
			view.Players[id] = dogStateView{
				Pos:   [2]float64{dog.Pos.X, dog.Pos.Y},
				Speed: [2]float64{dog.Vel.X, dog.Vel.Y},
				Dir:   string(dog.Dir),
				Bag:   bag,
				Score: dog.Score,
			}
		}
		for _, obj := range sess.LostObjects {
			view.LostObjects[strconv.Itoa(obj.ID)] = lostObjectView{Type: obj.Type, Pos: [2]float64{obj.Pos.X, obj.Pos.Y}}
		}
	})
	if err != nil {
		apierr.Write(w, r, apierr.New(http.StatusServiceUnavailable, apierr.Internal, "server busy"))
		return
	}
	apierr.WriteJSON(w, r, http.StatusOK, view)
}

type actionRequest struct {
	Move string `json:"move"`
}

func moveToDirection(move string) (geo.Direction, bool) {
	switch move {
	case "L":
		return geo.West, true
	case "R":
		return geo.East, true
	case "U":
		return geo.North, true
	case "D":
		return geo.South, true
	case "":
		return geo.Stop, true
	default:
		return "", false
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request, dogID string) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "malformed request body"))
		return
	}
	dir, ok := moveToDirection(req.Move)
	if !ok {
		apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "invalid move code"))
		return
	}

	err := s.Strand.Do(r.Context(), func() {
		s.Game.SetDirection(dogID, dir)
	})
	if err != nil {
		apierr.Write(w, r, apierr.New(http.StatusServiceUnavailable, apierr.Internal, "server busy"))
		return
	}
	apierr.WriteJSON(w, r, http.StatusOK, struct{}{})
}

type tickRequest struct {
	TimeDelta int64 `json:"timeDelta"`
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	if !s.TestMode {
		apierr.Write(w, r, apierr.New(http.StatusNotFound, apierr.BadRequest, "not found"))
		return
	}
	var req tickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "malformed request body"))
		return
	}
	if req.TimeDelta < 0 {
		apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "negative timeDelta"))
		return
	}

	dt := float64(req.TimeDelta) / 1000
	err := s.Strand.Do(r.Context(), func() {
		s.Game.Tick(r.Context(), dt)
	})
	if err != nil {
		apierr.Write(w, r, apierr.New(http.StatusServiceUnavailable, apierr.Internal, "server busy"))
		return
	}
	if s.OnTestTick != nil {
		s.OnTestTick()
	}
	apierr.WriteJSON(w, r, http.StatusOK, struct{}{})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	start := 0
	maxItems := maxRecordsPage
	if raw := r.URL.Query().Get("start"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "invalid start"))
			return
		}
		start = v
	}
	if raw := r.URL.Query().Get("maxItems"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "invalid maxItems"))
			return
		}
		if v > maxRecordsPage {
			apierr.Write(w, r, apierr.New(http.StatusBadRequest, apierr.InvalidArgument, "maxItems exceeds 100"))
			return
		}
		maxItems = v
	}

	champs, err := s.Game.Store.Top(r.Context(), start, maxItems)
	if err != nil {
		apierr.Write(w, r, apierr.New(http.StatusInternalServerError, apierr.Internal, "records query failed"))
		return
	}
	views := make([]championView, 0, len(champs))
	for _, c := range champs {
		views = append(views, championView{Name: c.Name, Score: c.Score, PlayTime: int64(c.PlayTimeS * 1000)})
	}
	apierr.WriteJSON(w, r, http.StatusOK, views)
}
