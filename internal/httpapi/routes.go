// Package httpapi is the HTTP/JSON transport collaborator spec.md 1 and 6
// describe: URL dispatch and request/response marshaling live here, while
// every operation it performs against world state is delegated to
// dogrun-server.Game through the internal/sim.Strand serializer. Routing
// follows the teacher pack's chi-based server
// (stake-pf-replay-go/engine/internal/api/server.go): chi.NewRouter with
// middleware.Logger/Recoverer, real path params via chi.URLParam.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	server "dogrun-server"
	"dogrun-server/internal/apierr"
	"dogrun-server/internal/sim"
)

// Server wires the HTTP transport to a Game behind its Strand.
type Server struct {
	Game     *server.Game
	Strand   *sim.Strand
	TestMode bool

	// StaticDir, if non-empty, is served for any path outside the
	// /api/v1 surface (the "static-content root" CLI collaborator in
	// spec.md 6).
	StaticDir string

	// OnTestTick is invoked after every test-mode tick endpoint call, so
	// the app layer can force an autosave per spec.md 4.I's test-mode
	// contract. May be nil.
	OnTestTick func()
}

// Routes builds the chi router for the full §6 API surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Handle("/api/v1/maps", methodGuard([]string{http.MethodGet, http.MethodHead}, s.handleMaps))
	r.Handle("/api/v1/maps/{id}", methodGuard([]string{http.MethodGet, http.MethodHead}, s.handleMapByID))
	r.Handle("/api/v1/game/join", methodGuard([]string{http.MethodPost}, s.handleJoin))
	r.Handle("/api/v1/game/players", methodGuard([]string{http.MethodGet, http.MethodHead}, s.withAuth(s.handlePlayers)))
	r.Handle("/api/v1/game/state", methodGuard([]string{http.MethodGet, http.MethodHead}, s.withAuth(s.handleState)))
	r.Handle("/api/v1/game/player/action", methodGuard([]string{http.MethodPost}, s.withAuth(s.handleAction)))
	r.Handle("/api/v1/game/tick", methodGuard([]string{http.MethodPost}, s.handleTick))
	r.Handle("/api/v1/game/records", methodGuard([]string{http.MethodGet, http.MethodHead}, s.handleRecords))

	if s.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.StaticDir))
		r.NotFound(fileServer.ServeHTTP)
	} else {
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			apierr.Write(w, req, apierr.New(http.StatusNotFound, apierr.BadRequest, "unknown endpoint"))
		})
	}

	return r
}

// methodGuard restricts h to the given methods; any other method gets a 405
// with an Allow header listing what is permitted (spec.md 6).
func methodGuard(allowed []string, h http.HandlerFunc) http.HandlerFunc {
	allowedSet := make(map[string]bool, len(allowed))
	for _, m := range allowed {
		allowedSet[m] = true
	}
	allowHeader := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowedSet[r.Method] {
			w.Header().Set("Allow", allowHeader)
			apierr.Write(w, r, apierr.New(http.StatusMethodNotAllowed, apierr.InvalidMethod, "method not allowed"))
			return
		}
		h(w, r)
	}
}
