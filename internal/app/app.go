// Package app wires the config/CLI, logging, store, Game, Strand,
// scheduler, and HTTP server together and owns the process lifecycle,
// mirroring the teacher's internal/app/app.go (os.Getenv/strconv tunables,
// a router built up front, one blocking ListenAndServe) but generalized to
// this system's serializer-plus-scheduler shape (spec.md 4.I, 9).
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	server "dogrun-server"
	"dogrun-server/internal/geo"
	"dogrun-server/internal/httpapi"
	"dogrun-server/internal/sim"
	"dogrun-server/internal/store"
	"dogrun-server/logging"
	"dogrun-server/logging/sinks"
)

// Run parses CLI flags, wires every component, and blocks serving HTTP
// until ctx is canceled or a SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cliCfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("app: parse flags: %w", err)
	}
	return runWithConfig(ctx, cliCfg)
}

func runWithConfig(ctx context.Context, cliCfg CLIConfig) error {
	fallback := log.Default()

	dbURL := os.Getenv("DOGRUN_DB_URL")
	if dbURL == "" {
		return fmt.Errorf("app: DOGRUN_DB_URL is not set")
	}

	logCfg := logging.DefaultConfig()
	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, logCfg.Console)},
	}
	if cliCfg.LogFile != "" {
		logFile, err := os.OpenFile(cliCfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("app: open log file %q: %w", cliCfg.LogFile, err)
		}
		defer logFile.Close()
		logCfg.JSON.FilePath = cliCfg.LogFile
		logCfg.EnabledSinks = append(logCfg.EnabledSinks, "json")
		namedSinks = append(namedSinks, logging.NamedSink{Name: "json", Sink: sinks.NewJSON(logFile, logCfg.JSON.FlushInterval)})
	}
	router, err := logging.NewRouter(logging.SystemClock{}, logCfg, namedSinks)
	if err != nil {
		return fmt.Errorf("app: construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			fallback.Printf("app: close logging router: %v", cerr)
		}
	}()

	mapFile, err := os.Open(cliCfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("app: open map config %q: %w", cliCfg.ConfigFile, err)
	}
	maps, err := geo.LoadMaps(mapFile)
	mapFile.Close()
	if err != nil {
		return fmt.Errorf("app: load map config: %w", err)
	}

	st, err := store.NewSQLiteStore(dbURL)
	if err != nil {
		return fmt.Errorf("app: open leaderboard store: %w", err)
	}
	defer st.Close()

	gameCfg := server.DefaultConfig()
	gameCfg.RandomSpawn = cliCfg.RandomSpawn

	game := server.NewGame(gameCfg, maps, st, router)

	if cliCfg.StateFile != "" {
		if err := game.RestoreSnapshot(cliCfg.StateFile); err != nil {
			// spec.md 7: restore failures on startup are non-fatal; start
			// with an empty world.
			fallback.Printf("app: restore snapshot %q: %v (starting empty)", cliCfg.StateFile, err)
		}
	}

	strand := sim.NewStrand(256)

	var scheduler *sim.Scheduler
	if !cliCfg.TestMode {
		scheduler = sim.StartScheduler(strand, cliCfg.TickPeriod, cliCfg.AutosavePeriod,
			func(dt time.Duration) {
				game.Tick(context.Background(), dt.Seconds())
			},
			func() {
				if cliCfg.StateFile == "" {
					return
				}
				if err := game.SaveSnapshot(cliCfg.StateFile); err != nil {
					fallback.Printf("app: autosave: %v", err)
				}
			},
		)
	}

	httpServer := &httpapi.Server{
		Game:      game,
		Strand:    strand,
		TestMode:  cliCfg.TestMode,
		StaticDir: cliCfg.StaticRoot,
	}
	if cliCfg.TestMode {
		httpServer.OnTestTick = func() {
			if cliCfg.StateFile == "" {
				return
			}
			if err := game.SaveSnapshot(cliCfg.StateFile); err != nil {
				fallback.Printf("app: forced test-mode autosave: %v", err)
			}
		}
	}

	srv := &http.Server{Addr: cliCfg.Addr, Handler: httpServer.Routes()}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		fallback.Printf("app: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("app: serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fallback.Printf("app: http shutdown: %v", err)
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	if cliCfg.StateFile != "" {
		if err := strand.Do(shutdownCtx, func() {
			if err := game.SaveSnapshot(cliCfg.StateFile); err != nil {
				fallback.Printf("app: final snapshot: %v", err)
			}
		}); err != nil {
			fallback.Printf("app: final snapshot: strand unavailable: %v", err)
		}
	}

	strand.Close()
	return nil
}
