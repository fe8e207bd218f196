package app

import (
	"flag"
	"time"
)

// CLIConfig mirrors the CLI flags spec.md 6 lists as the external
// collaborator: config file, static-content root, spawn toggle, tick and
// autosave periods, state file path, test-mode toggle. Parsed with the
// standard flag package, matching the teacher's own os.Getenv/strconv
// style of avoiding a CLI framework (SPEC_FULL.md AMBIENT STACK).
type CLIConfig struct {
	ConfigFile     string
	StaticRoot     string
	RandomSpawn    bool
	TickPeriod     time.Duration
	AutosavePeriod time.Duration
	StateFile      string
	TestMode       bool
	Addr           string
	LogFile        string
}

// ParseFlags parses args (pass os.Args[1:] in production, a fixed slice in
// tests) into a CLIConfig.
func ParseFlags(args []string) (CLIConfig, error) {
	fs := flag.NewFlagSet("dogrun-server", flag.ContinueOnError)
	cfg := CLIConfig{}

	var tickMs, autosaveMs int
	fs.StringVar(&cfg.ConfigFile, "config-file", "maps.json", "path to the map config JSON file")
	fs.StringVar(&cfg.StaticRoot, "www-root", "", "static content root (empty disables static serving)")
	fs.BoolVar(&cfg.RandomSpawn, "randomize-spawn-points", true, "spawn dogs at a random road point instead of the first road's start")
	fs.IntVar(&tickMs, "tick-period", 50, "simulation tick period in milliseconds (0 disables the periodic tick driver)")
	fs.IntVar(&autosaveMs, "autosave-period", 60000, "autosave period in milliseconds (0 disables the periodic autosave driver)")
	fs.StringVar(&cfg.StateFile, "state-file", "", "path to the state snapshot file (empty disables persistence)")
	fs.BoolVar(&cfg.TestMode, "test-mode", false, "enable the test-only tick endpoint and disable periodic drivers")
	fs.StringVar(&cfg.Addr, "addr", ":8080", "HTTP listen address")
	fs.StringVar(&cfg.LogFile, "log-file", "", "path to append newline-delimited JSON event logs (empty disables the JSON sink)")

	if err := fs.Parse(args); err != nil {
		return CLIConfig{}, err
	}

	cfg.TickPeriod = time.Duration(tickMs) * time.Millisecond
	cfg.AutosavePeriod = time.Duration(autosaveMs) * time.Millisecond
	return cfg, nil
}
