package logging

import "time"

// Config tunes the event router: which sinks are active, how deep the
// router's own queue is, and the per-sink settings below. dogrun-server's
// own default (unlike a combat-log-driven game loop) favors a deeper
// buffer and a longer drop-warning interval, since a single tick can emit
// a burst of gather/deliver events across every session at once.
type Config struct {
	EnabledSinks     []string
	BufferSize       int
	MinimumSeverity  Severity
	Fields           map[string]any
	JSON             JSONConfig
	Console          ConsoleConfig
	DropWarnInterval time.Duration
}

type JSONConfig struct {
	// FilePath is where the JSON sink appends newline-delimited events.
	// Empty disables the sink (internal/app only constructs it when a
	// --log-file flag is given).
	FilePath      string
	MaxBatch      int
	FlushInterval time.Duration
}

type ConsoleConfig struct {
	UseColor bool
}

// DefaultConfig returns dogrun-server's production defaults: console
// logging only (the JSON sink is opt-in via --log-file), stamped with a
// service field so every event line can be told apart once this router's
// output is mixed with another process's logs.
func DefaultConfig() Config {
	return Config{
		EnabledSinks:     []string{"console"},
		BufferSize:       1024,
		MinimumSeverity:  SeverityInfo,
		Fields:           map[string]any{"service": "dogrun-server"},
		DropWarnInterval: 10 * time.Second,
		JSON: JSONConfig{
			MaxBatch:      64,
			FlushInterval: time.Second,
		},
	}
}

func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}

func (c Config) CloneFields() map[string]any {
	if len(c.Fields) == 0 {
		return nil
	}
	cloned := make(map[string]any, len(c.Fields))
	for k, v := range c.Fields {
		cloned[k] = v
	}
	return cloned
}
