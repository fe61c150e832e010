package ght

// Duplicates selects how Insert handles a new point whose hash exactly
// matches an existing leaf at the tree's full resolution.
type Duplicates int

const (
	// DuplicatesReject fails Insert with a *DuplicateError.
	DuplicatesReject Duplicates = iota
	// DuplicatesAccept merges the new point's attributes into the
	// existing leaf via AttributeUnion and discards the new point.
	DuplicatesAccept
)

// Logger receives diagnostics that are not failures: attribute overflow
// clamps (§4.2) and similar non-fatal conditions. It is injected through
// Config rather than reached via a package-level global, per
// SPEC_FULL.md §1.1 — callers that don't care pass nil or NoopLogger{}.
type Logger interface {
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
}

// NoopLogger discards everything. It is the default when Config.Logger
// is left nil.
type NoopLogger struct{}

func (NoopLogger) Warnf(string, ...any) {}
func (NoopLogger) Infof(string, ...any) {}

// Config carries the tunables a Tree is built with.
type Config struct {
	// Duplicates selects the policy applied when Insert sees a hash
	// already present in the tree. Default: DuplicatesReject.
	Duplicates Duplicates

	// Logger receives non-fatal diagnostics. Default: NoopLogger.
	Logger Logger

	// BulkLoadThreshold is the minimum point count at which
	// TreeFromNodeList pre-orders points with an R-tree for
	// insertion locality (SPEC_FULL.md §4.8.1). Zero disables
	// R-tree bulk ordering; points are inserted in nodelist order.
	BulkLoadThreshold int
}

// DefaultConfig returns the default configuration: duplicates rejected,
// a no-op logger, and R-tree bulk-load ordering enabled above a modest
// point count.
func DefaultConfig() Config {
	return Config{
		Duplicates:        DuplicatesReject,
		Logger:            NoopLogger{},
		BulkLoadThreshold: 64,
	}
}

func (c Config) logger() Logger {
	if c.Logger == nil {
		return NoopLogger{}
	}
	return c.Logger
}
