package testutil

import (
	"io"
	"log/slog"
	"time"

	"github.com/roach88/tennis/internal/engine"
)

// DefaultMatchID is used when a scenario does not name its match.
const DefaultMatchID = "test-match-default"

// FixedIDGenerator returns the same match id on every call.
//
// engine.FixedGenerator hands out a list of ids once each; this one never
// runs out, which suits harnesses that build a fresh match per scenario.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator returns a generator for id, or DefaultMatchID when
// id is empty.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = DefaultMatchID
	}
	return &FixedIDGenerator{id: id}
}

// Generate implements engine.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MatchOptions returns engine options that make a match fully
// reproducible: fixed id, seq starting at 1, one-second timestamps from
// Epoch and no log output.
func MatchOptions(id string) []engine.Option {
	return []engine.Option{
		engine.WithIDGenerator(NewFixedIDGenerator(id)),
		engine.WithSequencer(NewDeterministicClock()),
		engine.WithNow(NewSteppingClock(time.Second).Now),
		engine.WithLogger(DiscardLogger()),
	}
}
