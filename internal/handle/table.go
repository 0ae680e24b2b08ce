package handle

import (
	"log/slog"
	"sync"

	"github.com/roach88/tennis/internal/engine"
)

// Handle identifies a live match in a Table. Zero is never issued.
type Handle uintptr

// Table owns the matches behind a set of handles.
type Table struct {
	mu      sync.Mutex
	last    Handle
	matches map[Handle]*engine.Match

	matchOpts func() []engine.Option
	logger    *slog.Logger
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithMatchOptions sets a factory for the options of each new match. It is
// called once per create, so stateful options such as a sequencer are never
// reused between matches.
func WithMatchOptions(fn func() []engine.Option) TableOption {
	return func(t *Table) {
		t.matchOpts = fn
	}
}

// WithLogger sets the table logger. It is also passed to new matches
// unless WithMatchOptions supplies one.
func WithLogger(l *slog.Logger) TableOption {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTable creates an empty table. Every match it creates owns its own
// sequence clock.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		matches: make(map[Handle]*engine.Match),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) optionsFor() []engine.Option {
	opts := []engine.Option{engine.WithLogger(t.logger)}
	if t.matchOpts != nil {
		opts = append(opts, t.matchOpts()...)
	}
	return opts
}

func (t *Table) create(rules engine.Rules) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last++
	h := t.last
	m := engine.New(rules, t.optionsFor()...)
	t.matches[h] = m
	t.logger.Debug("match created", "handle", uint64(h), "match", m.ID(), "rules", rules.String())
	return h
}

// with runs fn on the match behind h while holding the table lock.
// Reports false, without calling fn, when h is absent.
func (t *Table) with(h Handle, fn func(m *engine.Match)) bool {
	if h == 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.matches[h]
	if !ok {
		return false
	}
	fn(m)
	return true
}

// NewDefault creates a best-of-3 match with Ad scoring and tiebreaks.
func (t *Table) NewDefault() Handle {
	return t.create(engine.DefaultRules())
}

// NewBestOfFive creates a best-of-5 match.
func (t *Table) NewBestOfFive() Handle {
	return t.create(engine.BestOfFiveRules())
}

// NewNoAd creates a best-of-3 No-Ad match.
func (t *Table) NewNoAd() Handle {
	return t.create(engine.NoAdRules())
}

// NewCustom creates a match from explicit rules. It returns the zero
// Handle when setsToWin or tiebreakPoints is zero.
func (t *Table) NewCustom(setsToWin, tiebreakPoints uint8, finalSetTiebreak, noAdScoring bool) Handle {
	rules := engine.Rules{
		SetsToWin:        setsToWin,
		TiebreakPoints:   tiebreakPoints,
		FinalSetTiebreak: finalSetTiebreak,
		NoAdScoring:      noAdScoring,
	}
	if err := rules.Validate(); err != nil {
		t.logger.Warn("custom match rejected", "error", err)
		return 0
	}
	return t.create(rules)
}

// Free releases the match behind h. Freeing zero or an unknown handle is
// a no-op.
func (t *Table) Free(h Handle) {
	if h == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if m, ok := t.matches[h]; ok {
		delete(t.matches, h)
		t.logger.Debug("match freed", "handle", uint64(h), "match", m.ID())
	}
}

// Len returns the number of live matches.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.matches)
}

// Match returns the match behind h for read access by in-process callers.
func (t *Table) Match(h Handle) (*engine.Match, bool) {
	var out *engine.Match
	ok := t.with(h, func(m *engine.Match) { out = m })
	return out, ok
}

// ScorePoint awards a point to the player with the given code. Reports
// false for an absent handle, an unknown code or a completed match.
func (t *Table) ScorePoint(h Handle, player uint8) bool {
	var err error
	if !t.with(h, func(m *engine.Match) { err = m.ScorePoint(engine.Player(player)) }) {
		return false
	}
	if err != nil {
		t.logger.Debug("point rejected", "handle", uint64(h), "error", err)
		return false
	}
	return true
}

// Undo reverts the last point. Reports false for an absent handle or an
// empty history.
func (t *Table) Undo(h Handle) bool {
	var err error
	if !t.with(h, func(m *engine.Match) { err = m.Undo() }) {
		return false
	}
	return err == nil
}

// GetScore returns the live score, or the zero Score for an absent handle.
func (t *Table) GetScore(h Handle) Score {
	var s Score
	t.with(h, func(m *engine.Match) { s = scoreOf(m.Score()) })
	return s
}

// CanUndo reports whether h has a point to undo.
func (t *Table) CanUndo(h Handle) bool {
	var ok bool
	t.with(h, func(m *engine.Match) { ok = m.CanUndo() })
	return ok
}

// IsComplete reports whether the match behind h has a winner.
func (t *Table) IsComplete(h Handle) bool {
	var ok bool
	t.with(h, func(m *engine.Match) { ok = m.IsComplete() })
	return ok
}

// GetWinner returns the winner code, or PlayerNone.
func (t *Table) GetWinner(h Handle) uint8 {
	w := PlayerNone
	t.with(h, func(m *engine.Match) { w = uint8(m.Winner()) })
	return w
}

// PointCount returns the number of recorded points, or 0 for an absent
// handle.
func (t *Table) PointCount(h Handle) uint32 {
	var n uint32
	t.with(h, func(m *engine.Match) { n = uint32(m.PointCount()) })
	return n
}

// Points copies the recorded points into buf, oldest first. Reports false
// for an absent handle, a nil buf or a buf shorter than PointCount.
func (t *Table) Points(h Handle, buf []Point) bool {
	if buf == nil {
		return false
	}
	var ok bool
	t.with(h, func(m *engine.Match) {
		events := m.Events()
		if len(buf) < len(events) {
			return
		}
		for i, ev := range events {
			buf[i] = Point{Player: uint8(ev.Player), Timestamp: ev.EpochSeconds()}
		}
		ok = true
	})
	return ok
}
