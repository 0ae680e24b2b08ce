package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Match is one tennis match: its rules, live score, undo history and point
// log. The zero value is not usable; construct with New or a preset.
type Match struct {
	id    string
	rules Rules
	state State

	// sets holds the scores of completed sets, oldest first.
	sets []SetScore

	serve serveState

	// history is the undo stack; one snapshot per accepted point.
	history []snapshot
	events  []PointEvent

	clock  Sequencer
	now    NowFunc
	logger *slog.Logger
}

// snapshot is everything ScorePoint may change, captured before the point.
type snapshot struct {
	state State
	sets  int
	serve serveState
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSequencer sets the point sequence source. Default: a fresh Clock.
func WithSequencer(s Sequencer) Option {
	return func(m *Match) {
		if s != nil {
			m.clock = s
		}
	}
}

// WithNow sets the wall clock used for point timestamps. Default: time.Now.
func WithNow(now NowFunc) Option {
	return func(m *Match) {
		if now != nil {
			m.now = now
		}
	}
}

// WithID sets the match id instead of generating one.
func WithID(id string) Option {
	return func(m *Match) {
		m.id = id
	}
}

// WithIDGenerator generates the match id from gen. Ignored when WithID is
// also given.
func WithIDGenerator(gen IDGenerator) Option {
	return func(m *Match) {
		if m.id == "" && gen != nil {
			m.id = gen.Generate()
		}
	}
}

// New creates a match at 0-0 under rules.
//
// Rules are not validated: zero SetsToWin or TiebreakPoints produce
// meaningless but non-panicking scoring. Call Rules.Validate first when the
// rules come from outside the program.
func New(rules Rules, opts ...Option) *Match {
	rules.ServeOrder = slices.Clone(rules.ServeOrder)
	m := &Match{
		rules: rules,
		clock: NewClock(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.id == "" {
		m.id = UUIDv7Generator{}.Generate()
	}
	return m
}

// NewDefault creates a best-of-3 Ad-scoring match with tiebreaks.
func NewDefault(opts ...Option) *Match {
	return New(DefaultRules(), opts...)
}

// NewBestOfFive creates a best-of-5 match.
func NewBestOfFive(opts ...Option) *Match {
	return New(BestOfFiveRules(), opts...)
}

// NewNoAd creates a best-of-3 No-Ad match.
func NewNoAd(opts ...Option) *Match {
	return New(NoAdRules(), opts...)
}

// NewCustom creates a match from explicit rule values.
func NewCustom(setsToWin, tiebreakPoints uint8, finalSetTiebreak, noAdScoring bool, opts ...Option) *Match {
	return New(CustomRules(setsToWin, tiebreakPoints, finalSetTiebreak, noAdScoring), opts...)
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Rules returns the rules the match runs under.
func (m *Match) Rules() Rules {
	r := m.rules
	r.ServeOrder = slices.Clone(r.ServeOrder)
	return r
}

// ScorePoint awards a point to p.
//
// Returns ErrInvalidPlayer for an unknown player and ErrMatchComplete once
// the match has a winner. In both cases nothing changes.
func (m *Match) ScorePoint(p Player) error {
	if err := m.accepts(p); err != nil {
		return err
	}
	m.record(PointEvent{Seq: m.clock.Next(), Player: p, Timestamp: m.now()})
	return nil
}

func (m *Match) accepts(p Player) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, uint8(p))
	}
	if m.state.Winner != None {
		return ErrMatchComplete
	}
	return nil
}

// record applies an accepted point and appends ev to the log.
func (m *Match) record(ev PointEvent) {
	p := ev.Player
	m.history = append(m.history, snapshot{state: m.state, sets: len(m.sets), serve: m.serve})
	m.events = append(m.events, ev)

	wasTiebreak := m.state.IsTiebreak
	r := m.advance(p)
	if n := len(m.rules.ServeOrder); n > 0 {
		m.serve = m.serve.next(n, wasTiebreak, m.state.IsTiebreak, r)
	}

	m.logger.Debug("point scored",
		"match", m.id,
		"player", p.String(),
		"seq", ev.Seq,
		"score", m.state.String(),
	)
	switch r {
	case rollupGame:
		m.logger.Info("game won", "match", m.id, "player", p.String(),
			"games", fmt.Sprintf("%d-%d", m.state.Player1Games, m.state.Player2Games))
	case rollupSet:
		m.logger.Info("set won", "match", m.id, "player", p.String(),
			"set", m.sets[len(m.sets)-1].String())
	case rollupMatch:
		m.logger.Info("match won", "match", m.id, "player", p.String(),
			"sets", fmt.Sprintf("%d-%d", m.state.Player1Sets, m.state.Player2Sets))
	}
}

// Undo reverts the most recent ScorePoint, including any game, set or
// match rollup it caused. Returns ErrNothingToUndo when there is no history.
func (m *Match) Undo() error {
	n := len(m.history)
	if n == 0 {
		return ErrNothingToUndo
	}

	snap := m.history[n-1]
	m.history = m.history[:n-1]
	m.state = snap.state
	m.sets = m.sets[:snap.sets]
	m.serve = snap.serve
	m.events = m.events[:len(m.events)-1]

	m.logger.Info("point undone", "match", m.id, "score", m.state.String())
	return nil
}

// CanUndo reports whether there is a point to undo.
func (m *Match) CanUndo() bool {
	return len(m.history) > 0
}

// HistoryLen is the number of points that can be undone.
func (m *Match) HistoryLen() int {
	return len(m.history)
}

// IsComplete reports whether the match has a winner.
func (m *Match) IsComplete() bool {
	return m.state.Winner != None
}

// Winner returns the match winner, or None.
func (m *Match) Winner() Player {
	return m.state.Winner
}

// Score returns a copy of the live state.
func (m *Match) Score() State {
	return m.state
}

// Sets returns the scores of completed sets, oldest first.
func (m *Match) Sets() []SetScore {
	out := make([]SetScore, len(m.sets))
	copy(out, m.sets)
	return out
}

// Events returns the accepted points still on the history stack.
func (m *Match) Events() []PointEvent {
	out := make([]PointEvent, len(m.events))
	copy(out, m.events)
	return out
}

// PointCount is the number of accepted points still on the history stack.
func (m *Match) PointCount() int {
	return len(m.events)
}
