package engine

import (
	"fmt"

	"github.com/roach88/tennis/internal/canonical"
)

// Replay rebuilds a match under rules by scoring points in order.
//
// Replay and live scoring share one code path (ScorePoint), so a point log
// recorded from a match always replays to the same score. A rejected point
// aborts the replay with its position.
func Replay(rules Rules, points []Player, opts ...Option) (*Match, error) {
	m := New(rules, opts...)
	for i, p := range points {
		if err := m.ScorePoint(p); err != nil {
			return nil, fmt.Errorf("replay point %d: %w", i+1, err)
		}
	}
	return m, nil
}

// Restore rebuilds a match from a recorded point log, keeping each event's
// seq and timestamp. Seqs must be strictly increasing and positive; gaps
// left by undo are allowed. The restored match numbers new points after the
// last recorded seq, replacing any WithSequencer option.
func Restore(rules Rules, events []PointEvent, opts ...Option) (*Match, error) {
	m := New(rules, opts...)
	var last int64
	for i, ev := range events {
		if ev.Seq <= last {
			return nil, fmt.Errorf("restore point %d: %w: seq %d after %d",
				i+1, ErrEventOrder, ev.Seq, last)
		}
		if err := m.accepts(ev.Player); err != nil {
			return nil, fmt.Errorf("restore point %d: %w", i+1, err)
		}
		m.record(ev)
		last = ev.Seq
	}
	m.clock = NewClockAt(last)
	return m, nil
}

// Fingerprint hashes the rules, live score and completed sets of m.
// Two matches with equal fingerprints report identical scores.
func (m *Match) Fingerprint() (string, error) {
	sets := make([]any, len(m.sets))
	for i, s := range m.sets {
		sets[i] = s
	}
	return canonical.Fingerprint(canonical.DomainMatch, map[string]any{
		"rules": m.rules,
		"score": m.state,
		"sets":  sets,
	})
}

// VerifyReplay restores m from its point log and checks that the rebuilt
// match has the same fingerprint and serve position. Returns
// ErrReplayDiverged on mismatch.
func VerifyReplay(m *Match, opts ...Option) error {
	want, err := m.Fingerprint()
	if err != nil {
		return err
	}

	opts = append([]Option{WithID(m.id), WithLogger(m.logger)}, opts...)
	rebuilt, err := Restore(m.rules, m.events, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReplayDiverged, err)
	}
	if rebuilt.serve != m.serve {
		return fmt.Errorf("%w: live server %d, rebuilt server %d", ErrReplayDiverged,
			m.CurrentServer(), rebuilt.CurrentServer())
	}

	got, err := rebuilt.Fingerprint()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: live %s, rebuilt %s (%s)", ErrReplayDiverged,
			m.state, rebuilt.state, got[:12])
	}
	return nil
}
