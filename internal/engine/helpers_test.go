package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2026, 1, 18, 14, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testEpoch }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMatch(rules Rules, opts ...Option) *Match {
	base := []Option{WithID("test-match"), WithLogger(quietLogger()), WithNow(fixedNow)}
	return New(rules, append(base, opts...)...)
}

func scoreN(t *testing.T, m *Match, p Player, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, m.ScorePoint(p), "point %d for %s", i+1, p)
	}
}

// winGame wins a standard game for p from love-all.
func winGame(t *testing.T, m *Match, p Player) {
	t.Helper()
	scoreN(t, m, p, 4)
}

// winSet wins six straight games for p from 0-0 in games.
func winSet(t *testing.T, m *Match, p Player) {
	t.Helper()
	for i := 0; i < 6; i++ {
		winGame(t, m, p)
	}
}

// reachSixAll alternates games from 0-0 until the set stands at 6-6.
func reachSixAll(t *testing.T, m *Match) {
	t.Helper()
	for i := 0; i < 6; i++ {
		winGame(t, m, Player1)
		winGame(t, m, Player2)
	}
}

// reachDeuce plays 40-40 from love-all.
func reachDeuce(t *testing.T, m *Match) {
	t.Helper()
	for i := 0; i < 3; i++ {
		require.NoError(t, m.ScorePoint(Player1))
		require.NoError(t, m.ScorePoint(Player2))
	}
}
