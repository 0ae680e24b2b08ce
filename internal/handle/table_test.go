package handle

import (
	"sync"
	"testing"
	"time"

	"github.com/roach88/tennis/internal/engine"
	"github.com/roach88/tennis/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable() *Table {
	return NewTable(
		WithLogger(testutil.DiscardLogger()),
		WithMatchOptions(func() []engine.Option {
			return testutil.MatchOptions("handle-test")
		}),
	)
}

func scoreN(t *testing.T, tbl *Table, h Handle, player uint8, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.True(t, tbl.ScorePoint(h, player), "point %d", i+1)
	}
}

func TestTable_Constructors(t *testing.T) {
	tbl := newTestTable()
	handles := []Handle{
		tbl.NewDefault(),
		tbl.NewBestOfFive(),
		tbl.NewNoAd(),
		tbl.NewCustom(1, 10, false, true),
	}
	seen := map[Handle]bool{}
	for _, h := range handles {
		require.NotZero(t, h)
		assert.False(t, seen[h], "handle reused")
		seen[h] = true
		assert.Equal(t, Score{}, tbl.GetScore(h))
		assert.False(t, tbl.CanUndo(h))
	}
	assert.Equal(t, 4, tbl.Len())

	m, ok := tbl.Match(handles[1])
	require.True(t, ok)
	assert.Equal(t, uint8(3), m.Rules().SetsToWin)
}

func TestTable_NewCustomRejectsZeroCounts(t *testing.T) {
	tbl := newTestTable()
	assert.Zero(t, tbl.NewCustom(0, 7, true, false))
	assert.Zero(t, tbl.NewCustom(2, 0, true, false))
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_AbsentHandle(t *testing.T) {
	tbl := newTestTable()
	freed := tbl.NewDefault()
	tbl.Free(freed)

	for _, h := range []Handle{0, freed, 999} {
		assert.False(t, tbl.ScorePoint(h, Player1))
		assert.False(t, tbl.Undo(h))
		assert.Equal(t, Score{}, tbl.GetScore(h))
		assert.False(t, tbl.CanUndo(h))
		assert.False(t, tbl.IsComplete(h))
		assert.Equal(t, PlayerNone, tbl.GetWinner(h))
		assert.Zero(t, tbl.PointCount(h))
		assert.False(t, tbl.Points(h, make([]Point, 4)))
		_, ok := tbl.Match(h)
		assert.False(t, ok)
	}

	assert.NotPanics(t, func() {
		tbl.Free(0)
		tbl.Free(freed)
		tbl.Free(12345)
	})
}

func TestTable_ScoreCodes(t *testing.T) {
	tbl := newTestTable()
	h := tbl.NewDefault()

	assert.False(t, tbl.ScorePoint(h, 0))
	assert.False(t, tbl.ScorePoint(h, 3))
	assert.Zero(t, tbl.PointCount(h))

	scoreN(t, tbl, h, Player1, 3)
	scoreN(t, tbl, h, Player2, 3)
	s := tbl.GetScore(h)
	assert.Equal(t, GameStateDeuce, s.GameState)
	assert.Equal(t, uint8(1), s.DeuceCount)
	assert.Equal(t, uint8(40), s.Player1Points)

	scoreN(t, tbl, h, Player2, 1)
	assert.Equal(t, GameStateAdvantagePlayer2, tbl.GetScore(h).GameState)
}

func TestTable_MatchLifecycle(t *testing.T) {
	tbl := newTestTable()
	h := tbl.NewDefault()

	assert.False(t, tbl.Undo(h), "fresh match has nothing to undo")

	scoreN(t, tbl, h, Player1, 48)
	require.True(t, tbl.IsComplete(h))
	assert.Equal(t, Player1, tbl.GetWinner(h))

	final := tbl.GetScore(h)
	assert.Equal(t, Score{Player1Sets: 2, GameState: GameStateCompleted, Winner: Player1}, final)
	assert.False(t, tbl.ScorePoint(h, Player2))
	assert.Equal(t, final, tbl.GetScore(h))

	require.True(t, tbl.Undo(h))
	assert.False(t, tbl.IsComplete(h))
	assert.Equal(t, PlayerNone, tbl.GetWinner(h))
	assert.Equal(t, uint8(40), tbl.GetScore(h).Player1Points)
	assert.True(t, tbl.CanUndo(h))
}

func TestTable_Points(t *testing.T) {
	tbl := newTestTable()
	h := tbl.NewDefault()

	scoreN(t, tbl, h, Player1, 2)
	scoreN(t, tbl, h, Player2, 1)
	require.True(t, tbl.Undo(h))
	require.Equal(t, uint32(2), tbl.PointCount(h))

	assert.False(t, tbl.Points(h, nil))
	assert.False(t, tbl.Points(h, make([]Point, 1)), "buffer too small")

	buf := make([]Point, 3)
	require.True(t, tbl.Points(h, buf))
	epoch := float64(testutil.Epoch.Unix())
	assert.Equal(t, Point{Player: Player1, Timestamp: epoch}, buf[0])
	assert.Equal(t, Point{Player: Player1, Timestamp: epoch + time.Second.Seconds()}, buf[1])
	assert.Equal(t, Point{}, buf[2], "entries past the count are untouched")
}

func TestTable_SequencePerMatch(t *testing.T) {
	for name, tbl := range map[string]*Table{
		"factory": newTestTable(),
		"default": NewTable(WithLogger(testutil.DiscardLogger())),
	} {
		t.Run(name, func(t *testing.T) {
			a := tbl.NewDefault()
			b := tbl.NewDefault()

			scoreN(t, tbl, a, Player1, 2)
			scoreN(t, tbl, b, Player2, 1)

			ma, ok := tbl.Match(a)
			require.True(t, ok)
			mb, ok := tbl.Match(b)
			require.True(t, ok)

			assert.Equal(t, int64(1), ma.Events()[0].Seq)
			assert.Equal(t, int64(2), ma.Events()[1].Seq)
			assert.Equal(t, int64(1), mb.Events()[0].Seq)
		})
	}
}

func TestTable_PointsEmptyMatch(t *testing.T) {
	tbl := newTestTable()
	h := tbl.NewDefault()
	assert.True(t, tbl.Points(h, []Point{}))
}

func TestTable_ConcurrentMatches(t *testing.T) {
	tbl := newTestTable()
	const n = 16

	var wg sync.WaitGroup
	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := tbl.NewNoAd()
			handles[i] = h
			for j := 0; j < 24; j++ {
				tbl.ScorePoint(h, Player2)
			}
		}(i)
	}
	wg.Wait()

	for _, h := range handles {
		s := tbl.GetScore(h)
		assert.Equal(t, uint8(1), s.Player2Sets)
		assert.Equal(t, uint32(24), tbl.PointCount(h))
	}
	assert.Equal(t, n, tbl.Len())
}

func TestDefaultTable(t *testing.T) {
	h := NewBestOfFive()
	defer Free(h)

	require.True(t, ScorePoint(h, Player2))
	assert.Equal(t, uint8(15), GetScore(h).Player2Points)
	assert.True(t, CanUndo(h))
	assert.False(t, IsComplete(h))
	assert.Equal(t, PlayerNone, GetWinner(h))
	assert.Equal(t, uint32(1), PointCount(h))

	buf := make([]Point, 1)
	require.True(t, Points(h, buf))
	assert.Equal(t, Player2, buf[0].Player)
	assert.Greater(t, buf[0].Timestamp, 0.0)

	require.True(t, Undo(h))
	assert.False(t, Undo(h))

	assert.Zero(t, NewCustom(0, 0, false, false))
	noAd := NewNoAd()
	assert.NotZero(t, noAd)
	Free(noAd)
	assert.Equal(t, Score{}, GetScore(noAd))
	assert.Same(t, defaultTable, Default())

	other := NewDefault()
	assert.NotEqual(t, h, other)
	Free(other)
}
