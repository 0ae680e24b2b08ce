package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tennis/internal/engine"
	"github.com/roach88/tennis/internal/testutil"
)

// resultAfter builds a result for a default-rules match after points.
func resultAfter(t *testing.T, points ...engine.Player) *Result {
	t.Helper()
	m := engine.NewDefault(testutil.MatchOptions("assert-test")...)
	result := NewResult()
	result.Rules = m.Rules()
	result.match = m
	for i, p := range points {
		require.NoError(t, m.ScorePoint(p))
		result.AddTrace(int64(i+1), ActionScore, p, true, m.Score())
	}
	result.Final = m.Score()
	result.Sets = m.Sets()
	return result
}

func boolPtr(b bool) *bool { return &b }

func TestAssertFinalScore(t *testing.T) {
	result := resultAfter(t, engine.Player1, engine.Player1)

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertFinalScore, Expect: map[string]any{"player1_points": 30, "game_state": "playing"}},
	})
	assert.Empty(t, errs)

	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertFinalScore, Expect: map[string]any{"player1_points": 40}},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Assertion failed: final_score")
	assert.Contains(t, errs[0], "Expected: player1_points=40")
	assert.Contains(t, errs[0], `field "player1_points" = 30, expected 40`)
	assert.Contains(t, errs[0], "[2] score player1 ok")
}

func TestAssertFinalScore_MissingField(t *testing.T) {
	result := resultAfter(t)
	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertFinalScore, Expect: map[string]any{"serve": "player1"}},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `field "serve" not present`)
}

func TestAssertCanUndo(t *testing.T) {
	fresh := resultAfter(t)
	assert.Empty(t, EvaluateAssertions(fresh, []Assertion{{Type: AssertCanUndo, Value: boolPtr(false)}}))

	errs := EvaluateAssertions(fresh, []Assertion{{Type: AssertCanUndo, Value: boolPtr(true)}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Actual: can_undo = false")

	errs = EvaluateAssertions(fresh, []Assertion{{Type: AssertCanUndo}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires value")
}

func TestAssertPointCount(t *testing.T) {
	result := resultAfter(t, engine.Player2, engine.Player1, engine.Player2)
	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertPointCount, Count: 3}}))

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertPointCount, Count: 2}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: 2 points")
	assert.Contains(t, errs[0], "Actual: 3 points")
}

func TestAssertSetScores(t *testing.T) {
	points := make([]engine.Player, 24)
	for i := range points {
		points[i] = engine.Player2
	}
	result := resultAfter(t, points...)

	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertSetScores, Sets: []string{"0-6"}}}))

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertSetScores}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: []")
	assert.Contains(t, errs[0], "Actual: [0-6]")
}

func TestAssertTraceCount(t *testing.T) {
	result := resultAfter(t, engine.Player1)
	result.AddTrace(2, ActionUndo, engine.None, false, result.Final)

	assert.Empty(t, EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Action: ActionScore, Count: 1},
		{Type: AssertTraceCount, Action: ActionUndo, Count: 0},
	}))

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertTraceCount, Action: ActionUndo, Count: 1}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "[2] undo rejected")
}

func TestAssertReplayConsistent(t *testing.T) {
	result := resultAfter(t, engine.Player1, engine.Player2, engine.Player2)
	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertReplayConsistent}}))
}

func TestAssertCurrentServer(t *testing.T) {
	rules := engine.DefaultRules()
	rules.MatchType = engine.Doubles
	rules.ServeOrder = engine.DoublesServeOrder()
	m := engine.New(rules, testutil.MatchOptions("serve-test")...)
	for i := 0; i < 8; i++ {
		require.NoError(t, m.ScorePoint(engine.Player2))
	}
	result := NewResult()
	result.match = m

	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertCurrentServer, Count: 2}}))

	errs := EvaluateAssertions(result, []Assertion{{Type: AssertCurrentServer, Count: 0}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server position 2")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	result := resultAfter(t)
	errs := EvaluateAssertions(result, []Assertion{{Type: "serve_speed"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown assertion type "serve_speed"`)
}

func TestEvaluateAssertions_NoMatch(t *testing.T) {
	result := NewResult()
	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertPointCount},
		{Type: AssertSetScores, Sets: []string{}},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "point_count requires a match")
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(40, 40))
	assert.True(t, valuesEqual(40, int64(40)))
	assert.True(t, valuesEqual(uint8(7), 7))
	assert.False(t, valuesEqual(40, "40"))
	assert.True(t, valuesEqual("deuce", "deuce"))
	assert.True(t, valuesEqual(false, false))
	assert.False(t, valuesEqual(true, false))
}
