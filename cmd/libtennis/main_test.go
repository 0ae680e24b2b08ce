//go:build cgo

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExports_Lifecycle(t *testing.T) {
	h := tennis_match_new_default()
	defer tennis_match_free(h)

	require.NotZero(t, uint64(h))
	assert.False(t, bool(tennis_match_can_undo(h)))

	for i := 0; i < 4; i++ {
		require.True(t, bool(tennis_match_score_point(h, 1)))
	}
	s := tennis_match_get_score(h)
	assert.Equal(t, uint8(1), uint8(s.player1_games))
	assert.Equal(t, uint8(0), uint8(s.game_state))
	assert.Equal(t, uint32(4), uint32(tennis_match_get_point_count(h)))

	assert.False(t, bool(tennis_match_score_point(h, 3)))
	require.True(t, bool(tennis_match_undo(h)))
	assert.Equal(t, uint8(40), uint8(tennis_match_get_score(h).player1_points))
	assert.False(t, bool(tennis_match_is_complete(h)))
	assert.Equal(t, uint8(0), uint8(tennis_match_get_winner(h)))
}

func TestExports_AbsentHandle(t *testing.T) {
	assert.False(t, bool(tennis_match_score_point(0, 1)))
	assert.False(t, bool(tennis_match_undo(0)))
	assert.Equal(t, uint8(0), uint8(tennis_match_get_score(0).player1_sets))
	assert.False(t, bool(tennis_match_get_points(0, nil, 0)))
	assert.NotPanics(t, func() { tennis_match_free(0) })

	assert.Zero(t, uint64(tennis_match_new_custom(0, 7, true, false)))
}
