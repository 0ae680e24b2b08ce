// Command libtennis builds the C shared library for the scoring engine.
//
//	go build -buildmode=c-shared -o libtennis.so ./cmd/libtennis
//
// Every exported function takes the handle returned by a tennis_match_new_*
// call. A zero handle, or one already passed to tennis_match_free, is
// tolerated everywhere: mutations return false and queries return zero
// values.
package main

/*
#include <stdbool.h>
#include <stdint.h>

#define TENNIS_PLAYER_1 1
#define TENNIS_PLAYER_2 2

#define TENNIS_GAME_STATE_PLAYING 0
#define TENNIS_GAME_STATE_DEUCE 1
#define TENNIS_GAME_STATE_ADVANTAGE_P1 2
#define TENNIS_GAME_STATE_ADVANTAGE_P2 3
#define TENNIS_GAME_STATE_COMPLETED 4

typedef struct {
	uint8_t player1_sets;
	uint8_t player2_sets;
	uint8_t player1_games;
	uint8_t player2_games;
	uint8_t player1_points;
	uint8_t player2_points;
	uint8_t game_state;
	bool is_tiebreak;
	uint8_t winner;
	uint8_t deuce_count;
} MatchScore;

typedef struct {
	uint8_t player;
	double timestamp;
} PointEvent;
*/
import "C"

import (
	"unsafe"

	"github.com/roach88/tennis/internal/handle"
)

func toHandle(h C.uintptr_t) handle.Handle { return handle.Handle(h) }

func fromHandle(h handle.Handle) C.uintptr_t { return C.uintptr_t(h) }

//export tennis_match_new_default
func tennis_match_new_default() C.uintptr_t {
	return fromHandle(handle.NewDefault())
}

//export tennis_match_new_best_of_5
func tennis_match_new_best_of_5() C.uintptr_t {
	return fromHandle(handle.NewBestOfFive())
}

//export tennis_match_new_no_ad
func tennis_match_new_no_ad() C.uintptr_t {
	return fromHandle(handle.NewNoAd())
}

//export tennis_match_new_custom
func tennis_match_new_custom(setsToWin, tiebreakPoints C.uint8_t, finalSetTiebreak, noAdScoring C.bool) C.uintptr_t {
	return fromHandle(handle.NewCustom(uint8(setsToWin), uint8(tiebreakPoints), bool(finalSetTiebreak), bool(noAdScoring)))
}

//export tennis_match_free
func tennis_match_free(h C.uintptr_t) {
	handle.Free(toHandle(h))
}

//export tennis_match_score_point
func tennis_match_score_point(h C.uintptr_t, player C.uint8_t) C.bool {
	return C.bool(handle.ScorePoint(toHandle(h), uint8(player)))
}

//export tennis_match_undo
func tennis_match_undo(h C.uintptr_t) C.bool {
	return C.bool(handle.Undo(toHandle(h)))
}

//export tennis_match_get_score
func tennis_match_get_score(h C.uintptr_t) C.MatchScore {
	s := handle.GetScore(toHandle(h))
	return C.MatchScore{
		player1_sets:   C.uint8_t(s.Player1Sets),
		player2_sets:   C.uint8_t(s.Player2Sets),
		player1_games:  C.uint8_t(s.Player1Games),
		player2_games:  C.uint8_t(s.Player2Games),
		player1_points: C.uint8_t(s.Player1Points),
		player2_points: C.uint8_t(s.Player2Points),
		game_state:     C.uint8_t(s.GameState),
		is_tiebreak:    C.bool(s.IsTiebreak),
		winner:         C.uint8_t(s.Winner),
		deuce_count:    C.uint8_t(s.DeuceCount),
	}
}

//export tennis_match_can_undo
func tennis_match_can_undo(h C.uintptr_t) C.bool {
	return C.bool(handle.CanUndo(toHandle(h)))
}

//export tennis_match_is_complete
func tennis_match_is_complete(h C.uintptr_t) C.bool {
	return C.bool(handle.IsComplete(toHandle(h)))
}

//export tennis_match_get_winner
func tennis_match_get_winner(h C.uintptr_t) C.uint8_t {
	return C.uint8_t(handle.GetWinner(toHandle(h)))
}

//export tennis_match_get_point_count
func tennis_match_get_point_count(h C.uintptr_t) C.uint32_t {
	return C.uint32_t(handle.PointCount(toHandle(h)))
}

// tennis_match_get_points fills buffer with up to size events. It returns
// false for a NULL buffer or when size is smaller than the point count.
//
//export tennis_match_get_points
func tennis_match_get_points(h C.uintptr_t, buffer *C.PointEvent, size C.uint32_t) C.bool {
	if buffer == nil {
		return false
	}
	points := make([]handle.Point, int(size))
	if !handle.Points(toHandle(h), points) {
		return false
	}

	n := int(handle.PointCount(toHandle(h)))
	out := unsafe.Slice(buffer, int(size))
	for i := 0; i < n && i < len(out); i++ {
		out[i] = C.PointEvent{
			player:    C.uint8_t(points[i].Player),
			timestamp: C.double(points[i].Timestamp),
		}
	}
	return true
}

func main() {}
