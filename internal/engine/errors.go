package engine

import "errors"

// Caller-input errors. Rejected calls leave the match unchanged.
var (
	// ErrInvalidPlayer is returned for any identifier other than Player1
	// or Player2.
	ErrInvalidPlayer = errors.New("invalid player")

	// ErrMatchComplete is returned when scoring a match that has a winner.
	ErrMatchComplete = errors.New("match already complete")

	// ErrNothingToUndo is returned by Undo when the history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrReplayDiverged is returned by VerifyReplay when rebuilding a match
	// from its point log does not reproduce its score.
	ErrReplayDiverged = errors.New("replay diverged")

	// ErrEventOrder is returned by Restore when event seqs are not strictly
	// increasing.
	ErrEventOrder = errors.New("events out of order")
)

// IsRejected reports whether err is one of the errors a well-formed call
// can legitimately produce given the match state or caller input.
func IsRejected(err error) bool {
	return errors.Is(err, ErrInvalidPlayer) ||
		errors.Is(err, ErrMatchComplete) ||
		errors.Is(err, ErrNothingToUndo)
}
