package engine

import "time"

// PointEvent records one accepted point.
type PointEvent struct {
	// Seq orders events within a match. It never repeats, even across undo.
	Seq int64 `json:"seq"`

	// Player is the scorer.
	Player Player `json:"player"`

	// Timestamp is the wall-clock time the point was entered.
	Timestamp time.Time `json:"timestamp"`
}

// Players extracts the scorer sequence from events, in order.
func Players(events []PointEvent) []Player {
	players := make([]Player, len(events))
	for i, ev := range events {
		players[i] = ev.Player
	}
	return players
}

// EpochSeconds returns the event time as fractional seconds since the Unix
// epoch, or 0 for times before it.
func (e PointEvent) EpochSeconds() float64 {
	if e.Timestamp.Before(time.Unix(0, 0)) {
		return 0
	}
	return float64(e.Timestamp.UnixNano()) / float64(time.Second)
}
