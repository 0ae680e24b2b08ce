package handle

import "github.com/roach88/tennis/internal/engine"

// Player codes used at the boundary.
const (
	PlayerNone uint8 = uint8(engine.None)
	Player1    uint8 = uint8(engine.Player1)
	Player2    uint8 = uint8(engine.Player2)
)

// Game state codes used at the boundary.
const (
	GameStatePlaying          uint8 = uint8(engine.Playing)
	GameStateDeuce            uint8 = uint8(engine.Deuce)
	GameStateAdvantagePlayer1 uint8 = uint8(engine.AdvantagePlayer1)
	GameStateAdvantagePlayer2 uint8 = uint8(engine.AdvantagePlayer2)
	GameStateCompleted        uint8 = uint8(engine.Completed)
)

// Score is the flat snapshot returned by GetScore. The zero value is what
// an absent handle reports; it is indistinguishable from a fresh match.
type Score struct {
	Player1Sets   uint8
	Player2Sets   uint8
	Player1Games  uint8
	Player2Games  uint8
	Player1Points uint8
	Player2Points uint8
	GameState     uint8
	IsTiebreak    bool
	Winner        uint8
	DeuceCount    uint8
}

func scoreOf(s engine.State) Score {
	return Score{
		Player1Sets:   s.Player1Sets,
		Player2Sets:   s.Player2Sets,
		Player1Games:  s.Player1Games,
		Player2Games:  s.Player2Games,
		Player1Points: s.Player1Points,
		Player2Points: s.Player2Points,
		GameState:     uint8(s.GameState),
		IsTiebreak:    s.IsTiebreak,
		Winner:        uint8(s.Winner),
		DeuceCount:    s.DeuceCount,
	}
}

// Point is one recorded point: the scorer code and the time it was
// entered, in seconds since the Unix epoch.
type Point struct {
	Player    uint8
	Timestamp float64
}
