package engine

import (
	"fmt"
	"strings"
)

// Player identifies one side of a match. The zero value is None.
type Player uint8

const (
	None    Player = 0
	Player1 Player = 1
	Player2 Player = 2
)

// Valid reports whether p is Player1 or Player2.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other player, or None for an invalid player.
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return None
	}
}

func (p Player) String() string {
	switch p {
	case None:
		return "none"
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return fmt.Sprintf("player(%d)", uint8(p))
	}
}

// ParsePlayer accepts "1", "p1", "player1" and the Player2 equivalents,
// case-insensitively.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "p1", "player1":
		return Player1, nil
	case "2", "p2", "player2":
		return Player2, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
}

// GameState tags the current game. Completed refers to the match, not to
// a single game: a won game immediately resets to Playing.
type GameState uint8

const (
	Playing          GameState = 0
	Deuce            GameState = 1
	AdvantagePlayer1 GameState = 2
	AdvantagePlayer2 GameState = 3
	Completed        GameState = 4
)

func (g GameState) String() string {
	switch g {
	case Playing:
		return "playing"
	case Deuce:
		return "deuce"
	case AdvantagePlayer1:
		return "advantage_player1"
	case AdvantagePlayer2:
		return "advantage_player2"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("game_state(%d)", uint8(g))
	}
}

func advantageFor(p Player) GameState {
	if p == Player1 {
		return AdvantagePlayer1
	}
	return AdvantagePlayer2
}
