package engine

import (
	"fmt"
	"math"

	"github.com/roach88/tennis/internal/canonical"
)

// State is the live, flat projection of a match.
//
// Outside a tiebreak the point fields hold ladder values 0, 15, 30 or 40;
// Deuce and Advantage both report 40-40 and carry the detail in GameState.
// During a tiebreak they hold raw point counts.
//
// Counters are uint8 to match the C boundary. DeuceCount saturates at 255.
// Games in an advantage final set and points in a tiebreak are assumed to
// stay below 256; no recorded match has come near that.
type State struct {
	Player1Sets   uint8
	Player2Sets   uint8
	Player1Games  uint8
	Player2Games  uint8
	Player1Points uint8
	Player2Points uint8
	GameState     GameState
	IsTiebreak    bool
	Winner        Player
	DeuceCount    uint8
}

func (s *State) sets(p Player) *uint8 {
	if p == Player1 {
		return &s.Player1Sets
	}
	return &s.Player2Sets
}

func (s *State) games(p Player) *uint8 {
	if p == Player1 {
		return &s.Player1Games
	}
	return &s.Player2Games
}

func (s *State) points(p Player) *uint8 {
	if p == Player1 {
		return &s.Player1Points
	}
	return &s.Player2Points
}

// addDeuce counts a return to deuce, saturating at the uint8 limit.
func (s *State) addDeuce() {
	if s.DeuceCount < math.MaxUint8 {
		s.DeuceCount++
	}
}

// resetGame clears everything scoped to the current game.
func (s *State) resetGame() {
	s.Player1Points = 0
	s.Player2Points = 0
	s.GameState = Playing
	s.IsTiebreak = false
	s.DeuceCount = 0
}

// Fields projects the state onto canonical field names. Enumerations are
// rendered as their String forms.
func (s State) Fields() map[string]any {
	return map[string]any{
		"player1_sets":   int(s.Player1Sets),
		"player2_sets":   int(s.Player2Sets),
		"player1_games":  int(s.Player1Games),
		"player2_games":  int(s.Player2Games),
		"player1_points": int(s.Player1Points),
		"player2_points": int(s.Player2Points),
		"game_state":     s.GameState.String(),
		"is_tiebreak":    s.IsTiebreak,
		"winner":         s.Winner.String(),
		"deuce_count":    int(s.DeuceCount),
	}
}

// CanonicalValue implements canonical.Valuer.
func (s State) CanonicalValue() any {
	return s.Fields()
}

// Fingerprint is a content hash of the projected state.
func (s State) Fingerprint() string {
	return canonical.MustFingerprint(canonical.DomainScore, s)
}

// PointsDisplay renders the current game the way an umpire would call it.
func (s State) PointsDisplay() string {
	switch s.GameState {
	case Completed:
		return "-"
	case Deuce:
		return "deuce"
	case AdvantagePlayer1:
		return "advantage player1"
	case AdvantagePlayer2:
		return "advantage player2"
	}
	return fmt.Sprintf("%d-%d", s.Player1Points, s.Player2Points)
}

func (s State) String() string {
	if s.Winner != None {
		return fmt.Sprintf("sets %d-%d, %s wins", s.Player1Sets, s.Player2Sets, s.Winner)
	}
	tb := ""
	if s.IsTiebreak {
		tb = " (tiebreak)"
	}
	return fmt.Sprintf("sets %d-%d, games %d-%d, points %s%s",
		s.Player1Sets, s.Player2Sets, s.Player1Games, s.Player2Games, s.PointsDisplay(), tb)
}

// SetScore records the final games of a completed set.
type SetScore struct {
	Player1Games uint8  `json:"player1_games"`
	Player2Games uint8  `json:"player2_games"`
	Tiebreak     bool   `json:"tiebreak"`
	Winner       Player `json:"winner"`
}

func (s SetScore) String() string {
	return fmt.Sprintf("%d-%d", s.Player1Games, s.Player2Games)
}

// CanonicalValue implements canonical.Valuer.
func (s SetScore) CanonicalValue() any {
	return map[string]any{
		"player1_games": int(s.Player1Games),
		"player2_games": int(s.Player2Games),
		"tiebreak":      s.Tiebreak,
		"winner":        s.Winner.String(),
	}
}
