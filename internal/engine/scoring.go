package engine

// rollup reports the largest unit a point completed.
type rollup int

const (
	rollupNone rollup = iota
	rollupGame
	rollupSet
	rollupMatch
)

// nextPoint is the standard ladder. 40 has no successor; winning from 40
// is handled by the caller.
var nextPoint = map[uint8]uint8{0: 15, 15: 30, 30: 40}

// advance applies one point for scorer. Preconditions (valid scorer, no
// winner yet) are checked by ScorePoint.
func (m *Match) advance(scorer Player) rollup {
	s := &m.state

	if s.IsTiebreak {
		pts := s.points(scorer)
		*pts++
		opp := *s.points(scorer.Opponent())
		if *pts >= m.rules.TiebreakPoints && int(*pts) >= int(opp)+2 {
			return m.winGame(scorer, true)
		}
		return rollupNone
	}

	if advanceGame(s, scorer, m.rules.NoAdScoring) {
		return m.winGame(scorer, false)
	}
	return rollupNone
}

// advanceGame moves a standard (non-tiebreak) game on by one point and
// reports whether scorer has won it.
func advanceGame(s *State, scorer Player, noAd bool) bool {
	switch s.GameState {
	case Deuce:
		if noAd {
			return true
		}
		s.GameState = advantageFor(scorer)
		return false
	case AdvantagePlayer1, AdvantagePlayer2:
		if s.GameState == advantageFor(scorer) {
			return true
		}
		s.GameState = Deuce
		s.addDeuce()
		return false
	}

	pts := s.points(scorer)
	if *pts == 40 {
		return true
	}
	*pts = nextPoint[*pts]
	if *pts == 40 && *s.points(scorer.Opponent()) == 40 {
		s.GameState = Deuce
		s.addDeuce()
	}
	return false
}

// winGame credits scorer with a game and evaluates the set. A tiebreak
// game always decides the set.
func (m *Match) winGame(scorer Player, tiebreak bool) rollup {
	s := &m.state
	*s.games(scorer)++
	s.resetGame()

	g := int(*s.games(scorer))
	o := int(*s.games(scorer.Opponent()))
	if tiebreak || (g >= 6 && g >= o+2) {
		return m.winSet(scorer, tiebreak)
	}
	if g == 6 && o == 6 && (!m.decidingSet() || m.rules.FinalSetTiebreak) {
		s.IsTiebreak = true
	}
	return rollupGame
}

// winSet records the completed set, credits scorer and checks the match.
func (m *Match) winSet(scorer Player, tiebreak bool) rollup {
	s := &m.state
	m.sets = append(m.sets, SetScore{
		Player1Games: s.Player1Games,
		Player2Games: s.Player2Games,
		Tiebreak:     tiebreak,
		Winner:       scorer,
	})

	*s.sets(scorer)++
	s.Player1Games = 0
	s.Player2Games = 0

	if *s.sets(scorer) >= m.rules.SetsToWin {
		s.Winner = scorer
		s.GameState = Completed
		return rollupMatch
	}
	return rollupSet
}

// decidingSet reports whether the set in progress is the last possible one.
func (m *Match) decidingSet() bool {
	last := int(m.rules.SetsToWin) - 1
	return int(m.state.Player1Sets) == last && int(m.state.Player2Sets) == last
}
