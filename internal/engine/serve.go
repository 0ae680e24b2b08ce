package engine

import "fmt"

// MatchType is singles or doubles. It only affects who serves.
type MatchType uint8

const (
	Singles MatchType = iota
	Doubles
)

func (t MatchType) String() string {
	switch t {
	case Singles:
		return "singles"
	case Doubles:
		return "doubles"
	default:
		return fmt.Sprintf("match_type(%d)", uint8(t))
	}
}

// MarshalText renders the type as "singles" or "doubles".
func (t MatchType) MarshalText() ([]byte, error) {
	switch t {
	case Singles, Doubles:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("unknown match type %d", uint8(t))
	}
}

// UnmarshalText accepts "singles" or "doubles".
func (t *MatchType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "singles":
		*t = Singles
	case "doubles":
		*t = Doubles
	default:
		return fmt.Errorf("unknown match type %q (want singles|doubles)", b)
	}
	return nil
}

// ServeSlot is one position in the serve rotation: a team and the member of
// that team who serves. Member is always 0 in singles.
type ServeSlot struct {
	Team   Player `yaml:"team" json:"team"`
	Member uint8  `yaml:"member" json:"member"`
}

// slotsFor is the rotation length a match type requires.
func slotsFor(t MatchType) int {
	if t == Doubles {
		return 4
	}
	return 2
}

// DoublesServeOrder is the usual doubles rotation: team 1 first player,
// team 2 first player, then their partners.
func DoublesServeOrder() []ServeSlot {
	return []ServeSlot{
		{Team: Player1, Member: 0},
		{Team: Player2, Member: 0},
		{Team: Player1, Member: 1},
		{Team: Player2, Member: 1},
	}
}

// serveState tracks the position in Rules.ServeOrder.
//
// rotation is the server of the current regular game. During a tiebreak,
// tiebreakFirst is the position that served its first point and
// tiebreakPoints counts the points played so far.
type serveState struct {
	rotation       int
	tiebreakFirst  int
	tiebreakPoints int
}

// tiebreakOffset is how far the rotation has moved after n tiebreak
// points: one server for the first point, then two points each.
func tiebreakOffset(n int) int {
	if n == 0 {
		return 0
	}
	return (n + 1) / 2
}

// server is the rotation position due to serve the next point.
func (s serveState) server(n int, tiebreak bool) int {
	if tiebreak {
		return (s.tiebreakFirst + tiebreakOffset(s.tiebreakPoints)) % n
	}
	return s.rotation
}

// next moves the rotation on after a point. wasTiebreak and isTiebreak are
// the tiebreak flags before and after the point.
func (s serveState) next(n int, wasTiebreak, isTiebreak bool, r rollup) serveState {
	switch {
	case !wasTiebreak && isTiebreak:
		first := (s.rotation + 1) % n
		return serveState{rotation: first, tiebreakFirst: first}
	case wasTiebreak && isTiebreak:
		s.tiebreakPoints++
		return s
	case wasTiebreak:
		last := (s.tiebreakFirst + tiebreakOffset(s.tiebreakPoints)) % n
		return serveState{rotation: (last + 1) % n}
	case r != rollupNone:
		return serveState{rotation: (s.rotation + 1) % n}
	default:
		return s
	}
}

// CurrentServer returns the position in Rules.ServeOrder of the player due
// to serve the next point. It is 0 when no serve order is configured or the
// match is complete.
func (m *Match) CurrentServer() uint8 {
	n := len(m.rules.ServeOrder)
	if n == 0 || m.state.Winner != None {
		return 0
	}
	return uint8(m.serve.server(n, m.state.IsTiebreak))
}

// Server returns the slot due to serve the next point. ok is false when no
// serve order is configured or the match is complete.
func (m *Match) Server() (slot ServeSlot, ok bool) {
	if len(m.rules.ServeOrder) == 0 || m.state.Winner != None {
		return ServeSlot{}, false
	}
	return m.rules.ServeOrder[m.CurrentServer()], true
}
