package engine

import (
	"errors"
	"fmt"
)

// Rules configures a match. Rules are fixed for the lifetime of a Match.
type Rules struct {
	// SetsToWin is the number of sets needed to take the match
	// (2 for best-of-3, 3 for best-of-5).
	SetsToWin uint8 `yaml:"sets_to_win" json:"sets_to_win"`

	// TiebreakPoints is the target of a tiebreak game, usually 7 or 10.
	TiebreakPoints uint8 `yaml:"tiebreak_points" json:"tiebreak_points"`

	// FinalSetTiebreak plays a tiebreak at 6-6 in the deciding set. When
	// false the deciding set continues until one player leads by two games.
	FinalSetTiebreak bool `yaml:"final_set_tiebreak" json:"final_set_tiebreak"`

	// NoAdScoring makes the point played at 40-40 decisive.
	NoAdScoring bool `yaml:"no_ad_scoring" json:"no_ad_scoring"`

	// MatchType is singles or doubles.
	MatchType MatchType `yaml:"match_type,omitempty" json:"match_type,omitempty"`

	// ServeOrder is the serve rotation, first server first. Empty disables
	// serve tracking.
	ServeOrder []ServeSlot `yaml:"serve_order,omitempty" json:"serve_order,omitempty"`
}

// Preset names accepted by PresetRules.
const (
	PresetDefault    = "default"
	PresetBestOfFive = "best_of_5"
	PresetNoAd       = "no_ad"
)

// DefaultRules: best-of-3, 7-point tiebreak, final-set tiebreak, Ad scoring.
func DefaultRules() Rules {
	return Rules{
		SetsToWin:        2,
		TiebreakPoints:   7,
		FinalSetTiebreak: true,
		NoAdScoring:      false,
	}
}

// BestOfFiveRules is DefaultRules with three sets to win.
func BestOfFiveRules() Rules {
	r := DefaultRules()
	r.SetsToWin = 3
	return r
}

// NoAdRules is DefaultRules with No-Ad scoring.
func NoAdRules() Rules {
	r := DefaultRules()
	r.NoAdScoring = true
	return r
}

// CustomRules builds Rules from explicit values without validating them.
func CustomRules(setsToWin, tiebreakPoints uint8, finalSetTiebreak, noAdScoring bool) Rules {
	return Rules{
		SetsToWin:        setsToWin,
		TiebreakPoints:   tiebreakPoints,
		FinalSetTiebreak: finalSetTiebreak,
		NoAdScoring:      noAdScoring,
	}
}

// PresetRules returns the named preset. An empty name is the default.
func PresetRules(name string) (Rules, error) {
	switch name {
	case "", PresetDefault:
		return DefaultRules(), nil
	case PresetBestOfFive:
		return BestOfFiveRules(), nil
	case PresetNoAd:
		return NoAdRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown rules preset %q (want %s|%s|%s)",
			name, PresetDefault, PresetBestOfFive, PresetNoAd)
	}
}

// Validate rejects configurations whose scoring is undefined.
//
// New does not call Validate: a Match built from zero counts is the
// caller's responsibility. Configuration loaders should call it.
func (r Rules) Validate() error {
	if r.SetsToWin == 0 {
		return errors.New("sets_to_win must be positive")
	}
	if r.TiebreakPoints == 0 {
		return errors.New("tiebreak_points must be positive")
	}
	if r.MatchType != Singles && r.MatchType != Doubles {
		return fmt.Errorf("unknown match_type %d", uint8(r.MatchType))
	}
	if n := len(r.ServeOrder); n > 0 && n != slotsFor(r.MatchType) {
		return fmt.Errorf("serve_order for %s needs %d entries, got %d",
			r.MatchType, slotsFor(r.MatchType), n)
	}
	for i, slot := range r.ServeOrder {
		if !slot.Team.Valid() {
			return fmt.Errorf("serve_order[%d]: %w: %d", i, ErrInvalidPlayer, uint8(slot.Team))
		}
	}
	return nil
}

// BestOf returns the maximum number of sets the match can last.
func (r Rules) BestOf() int {
	return 2*int(r.SetsToWin) - 1
}

// CanonicalValue implements canonical.Valuer. Singles without a serve
// order hashes the same as rules that predate serve tracking.
func (r Rules) CanonicalValue() any {
	v := map[string]any{
		"sets_to_win":        r.SetsToWin,
		"tiebreak_points":    r.TiebreakPoints,
		"final_set_tiebreak": r.FinalSetTiebreak,
		"no_ad_scoring":      r.NoAdScoring,
	}
	if r.MatchType != Singles {
		v["match_type"] = r.MatchType.String()
	}
	if len(r.ServeOrder) > 0 {
		order := make([]any, len(r.ServeOrder))
		for i, slot := range r.ServeOrder {
			order[i] = map[string]any{"team": int(slot.Team), "member": int(slot.Member)}
		}
		v["serve_order"] = order
	}
	return v
}

func (r Rules) String() string {
	scoring := "ad"
	if r.NoAdScoring {
		scoring = "no-ad"
	}
	finalSet := "advantage final set"
	if r.FinalSetTiebreak {
		finalSet = "final-set tiebreak"
	}
	out := fmt.Sprintf("best of %d, %s scoring, %d-point tiebreak, %s",
		r.BestOf(), scoring, r.TiebreakPoints, finalSet)
	if r.MatchType == Doubles {
		out += ", doubles"
	}
	return out
}
