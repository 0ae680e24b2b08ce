package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tennis/internal/engine"
	"github.com/roach88/tennis/internal/harness"
)

// RulesOptions holds the rule flags shared by score and replay.
type RulesOptions struct {
	Preset           string
	SetsToWin        uint8
	TiebreakPoints   uint8
	FinalSetTiebreak bool
	NoAd             bool
	Doubles          bool
	RulesFile        string
}

func addRulesFlags(cmd *cobra.Command, opts *RulesOptions) {
	defaults := engine.DefaultRules()

	cmd.Flags().StringVar(&opts.Preset, "preset", engine.PresetDefault,
		fmt.Sprintf("rules preset (%s|%s|%s)", engine.PresetDefault, engine.PresetBestOfFive, engine.PresetNoAd))
	cmd.Flags().Uint8Var(&opts.SetsToWin, "sets-to-win", defaults.SetsToWin, "sets needed to win the match")
	cmd.Flags().Uint8Var(&opts.TiebreakPoints, "tiebreak-points", defaults.TiebreakPoints, "points needed to win a tiebreak")
	cmd.Flags().BoolVar(&opts.FinalSetTiebreak, "final-set-tiebreak", defaults.FinalSetTiebreak, "play a tiebreak at 6-6 in the deciding set")
	cmd.Flags().BoolVar(&opts.NoAd, "no-ad", defaults.NoAdScoring, "decide the game on the first point after 40-40")
	cmd.Flags().BoolVar(&opts.Doubles, "doubles", false, "doubles match with the standard four-player serve rotation")
	cmd.Flags().StringVar(&opts.RulesFile, "rules-file", "", "YAML rules file (preset plus overrides)")
}

// resolveRules starts from the rules file (or the preset flag) and applies
// any rule flag set explicitly on the command line.
func resolveRules(cmd *cobra.Command, opts *RulesOptions) (engine.Rules, error) {
	rs := harness.RulesConfig{Preset: opts.Preset}
	if opts.RulesFile != "" {
		loaded, err := loadRulesFile(opts.RulesFile)
		if err != nil {
			return engine.Rules{}, err
		}
		rs = loaded
		if cmd.Flags().Changed("preset") {
			rs.Preset = opts.Preset
		}
	}

	flags := cmd.Flags()
	if flags.Changed("sets-to-win") {
		rs.SetsToWin = &opts.SetsToWin
	}
	if flags.Changed("tiebreak-points") {
		rs.TiebreakPoints = &opts.TiebreakPoints
	}
	if flags.Changed("final-set-tiebreak") {
		rs.FinalSetTiebreak = &opts.FinalSetTiebreak
	}
	if flags.Changed("no-ad") {
		rs.NoAdScoring = &opts.NoAd
	}
	if opts.Doubles {
		doubles := engine.Doubles
		rs.MatchType = &doubles
		if len(rs.ServeOrder) == 0 {
			rs.ServeOrder = engine.DoublesServeOrder()
		}
	}

	rules, err := rs.Resolve()
	if err != nil {
		return engine.Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

// loadRulesFile parses a YAML rules file. Unknown fields are rejected.
func loadRulesFile(path string) (harness.RulesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return harness.RulesConfig{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rs harness.RulesConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rs); err != nil {
		return harness.RulesConfig{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return rs, nil
}
