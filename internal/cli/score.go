package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tennis/internal/engine"
)

// ScoreOptions holds flags for the score command.
type ScoreOptions struct {
	*RootOptions
	Rules  RulesOptions
	Strict bool // fail on rejected points
}

// ScoreStep is the outcome of one input token.
type ScoreStep struct {
	Input string         `json:"input"`
	OK    bool           `json:"ok"`
	Error string         `json:"error,omitempty"`
	Score map[string]any `json:"score"`
}

// ScoreResult is the payload of the score command.
type ScoreResult struct {
	MatchID  string            `json:"match_id"`
	Rules    engine.Rules      `json:"rules"`
	Steps    []ScoreStep       `json:"steps"`
	Final    map[string]any    `json:"final"`
	Sets     []engine.SetScore `json:"sets"`
	Winner   string            `json:"winner"`
	Points   int               `json:"points"`
	Rejected int               `json:"rejected"`

	// Server is the next server; omitted without a serve order.
	Server *engine.ServeSlot `json:"server,omitempty"`

	// Fingerprint covers rules, score and completed sets.
	// ScoreFingerprint covers the live score alone.
	Fingerprint      string `json:"fingerprint"`
	ScoreFingerprint string `json:"score_fingerprint"`
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "score [points...]",
		Short: "Score a match from a sequence of points",
		Long: `Score a match from a sequence of points and print the result.

Each argument is one step: 1 (or p1) for a point to player 1, 2 (or p2)
for a point to player 2, and u (or undo) to revert the last point.
Arguments may also be joined into one word, e.g. "1122u2".

Exit codes:
  0 - All steps accepted (or --strict not set)
  1 - A step was rejected and --strict is set
  2 - Command error (invalid rules, unknown step token)

Examples:
  tennis score 1 1 1 1
  tennis score 11112222u --preset no_ad
  tennis score 1212121 --format json
  tennis score --rules-file rules.yaml 2 2 2 2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(opts, args, cmd)
		},
	}

	addRulesFlags(cmd, &opts.Rules)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 if any step is rejected")

	return cmd
}

// undoToken marks an undo step in parseSteps output.
const undoToken = "u"

// parseSteps splits arguments into single-step tokens. Multi-character
// arguments made only of 1, 2 and u are split into characters.
func parseSteps(args []string) ([]string, error) {
	var steps []string
	for _, arg := range args {
		a := strings.ToLower(strings.TrimSpace(arg))
		switch {
		case a == "undo" || a == undoToken:
			steps = append(steps, undoToken)
		case strings.Trim(a, "12u") == "" && a != "":
			for _, r := range a {
				steps = append(steps, string(r))
			}
		default:
			if _, err := engine.ParsePlayer(a); err != nil {
				return nil, fmt.Errorf("unknown step %q (want 1, 2 or u)", arg)
			}
			steps = append(steps, a)
		}
	}
	return steps, nil
}

func runScore(opts *ScoreOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	rules, err := resolveRules(cmd, &opts.Rules)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidRules, err)
	}

	steps, err := parseSteps(args)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidInput, err)
	}

	m := engine.New(rules, engine.WithLogger(newLogger(opts.RootOptions, formatter.GetErrWriter())))
	formatter.VerboseLog("Match %s: %s", m.ID(), rules)

	result := ScoreResult{
		MatchID: m.ID(),
		Rules:   rules,
		Steps:   make([]ScoreStep, 0, len(steps)),
	}

	for _, tok := range steps {
		var stepErr error
		if tok == undoToken {
			stepErr = m.Undo()
		} else {
			p, err := engine.ParsePlayer(tok)
			if err == nil {
				err = m.ScorePoint(p)
			}
			stepErr = err
		}

		step := ScoreStep{Input: tok, OK: stepErr == nil, Score: m.Score().Fields()}
		if stepErr != nil {
			step.Error = stepErr.Error()
			result.Rejected++
			formatter.VerboseLog("%s: rejected (%v)", tok, stepErr)
		} else {
			formatter.VerboseLog("%s: %s", tok, m.Score())
		}
		result.Steps = append(result.Steps, step)
	}

	fp, err := m.Fingerprint()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to fingerprint match", err)
	}
	result.Final = m.Score().Fields()
	result.Sets = m.Sets()
	result.Winner = m.Winner().String()
	result.Points = m.PointCount()
	result.Fingerprint = fp
	result.ScoreFingerprint = m.Score().Fingerprint()
	if slot, ok := m.Server(); ok {
		result.Server = &slot
	}

	if opts.Format == "json" {
		if err := formatter.Respond(CLIResponse{Status: "ok", Data: result, TraceID: m.ID()}); err != nil {
			return err
		}
	} else {
		writeScoreText(cmd.OutOrStdout(), m, result)
	}

	if opts.Strict && result.Rejected > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d step(s) rejected", result.Rejected))
	}
	return nil
}

func writeScoreText(w io.Writer, m *engine.Match, result ScoreResult) {
	s := m.Score()
	fmt.Fprintf(w, "Rules:  %s\n", result.Rules)
	fmt.Fprintf(w, "Sets:   %d-%d\n", s.Player1Sets, s.Player2Sets)
	if len(result.Sets) > 0 {
		done := make([]string, len(result.Sets))
		for i, set := range result.Sets {
			done[i] = set.String()
		}
		fmt.Fprintf(w, "Scores: %s\n", strings.Join(done, " "))
	}
	if m.IsComplete() {
		fmt.Fprintf(w, "Winner: %s\n", m.Winner())
	} else {
		fmt.Fprintf(w, "Games:  %d-%d\n", s.Player1Games, s.Player2Games)
		label := "Points:"
		if s.IsTiebreak {
			label = "Tiebreak:"
		}
		fmt.Fprintf(w, "%s %s\n", label, s.PointsDisplay())
		if result.Server != nil {
			fmt.Fprintf(w, "Server: team %d, player %d\n", uint8(result.Server.Team), result.Server.Member+1)
		}
	}
	fmt.Fprintf(w, "Points played: %d (%d rejected)\n", result.Points, result.Rejected)
}
