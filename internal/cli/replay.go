package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/tennis/internal/engine"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Rules RulesOptions
}

// ReplayResult holds the replay verification result.
type ReplayResult struct {
	Rules         engine.Rules      `json:"rules"`
	Points        int               `json:"points"`
	Final         map[string]any    `json:"final"`
	Sets          []engine.SetScore `json:"sets"`
	Winner        string            `json:"winner"`
	Fingerprints  []string          `json:"fingerprints"`
	Deterministic bool              `json:"deterministic"`
	Error         string            `json:"error,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [points...]",
		Short: "Replay a point log and verify determinism",
		Long: `Replay a sequence of points and verify determinism.

The points are scored twice on fresh matches, then the first match is
rebuilt from its own event log. All three runs must produce the same
score fingerprint. Points are 1 or 2, optionally joined ("1122").

Exit codes:
  0 - Replay is deterministic
  1 - Fingerprints differ or a point was rejected
  2 - Command error (invalid rules, unknown point token)

Examples:
  tennis replay 1111 2222 1111
  tennis replay 12121212 --preset no_ad
  tennis replay 1111 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args, cmd)
		},
	}

	addRulesFlags(cmd, &opts.Rules)

	return cmd
}

// parsePoints parses replay arguments into players. Undo is not part of
// a point log.
func parsePoints(args []string) ([]engine.Player, error) {
	steps, err := parseSteps(args)
	if err != nil {
		return nil, err
	}
	points := make([]engine.Player, 0, len(steps))
	for _, s := range steps {
		if s == undoToken {
			return nil, fmt.Errorf("undo is not allowed in a point log")
		}
		p, err := engine.ParsePlayer(s)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func runReplay(opts *ReplayOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	rules, err := resolveRules(cmd, &opts.Rules)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidRules, err)
	}

	points, err := parsePoints(args)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidInput, err)
	}

	logger := newLogger(opts.RootOptions, formatter.GetErrWriter())
	result := ReplayResult{
		Rules:        rules,
		Points:       len(points),
		Fingerprints: []string{},
		Sets:         []engine.SetScore{},
	}

	verifyErr := replayAndVerify(rules, points, logger, &result, formatter)
	result.Deterministic = verifyErr == nil
	if verifyErr != nil {
		result.Error = verifyErr.Error()
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result}
		if verifyErr != nil {
			response.Status = "error"
			code := ErrCodeReplayDiverge
			if engine.IsRejected(verifyErr) {
				code = ErrCodeRejectedPoint
			}
			response.Error = &CLIError{Code: code, Message: verifyErr.Error()}
		}
		if err := formatter.Respond(response); err != nil {
			return err
		}
	} else {
		outputReplayText(cmd.OutOrStdout(), result)
	}

	if verifyErr != nil {
		return WrapExitError(ExitFailure, "determinism verification failed", verifyErr)
	}
	return nil
}

// replayAndVerify replays points twice and rebuilds the first match from
// its event log, filling result as it goes.
func replayAndVerify(rules engine.Rules, points []engine.Player, logger *slog.Logger, result *ReplayResult, formatter *OutputFormatter) error {
	var matches [2]*engine.Match
	for i := range matches {
		m, err := engine.Replay(rules, points, engine.WithLogger(logger))
		if err != nil {
			return err
		}
		fp, err := m.Fingerprint()
		if err != nil {
			return err
		}
		formatter.VerboseLog("Run %d: %s (%s)", i+1, m.Score(), fp[:12])
		matches[i] = m
		result.Fingerprints = append(result.Fingerprints, fp)
	}

	first := matches[0]
	result.Final = first.Score().Fields()
	result.Sets = first.Sets()
	result.Winner = first.Winner().String()

	if result.Fingerprints[0] != result.Fingerprints[1] {
		return fmt.Errorf("%w: run 1 %s, run 2 %s", engine.ErrReplayDiverged,
			result.Fingerprints[0][:12], result.Fingerprints[1][:12])
	}
	if err := engine.VerifyReplay(first); err != nil {
		return err
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(w io.Writer, result ReplayResult) {
	fmt.Fprintf(w, "Rules:  %s\n", result.Rules)
	fmt.Fprintf(w, "Points: %d\n", result.Points)
	for i, fp := range result.Fingerprints {
		fmt.Fprintf(w, "Run %d:  %s\n", i+1, fp)
	}

	if result.Deterministic {
		fmt.Fprintln(w, "✓ Replay verified deterministic")
		return
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	if result.Error != "" {
		fmt.Fprintf(w, "  %s\n", result.Error)
	}
}
