package harness

import (
	"fmt"
	"log/slog"

	"github.com/roach88/tennis/internal/engine"
	"github.com/roach88/tennis/internal/testutil"
)

// Harness executes one scenario against a live match.
type Harness struct {
	match  *engine.Match
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs on a fresh match built from deterministic helpers.
//
// Execution flow:
//  1. Resolve rules and create the match
//  2. Execute flow steps, checking expect clauses
//  3. Evaluate assertions
//  4. Return result with pass/fail, trace and errors
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, testutil.DiscardLogger())
}

// RunWithLogger is Run with an explicit logger for harness and match
// logs.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	rules, err := scenario.Rules.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rules: %w", err)
	}

	opts := append(testutil.MatchOptions(scenario.MatchID), engine.WithLogger(logger))
	h := &Harness{
		match:  engine.New(rules, opts...),
		clock:  testutil.NewDeterministicClock(),
		logger: logger,
	}

	result := NewResult()
	result.Rules = rules
	result.match = h.match

	h.executeFlow(scenario.Flow, result)

	result.Final = h.match.Score()
	result.Sets = h.match.Sets()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"steps", len(result.Trace),
	)
	return result, nil
}

// executeFlow runs every step and records expectation failures on result.
func (h *Harness) executeFlow(flow []FlowStep, result *Result) {
	for i, step := range flow {
		var player engine.Player
		if !step.Undo {
			p, err := engine.ParsePlayer(step.Score)
			if err != nil {
				result.AddError(fmt.Sprintf("flow[%d]: %v", i, err))
				continue
			}
			player = p
		}

		for rep := 0; rep < step.Times(); rep++ {
			var err error
			action := ActionUndo
			if step.Undo {
				err = h.match.Undo()
			} else {
				action = ActionScore
				err = h.match.ScorePoint(player)
			}
			ok := err == nil
			result.AddTrace(h.clock.Next(), action, player, ok, h.match.Score())

			if step.Expect != nil && step.Expect.OK != nil && *step.Expect.OK != ok {
				result.AddError(fmt.Sprintf("flow[%d] repetition %d: expected ok=%t, got ok=%t (%v)",
					i, rep+1, *step.Expect.OK, ok, err))
			}

			h.logger.Debug("flow step executed",
				"step", i,
				"repetition", rep+1,
				"action", action,
				"ok", ok,
				"score", h.match.Score().String(),
			)
		}

		if step.Expect != nil && len(step.Expect.Score) > 0 {
			if msg := diffFields(h.match.Score().Fields(), step.Expect.Score); msg != "" {
				result.AddError(fmt.Sprintf("flow[%d]: %s", i, msg))
			}
		}
	}
}
