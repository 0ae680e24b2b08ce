// Package harness runs scripted tennis matches described in YAML and
// checks the outcome.
//
// # Scenario Format
//
//	name: deuce_and_advantage
//	description: "Advantage lost and regained before the game is won"
//	rules:
//	  preset: default          # default | best_of_5 | no_ad | custom
//	  final_set_tiebreak: false
//	flow:
//	  - score: p1
//	    repeat: 3
//	    expect: { ok: true, score: { player1_points: 40 } }
//	  - undo: true
//	  - score: p2
//	    expect: { ok: true }
//	assertions:
//	  - { type: final_score, expect: { game_state: playing } }
//	  - { type: can_undo, value: true }
//	  - { type: point_count, count: 3 }
//	  - { type: set_scores, sets: [] }
//	  - { type: trace_count, action: undo, count: 1 }
//	  - { type: replay_consistent }
//
// Rule fields given next to a preset override it. The custom preset starts
// from zero values, so it must set sets_to_win and tiebreak_points.
//
// # Assertion Types
//
//   - final_score: subset match on the final score fields
//   - can_undo: whether an undo is possible at the end
//   - point_count: number of points left on the history stack
//   - set_scores: completed sets in "games-games" form
//   - trace_count: accepted steps of the given action
//   - replay_consistent: rebuilding the match from its point log gives
//     the same score
//
// # Deterministic Testing
//
// Every scenario runs on a fresh match with a fixed id, a deterministic
// point sequencer and a stepping wall clock (see package testutil). Each
// flow step appends one TraceEvent per repetition, numbered by its own
// deterministic clock, so traces are byte-identical across runs and can
// be compared with golden files.
package harness
