// Package engine implements the tennis match scoring engine.
//
// A Match is a deterministic state machine holding the live score of one
// match, the rules it runs under, and a stack of prior score snapshots.
//
// ARCHITECTURE:
//
// Forward-only scoring:
// ScorePoint pushes the current State onto the history stack, then rolls the
// point up through game, set and match:
//  1. Tiebreak games count raw points; first to Rules.TiebreakPoints with a
//     two-point lead takes the set 7-6.
//  2. Standard games follow 0-15-30-40. 40-40 is Deuce; from Deuce a point
//     gives Advantage, a second point wins the game, and losing the point
//     on Advantage returns to Deuce. With No-Ad scoring the point played
//     from Deuce decides the game.
//  3. A set is won at six or more games with a two-game lead. At 6-6 a
//     tiebreak is played, except in a deciding set when
//     Rules.FinalSetTiebreak is false.
//  4. The match is won on reaching Rules.SetsToWin sets. The match is then
//     terminal and every further ScorePoint is rejected.
//
// Undo by snapshot:
// Undo pops the last snapshot and restores it wholesale. No rollup rule
// needs inverse logic, and undoing the match-winning point restores the
// pre-completion score exactly.
//
// Rejected calls never mutate: preconditions are checked before the history
// push, so a failing ScorePoint or Undo leaves the match as it was.
//
// Serve rotation:
// When Rules.ServeOrder is set, the server moves one position per game. A
// tiebreak opens with the next position, which serves one point; each
// following position serves two. After the tiebreak the rotation resumes
// from the position after its last server. The rotation is part of the
// snapshot, so Undo restores it too.
//
// CONCURRENCY:
//
// A Match is owned by one caller at a time. Nothing here blocks or spawns
// goroutines; callers sharing a Match across goroutines must serialise
// access themselves.
//
// LOGICAL CLOCK:
//
// Accepted points are recorded as PointEvents stamped with a monotonic seq
// from Clock.Next(). Seq values are never reused, including after an undo,
// so seq order is the order points were entered. Each Match owns its clock;
// Restore rebuilds a match from recorded events and continues numbering
// after the last seq. Wall-clock timestamps are informational only.
package engine
