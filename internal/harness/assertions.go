package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/roach88/tennis/internal/engine"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			status := "ok"
			if !event.OK {
				status = "rejected"
			}
			if event.Action == ActionScore {
				fmt.Fprintf(&buf, "  [%d] score %s %s\n", event.Seq, event.Player, status)
			} else {
				fmt.Fprintf(&buf, "  [%d] undo %s\n", event.Seq, status)
			}
		}
	}

	return buf.String()
}

// assertFinalScore checks the final score fields (subset match).
func assertFinalScore(result *Result, assertion Assertion) error {
	if msg := diffFields(result.Final.Fields(), assertion.Expect); msg != "" {
		return &AssertionError{
			Type:     AssertFinalScore,
			Expected: formatFields(assertion.Expect),
			Actual:   msg,
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertCanUndo checks whether the match can still undo.
func assertCanUndo(result *Result, assertion Assertion) error {
	if assertion.Value == nil {
		return fmt.Errorf("can_undo assertion requires value")
	}
	got := result.match.CanUndo()
	if got != *assertion.Value {
		return &AssertionError{
			Type:     AssertCanUndo,
			Expected: fmt.Sprintf("can_undo = %t", *assertion.Value),
			Actual:   fmt.Sprintf("can_undo = %t", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertPointCount checks the number of points on the history stack.
func assertPointCount(result *Result, assertion Assertion) error {
	got := result.match.PointCount()
	if got != assertion.Count {
		return &AssertionError{
			Type:     AssertPointCount,
			Expected: fmt.Sprintf("%d points", assertion.Count),
			Actual:   fmt.Sprintf("%d points", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertSetScores checks the completed sets, in order.
func assertSetScores(result *Result, assertion Assertion) error {
	got := make([]string, len(result.Sets))
	for i, s := range result.Sets {
		got[i] = s.String()
	}
	want := assertion.Sets
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		return &AssertionError{
			Type:     AssertSetScores,
			Expected: fmt.Sprintf("%v", want),
			Actual:   fmt.Sprintf("%v", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertTraceCount checks how many steps of an action were accepted.
func assertTraceCount(result *Result, assertion Assertion) error {
	count := 0
	for _, event := range result.Trace {
		if event.Action == assertion.Action && event.OK {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d accepted %s steps", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d accepted %s steps", count, assertion.Action),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertReplayConsistent rebuilds the match from its point log.
func assertReplayConsistent(result *Result) error {
	if err := engine.VerifyReplay(result.match); err != nil {
		return &AssertionError{
			Type:     AssertReplayConsistent,
			Expected: "replayed match matches live match",
			Actual:   err.Error(),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertCurrentServer checks the serve rotation position.
func assertCurrentServer(result *Result, assertion Assertion) error {
	got := int(result.match.CurrentServer())
	if got != assertion.Count {
		return &AssertionError{
			Type:     AssertCurrentServer,
			Expected: fmt.Sprintf("server position %d", assertion.Count),
			Actual:   fmt.Sprintf("server position %d", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

// diffFields reports the first expected field that is missing from or
// different in actual, or "" when all match. Keys are checked in sorted
// order so the message is deterministic.
func diffFields(actual, expected map[string]any) string {
	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		actualVal, exists := actual[key]
		if !exists {
			return fmt.Sprintf("field %q not present", key)
		}
		if !valuesEqual(actualVal, expected[key]) {
			return fmt.Sprintf("field %q = %v, expected %v", key, actualVal, expected[key])
		}
	}
	return ""
}

// valuesEqual compares a score field with a YAML-decoded expectation.
// Numbers compare by value regardless of their decoded integer type.
func valuesEqual(actual, expected any) bool {
	if a, ok := toInt64(actual); ok {
		e, ok := toInt64(expected)
		return ok && a == e
	}
	return reflect.DeepEqual(actual, expected)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

// formatFields renders fields as "k=v" pairs in sorted key order.
func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		if result.match == nil && assertion.Type != AssertFinalScore &&
			assertion.Type != AssertSetScores && assertion.Type != AssertTraceCount {
			errors = append(errors, fmt.Sprintf("assertion[%d]: %s requires a match", i, assertion.Type))
			continue
		}

		switch assertion.Type {
		case AssertFinalScore:
			err = assertFinalScore(result, assertion)
		case AssertCanUndo:
			err = assertCanUndo(result, assertion)
		case AssertPointCount:
			err = assertPointCount(result, assertion)
		case AssertSetScores:
			err = assertSetScores(result, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result, assertion)
		case AssertReplayConsistent:
			err = assertReplayConsistent(result)
		case AssertCurrentServer:
			err = assertCurrentServer(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
