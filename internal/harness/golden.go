package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tennis/internal/canonical"
	"github.com/roach88/tennis/internal/engine"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// It serializes to canonical JSON for byte-level comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Rules        engine.Rules `json:"rules"`
	Trace        []TraceEvent `json:"trace"`
}

// CanonicalValue implements canonical.Valuer.
func (s TraceSnapshot) CanonicalValue() any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"seq":    event.Seq,
			"action": event.Action,
			"ok":     event.OK,
			"score":  event.Score,
		}
		if event.Player != "" {
			eventMap["player"] = event.Player
		}
		traceList[i] = eventMap
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"rules":         s.Rules,
		"trace":         traceList,
	}
}

// Snapshot renders the golden-file bytes for a scenario result.
func Snapshot(name string, result *Result) ([]byte, error) {
	return canonical.Marshal(TraceSnapshot{
		ScenarioName: name,
		Rules:        result.Rules,
		Trace:        result.Trace,
	})
}

// TraceFingerprint hashes the snapshot of a scenario result.
func TraceFingerprint(name string, result *Result) (string, error) {
	return canonical.Fingerprint(canonical.DomainTrace, TraceSnapshot{
		ScenarioName: name,
		Rules:        result.Rules,
		Trace:        result.Trace,
	})
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
