package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tennis/internal/harness"
)

var harnessTestdata = filepath.Join("..", "harness", "testdata")

const passingScenario = `name: quick_hold
description: "Player 1 holds to love"
rules:
  preset: default
flow:
  - score: p1
    repeat: 4
    expect: { ok: true, score: { player1_games: 1 } }
assertions:
  - { type: point_count, count: 4 }
`

const failingScenario = `name: wrong_expectation
description: "Expectations that do not hold"
rules:
  preset: default
flow:
  - score: p2
    expect: { ok: true, score: { player2_points: 30 } }
assertions:
  - { type: can_undo, value: false }
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func runTestCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runTestCommand(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := runTestCommand(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := runTestCommand(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := runTestCommand(t, "json", t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := runTestCommand(t, "text", filepath.Join(harnessTestdata, "scenarios"))
	require.NoError(t, err)

	assert.Contains(t, out, "✓ love_game")
	assert.Contains(t, out, "✓ tiebreak_ten_point")
	assert.Contains(t, out, "Test Summary: 8 passed, 0 failed, 8 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.yaml"), passingScenario)
	writeFile(t, filepath.Join(dir, "bad.yaml"), failingScenario)

	out, err := runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✓ quick_hold")
	assert.Contains(t, out, "✗ wrong_expectation")
	assert.Contains(t, out, `field "player2_points" = 15, expected 30`)
	assert.Contains(t, out, "Assertion failed: can_undo")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFailingScenarioJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), failingScenario)

	out, err := runTestCommand(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_TEST_FAILED", response.Error.Code)

	data := response.Data.(map[string]any)
	assert.Equal(t, float64(1), data["failed"])
	scenarios := data["scenarios"].([]any)
	require.Len(t, scenarios, 1)
	assert.Len(t, scenarios[0].(map[string]any)["errors"], 2)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "name: broken\nflow:\n  - score: p3\n")

	out, err := runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hold_one.yaml"), passingScenario)
	writeFile(t, filepath.Join(dir, "bad.yaml"), failingScenario)

	out, err := runTestCommand(t, "text", dir, "--filter", "hold_*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandInvalidFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), passingScenario)

	_, err := runTestCommand(t, "text", dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandUpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "quick_hold.yaml")
	writeFile(t, scenarioPath, passingScenario)

	out, err := runTestCommand(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ quick_hold (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "quick_hold.golden")
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)

	scenario, err := harness.LoadScenario(scenarioPath)
	require.NoError(t, err)
	result, err := harness.Run(scenario)
	require.NoError(t, err)
	want, err := harness.Snapshot(scenario.Name, result)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(golden))

	out, err = runTestCommand(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ quick_hold\n")
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "quick_hold.yaml"), passingScenario)
	writeFile(t, filepath.Join(dir, "golden", "quick_hold.golden"), `{"stale":true}`)

	out, err := runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandMatchesHarnessGolden(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"love_game", "deuce_advantage"} {
		scenario, err := os.ReadFile(filepath.Join(harnessTestdata, "scenarios", name+".yaml"))
		require.NoError(t, err)
		golden, err := os.ReadFile(filepath.Join(harnessTestdata, "golden", name+".golden"))
		require.NoError(t, err)

		writeFile(t, filepath.Join(dir, name+".yaml"), string(scenario))
		writeFile(t, filepath.Join(dir, "golden", name+".golden"), string(golden))
	}

	out, err := runTestCommand(t, "json", dir)
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
	data := response.Data.(map[string]any)
	assert.Equal(t, float64(2), data["passed"])
	for _, s := range data["scenarios"].([]any) {
		assert.Len(t, s.(map[string]any)["fingerprint"], 64)
	}
}

func TestTestHelpText(t *testing.T) {
	out, err := runTestCommand(t, "text", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "--update")
	assert.Contains(t, out, "--filter")
	assert.Contains(t, out, "scenarios-dir")
	assert.Contains(t, out, "golden")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "love_game.golden"),
		goldenFilePath(filepath.Join("scenarios", "love_game.yaml")))
}
