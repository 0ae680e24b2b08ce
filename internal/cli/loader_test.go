package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "love_game.yaml"), passingScenario)
	writeFile(t, filepath.Join(dir, "nested", "tiebreak.yml"), passingScenario)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a scenario")
	writeFile(t, filepath.Join(dir, "golden", "stale.yaml"), "ignored")

	files, err := FindScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "love_game.yaml"),
		filepath.Join(dir, "nested", "tiebreak.yml"),
	}, files)

	files, err = FindScenarioFiles(dir, "tie*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "nested", "tiebreak.yml")}, files)
}

func TestFindScenarioFiles_MissingDir(t *testing.T) {
	_, err := FindScenarioFiles(filepath.Join(t.TempDir(), "absent"), "")
	require.Error(t, err)
}

func TestLoadScenarios(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	missing := filepath.Join(dir, "missing.yaml")
	writeFile(t, good, passingScenario)
	writeFile(t, bad, "name: bad\n")

	t.Run("collect_all", func(t *testing.T) {
		loaded, errs := LoadScenarios([]string{bad, good, missing}, LoadModeCollectAll)
		require.Len(t, loaded, 1)
		assert.Equal(t, "quick_hold", loaded[0].Scenario.Name)
		assert.Equal(t, good, loaded[0].Path)

		require.Len(t, errs, 2)
		var first, second *LoadError
		require.True(t, errors.As(errs[0], &first))
		require.True(t, errors.As(errs[1], &second))
		assert.Equal(t, ErrCodeLoadFailed, first.Code)
		assert.Equal(t, bad, first.Path)
		assert.Equal(t, ErrCodeNotFound, second.Code)
	})

	t.Run("fail_fast", func(t *testing.T) {
		loaded, errs := LoadScenarios([]string{bad, good}, LoadModeFailFast)
		assert.Empty(t, loaded)
		require.Len(t, errs, 1)
	})
}

func TestLoadError_Error(t *testing.T) {
	withPath := &LoadError{Code: ErrCodeNotFound, Message: "file not found", Path: "a.yaml"}
	assert.Equal(t, "a.yaml: E005: file not found", withPath.Error())

	bare := &LoadError{Code: ErrCodeScanError, Message: "permission denied"}
	assert.Equal(t, "E002: permission denied", bare.Error())
}
