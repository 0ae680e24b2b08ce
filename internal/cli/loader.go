package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/tennis/internal/harness"
)

// LoadMode controls how errors are handled during scenario loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadedScenario pairs a parsed scenario with the file it came from.
type LoadedScenario struct {
	Path     string
	Scenario *harness.Scenario
}

// LoadError represents an error that occurred while loading scenarios.
type LoadError struct {
	Code    string
	Message string
	Path    string // file the error refers to, if any
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants, shared by all commands.
const (
	ErrCodeScanError     = "E002" // Directory scan error
	ErrCodeLoadFailed    = "E004" // Scenario parse or validation failed
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeInvalidRules  = "E201" // Rules flags or rules file rejected
	ErrCodeInvalidInput  = "E202" // Unknown point or step token
	ErrCodeReplayDiverge = "E203" // Replay produced a different score
	ErrCodeRejectedPoint = "E204" // Engine refused a point in a point log
)

// FindScenarioFiles walks dir and returns all .yaml and .yml files whose
// base name (without extension) matches filter. An empty filter matches
// everything. Files under a "golden" directory are skipped.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && info.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// LoadScenarios parses the given files. With LoadModeFailFast it returns
// after the first failure; otherwise every file is attempted and all
// failures are returned alongside the scenarios that loaded.
func LoadScenarios(paths []string, mode LoadMode) ([]LoadedScenario, []error) {
	var (
		loaded []LoadedScenario
		errs   []error
	)

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			errs = append(errs, &LoadError{Code: ErrCodeNotFound, Message: "file not found", Path: path})
		} else if scenario, err := harness.LoadScenario(path); err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error(), Path: path})
		} else {
			loaded = append(loaded, LoadedScenario{Path: path, Scenario: scenario})
			continue
		}

		if mode == LoadModeFailFast {
			return loaded, errs
		}
	}

	return loaded, errs
}
