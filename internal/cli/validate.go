package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// FileValidation holds the validation result of one scenario file.
type FileValidation struct {
	Path  string `json:"path"`
	Name  string `json:"name,omitempty"`
	Valid bool   `json:"valid"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario>...",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario YAML files without running them.

Checks YAML syntax, unknown fields, rules, flow steps and assertion
types. Faster than test for development feedback.

Exit codes:
  0 - All files are valid
  1 - One or more files are invalid`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loaded, loadErrors := LoadScenarios(paths, LoadModeCollectAll)

	byPath := make(map[string]FileValidation, len(paths))
	for _, l := range loaded {
		formatter.VerboseLog("Validated %s (%s)", l.Path, l.Scenario.Name)
		byPath[l.Path] = FileValidation{Path: l.Path, Name: l.Scenario.Name, Valid: true}
	}
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			byPath[loadErr.Path] = FileValidation{Path: loadErr.Path, Code: loadErr.Code, Error: loadErr.Message}
		}
	}

	result := ValidationResult{Valid: len(loadErrors) == 0, Files: make([]FileValidation, 0, len(paths))}
	for _, p := range paths {
		result.Files = append(result.Files, byPath[p])
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    ErrCodeLoadFailed,
				Message: fmt.Sprintf("%d of %d file(s) invalid", len(loadErrors), len(paths)),
			}
		}
		if err := formatter.Respond(response); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, f := range result.Files {
			if f.Valid {
				fmt.Fprintf(w, "✓ %s (%s)\n", f.Path, f.Name)
			} else {
				fmt.Fprintf(w, "✗ %s\n  [%s] %s\n", f.Path, f.Code, f.Error)
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) invalid", len(loadErrors)))
	}
	return nil
}
