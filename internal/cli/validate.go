package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/cinder/internal/harness"
)

// ValidationIssue is one problem found in a scenario file.
type ValidationIssue struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Check every scenario file against the scenario schema and the item
rules without rendering anything. Faster than test for editing feedback.

Exit codes:
  0 - All scenarios valid
  1 - One or more scenarios invalid
  2 - Command error (directory not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	info, err := os.Stat(dir)
	if err != nil {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("scenarios directory not found: %s", dir))
	}
	if !info.IsDir() {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("not a directory: %s", dir))
	}

	files, err := findScenarioFiles(dir, "")
	if err != nil {
		return outputValidateError(formatter, ErrCodeGeneric, err.Error())
	}
	if len(files) == 0 {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("no scenario files found in %s", dir))
	}

	result := ValidationResult{Valid: true, Files: len(files)}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		issues := validateFile(file)
		if len(issues) > 0 {
			result.Valid = false
			result.Errors = append(result.Errors, issues...)
		}
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ All %d scenario(s) valid\n", result.Files)
	return nil
}

// validateFile reports schema violations first. Semantic checks only run on
// files that satisfy the schema.
func validateFile(file string) []ValidationIssue {
	rel := filepath.ToSlash(file)

	data, err := os.ReadFile(file)
	if err != nil {
		return []ValidationIssue{{File: rel, Code: ErrCodeGeneric, Message: err.Error()}}
	}

	var issues []ValidationIssue
	for _, err := range harness.ValidateSchema(data) {
		issue := ValidationIssue{File: rel, Code: ErrCodeSchema, Message: err.Error()}
		var se *harness.SchemaError
		if errors.As(err, &se) {
			issue.Path = se.Path
			issue.Message = se.Message
		}
		issues = append(issues, issue)
	}
	if len(issues) > 0 {
		return issues
	}

	if _, err := harness.ParseScenario(data); err != nil {
		return []ValidationIssue{{File: rel, Code: ErrCodeInvalidInput, Message: err.Error()}}
	}
	return nil
}

func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	failure := fmt.Sprintf("validation failed with %d error(s)", len(result.Errors))

	if formatter.IsJSON() {
		first := result.Errors[0]
		if err := formatter.Report(result, &CLIError{Code: first.Code, Message: first.Message}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, failure)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range result.Errors {
		if issue.Path != "" {
			fmt.Fprintf(formatter.Writer, "  %s: [%s] %s: %s\n", issue.File, issue.Code, issue.Path, issue.Message)
			continue
		}
		fmt.Fprintf(formatter.Writer, "  %s: [%s] %s\n", issue.File, issue.Code, issue.Message)
	}
	return NewExitError(ExitFailure, failure)
}
