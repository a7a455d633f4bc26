package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tzcore/internal/definition"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                         `json:"valid"`
	Zones  int                          `json:"zones"`
	Errors []definition.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <definitions>",
		Short: "Validate zone definitions",
		Long: `Validate zone definitions without building them.

Reports every problem found, each with a Z1xx code.

Exit codes:
  0 - All definitions valid
  1 - Validation errors found
  2 - Command error (path not found, CUE errors, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loadResult, err := LoadDefinitions(path)
	if err != nil {
		return loadFailure(formatter, err)
	}
	formatter.VerboseLog("Found %d zone(s) in %d file(s) in %s", len(loadResult.Set.Zones), loadResult.FileCount, path)
	for _, z := range loadResult.Set.Zones {
		formatter.VerboseLog("Validating zone: %s", z.ID)
	}

	errs := definition.ValidateSet(loadResult.Set)
	if len(errs) > 0 {
		return outputValidationErrors(formatter, len(loadResult.Set.Zones), errs)
	}

	if formatter.IsJSON() {
		return formatter.Success(ValidationResult{Valid: true, Zones: len(loadResult.Set.Zones)})
	}
	fmt.Fprintf(formatter.Writer, "✓ All %d zone(s) valid\n", len(loadResult.Set.Zones))
	return nil
}

// outputValidationErrors outputs validation errors. Failures exit with
// ExitFailure.
func outputValidationErrors(formatter *OutputFormatter, zones int, errs []definition.ValidationError) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.IsJSON() {
		result := ValidationResult{Valid: false, Zones: zones, Errors: errs}
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}
	return exitErr
}
