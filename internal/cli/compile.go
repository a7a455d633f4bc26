package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tzcore/internal/definition"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledZone summarizes one compiled zone.
type CompiledZone struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	ContentID string `json:"content_id"`
}

// CompilationResult is the output of the compile command.
type CompilationResult struct {
	Zones  []CompiledZone `json:"zones"`
	Output string         `json:"output,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <definitions>",
		Short: "Compile zone definitions to canonical JSON",
		Long: `Compile zone definitions to canonical JSON (RFC 8785) and print the
content ID of each zone.

With --output the canonical form of every zone is written to one file as
{"zones":[...]}.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	loadResult, err := LoadDefinitions(path)
	if err != nil {
		return loadFailure(formatter, err)
	}
	if errs := definition.ValidateSet(loadResult.Set); len(errs) > 0 {
		return outputValidationErrors(formatter, len(loadResult.Set.Zones), errs)
	}

	result := CompilationResult{Zones: make([]CompiledZone, 0, len(loadResult.Set.Zones)), Output: opts.Output}
	canonical := make([][]byte, 0, len(loadResult.Set.Zones))
	for _, z := range loadResult.Set.Zones {
		formatter.VerboseLog("Compiling zone: %s", z.ID)
		data, err := definition.Canonical(z)
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("zone %s: %v", z.ID, err))
		}
		id, err := definition.ContentID(z)
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("zone %s: %v", z.ID, err))
		}
		canonical = append(canonical, data)
		result.Zones = append(result.Zones, CompiledZone{ID: z.ID, Kind: z.Kind, ContentID: id})
	}

	if opts.Output != "" {
		if err := writeCanonicalSet(opts.Output, canonical); err != nil {
			return commandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	for _, z := range result.Zones {
		fmt.Fprintf(formatter.Writer, "%s  %-13s %s\n", z.ContentID, z.Kind, z.ID)
	}
	fmt.Fprintf(formatter.Writer, "✓ Compiled %d zone(s)\n", len(result.Zones))
	return nil
}

// writeCanonicalSet writes {"zones":[...]} from already canonical zones. A
// single key and canonical elements keep the document canonical.
func writeCanonicalSet(path string, zones [][]byte) error {
	var buf bytes.Buffer
	buf.WriteString(`{"zones":[`)
	buf.Write(bytes.Join(zones, []byte(",")))
	buf.WriteString("]}")
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
