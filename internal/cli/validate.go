package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/detljh/souffle/internal/program"
	"github.com/detljh/souffle/internal/relation"
)

// ValidationResult reports one workload check.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Program  string   `json:"program"`
	Problems []string `json:"problems,omitempty"`
}

// NewValidateCommand creates the validate command: check a workload file
// against the schema and against the program it names, without running
// anything.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "validate <workload.yaml>",
		Short:         "Validate a workload file against its program",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := LoadWorkload(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "invalid workload", err)
			}
			result := checkWorkload(w)
			if printErr := printResult(cmd.OutOrStdout(), rootOpts.Format, result, func(out io.Writer) {
				if result.Valid {
					fmt.Fprintf(out, "workload ok: program %s\n", result.Program)
					return
				}
				for _, p := range result.Problems {
					fmt.Fprintln(out, p)
				}
			}); printErr != nil {
				return printErr
			}
			if !result.Valid {
				return NewExitError(ExitFailure, "workload validation failed")
			}
			return nil
		},
	}
}

// checkWorkload instantiates the program and compares the workload's
// expectations against the relations it actually declares.
func checkWorkload(w *Workload) ValidationResult {
	result := ValidationResult{Program: w.Program}

	p := program.NewInstance(w.Program)
	if p == nil {
		result.Problems = append(result.Problems,
			fmt.Sprintf("unknown program %q (have %v)", w.Program, program.Names()))
		return result
	}

	for _, expected := range w.Relations {
		r := p.GetRelation(expected.Name)
		if r == nil {
			result.Problems = append(result.Problems,
				fmt.Sprintf("relation %q: not declared by program %s", expected.Name, w.Program))
			continue
		}
		if got := relation.Signature(r); got != expected.Signature {
			result.Problems = append(result.Problems,
				fmt.Sprintf("relation %q: signature %s, workload expects %s",
					expected.Name, got, expected.Signature))
		}
	}

	result.Valid = len(result.Problems) == 0
	return result
}
