package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/detljh/souffle/internal/program"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	FactDir string
	Inputs  bool
	Outputs bool
	NoRun   bool
}

// NewDumpCommand creates the dump command: load a program's facts, evaluate
// it, and print a human-readable rendering of its relations to stdout.
// Diagnostics only; the rendering has no format guarantee.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "dump <program>",
		Short:         "Print a program's relations for inspection",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpProgram(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.FactDir, "fact-dir", "F", ".", "directory holding input fact files")
	cmd.Flags().BoolVar(&opts.Inputs, "inputs", false, "dump input relations only")
	cmd.Flags().BoolVar(&opts.Outputs, "outputs", false, "dump output relations only")
	cmd.Flags().BoolVar(&opts.NoRun, "no-run", false, "skip evaluation, dump loaded facts as-is")

	return cmd
}

func dumpProgram(opts *DumpOptions, name string, cmd *cobra.Command) error {
	p := program.NewInstance(name)
	if p == nil {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown program %q (have %v)", name, program.Names()))
	}
	if err := p.LoadAll(opts.FactDir); err != nil {
		return WrapExitError(ExitCommandError, "load failed", err)
	}
	if !opts.NoRun {
		if err := p.Run(-1); err != nil {
			return WrapExitError(ExitCommandError, "run failed", err)
		}
	}

	// Neither flag means both sets.
	both := !opts.Inputs && !opts.Outputs
	out := cmd.OutOrStdout()
	if opts.Inputs || both {
		if err := p.DumpInputs(out); err != nil {
			return WrapExitError(ExitCommandError, "dump inputs failed", err)
		}
	}
	if opts.Outputs || both {
		if err := p.DumpOutputs(out); err != nil {
			return WrapExitError(ExitCommandError, "dump outputs failed", err)
		}
	}
	return nil
}
