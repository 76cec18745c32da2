package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/detljh/souffle/internal/program"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Workload  string
	FactDir   string
	OutputDir string
	Jobs      int
	Stratum   int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [program]",
		Short: "Instantiate a program, load facts, evaluate, store results",
		Long: `Instantiate a compiled program by name, load its input relations from
fact files, evaluate it, and store its output relations.

The program comes either from the positional argument with flags, or from a
workload file:

  souffle run reach -F ./facts -D ./out -j 4
  souffle run --workload ./reach.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWorkload(opts, args)
			if err != nil {
				return err
			}
			return runWorkload(w, cmd.OutOrStdout(), opts.Format)
		},
	}

	cmd.Flags().StringVar(&opts.Workload, "workload", "", "path to a YAML workload file")
	cmd.Flags().StringVarP(&opts.FactDir, "fact-dir", "F", ".", "directory holding input fact files")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "D", ".", "directory for output relations")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "advisory worker-count hint")
	cmd.Flags().IntVar(&opts.Stratum, "stratum", -1, "stratum to evaluate (-1 for all)")

	return cmd
}

// resolveWorkload merges the two invocation styles into one workload.
func resolveWorkload(opts *RunOptions, args []string) (*Workload, error) {
	if opts.Workload != "" {
		if len(args) > 0 {
			return nil, NewExitError(ExitCommandError, "pass a program name or --workload, not both")
		}
		w, err := LoadWorkload(opts.Workload)
		if err != nil {
			return nil, WrapExitError(ExitFailure, "invalid workload", err)
		}
		return w, nil
	}
	if len(args) == 0 {
		return nil, NewExitError(ExitCommandError, "a program name or --workload is required")
	}
	return &Workload{
		Program:   args[0],
		FactDir:   opts.FactDir,
		OutputDir: opts.OutputDir,
		Jobs:      opts.Jobs,
		Stratum:   opts.Stratum,
	}, nil
}

func runWorkload(w *Workload, out io.Writer, format string) error {
	p := program.NewInstance(w.Program)
	if p == nil {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown program %q (have %v)", w.Program, program.Names()))
	}
	p.SetNumThreads(w.Jobs)

	start := time.Now()
	slog.Info("running program",
		"program", w.Program, "facts", w.FactDir, "output", w.OutputDir,
		"jobs", w.Jobs, "stratum", w.Stratum)
	if err := p.RunAll(w.FactDir, w.OutputDir, w.Stratum); err != nil {
		return WrapExitError(ExitCommandError, "run failed", err)
	}
	elapsed := time.Since(start)

	type relResult struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	results := make([]relResult, 0, len(p.OutputRelations()))
	for _, r := range p.OutputRelations() {
		results = append(results, relResult{Name: r.Name(), Size: r.Size()})
	}
	payload := struct {
		Program string      `json:"program"`
		Elapsed string      `json:"elapsed"`
		Outputs []relResult `json:"outputs"`
	}{w.Program, elapsed.String(), results}

	return printResult(out, format, payload, func(w io.Writer) {
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%d\n", r.Name, r.Size)
		}
		fmt.Fprintf(w, "done in %s\n", elapsed)
	})
}
