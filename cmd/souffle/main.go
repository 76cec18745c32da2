// Command souffle drives compiled Datalog programs: it instantiates them by
// name from the factory directory, loads fact files, evaluates, and stores
// or dumps the results.
package main

import (
	"fmt"
	"os"

	"github.com/detljh/souffle/internal/cli"

	// Compiled programs self-register their factories at init time.
	_ "github.com/detljh/souffle/internal/programs/reach"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
