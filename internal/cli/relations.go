package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/detljh/souffle/internal/program"
	"github.com/detljh/souffle/internal/relation"
)

// RelationInfo is one row of the relations listing.
type RelationInfo struct {
	Name      string `json:"name"`
	Arity     int    `json:"arity"`
	Signature string `json:"signature"`
	Class     string `json:"class"`
}

// NewRelationsCommand creates the relations command, which lists the
// relations a program declares without running it.
func NewRelationsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "relations <program>",
		Short:         "List a program's relations and signatures",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := program.NewInstance(args[0])
			if p == nil {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("unknown program %q (have %v)", args[0], program.Names()))
			}
			infos := describeRelations(p)
			return printResult(cmd.OutOrStdout(), rootOpts.Format, infos, func(w io.Writer) {
				for _, info := range infos {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", info.Name, info.Arity, info.Signature, info.Class)
				}
			})
		},
	}
}

func describeRelations(p program.Program) []RelationInfo {
	inputs := relationSet(p.InputRelations())
	outputs := relationSet(p.OutputRelations())

	infos := make([]RelationInfo, 0, len(p.AllRelations()))
	for _, r := range p.AllRelations() {
		class := program.Classify(inputs[r], outputs[r])
		infos = append(infos, RelationInfo{
			Name:      r.Name(),
			Arity:     r.Arity(),
			Signature: relation.Signature(r),
			Class:     class.String(),
		})
	}
	return infos
}

func relationSet(rels []relation.Relation) map[relation.Relation]bool {
	set := make(map[relation.Relation]bool, len(rels))
	for _, r := range rels {
		set[r] = true
	}
	return set
}
