// Package reach is a hand-written stand-in for a compiled Datalog program:
//
//	.decl edge(node1:Node, node2:Node)      // input
//	.decl node(n:Node)                      // internal
//	.decl reachable(node1:Node, node2:Node) // output
//
//	node(x) :- edge(x, _). node(y) :- edge(_, y).
//	reachable(x, y) :- edge(x, y).
//	reachable(x, z) :- reachable(x, y), edge(y, z).
//
// It exercises the whole access layer the way generated code would: it
// registers relations with their flags, fulfills the load/run/store
// obligations, and exposes subroutines. The package registers its factory
// under the name "reach" at init time.
package reach

import (
	"fmt"
	"slices"

	"github.com/detljh/souffle/internal/facts"
	"github.com/detljh/souffle/internal/program"
	"github.com/detljh/souffle/internal/ram"
	"github.com/detljh/souffle/internal/relation"
	"github.com/detljh/souffle/internal/symbols"
)

// Name is the factory name the program registers under.
const Name = "reach"

func init() {
	program.RegisterFunc(Name, func() program.Program {
		return New()
	})
}

// Program computes the transitive closure of edge into reachable.
type Program struct {
	*program.Base

	edge      *ram.Relation
	node      *ram.Relation
	reachable *ram.Relation
}

// New constructs a fresh instance with empty relations.
func New(opts ...program.Option) *Program {
	symtab := symbols.New()
	base := program.NewBase(Name, symtab, opts...)

	attr := func(name string) relation.Attribute {
		return relation.Attribute{Name: name, Kind: relation.KindSymbol, TypeName: "Node"}
	}
	p := &Program{
		Base:      base,
		edge:      ram.New("edge", symtab, attr("node1"), attr("node2")),
		node:      ram.New("node", symtab, attr("n")),
		reachable: ram.New("reachable", symtab, attr("node1"), attr("node2")),
	}
	p.AddRelation("edge", p.edge, true, false)
	p.AddRelation("node", p.node, false, false)
	p.AddRelation("reachable", p.reachable, false, true)
	return p
}

// Strata: 0 projects node from edge, 1 computes the closure.
const numStrata = 2

// Run evaluates the program. A negative stratum runs both strata in order.
func (p *Program) Run(stratum int) error {
	if stratum >= numStrata {
		return fmt.Errorf("reach: no stratum %d (have %d)", stratum, numStrata)
	}
	if stratum < 0 || stratum == 0 {
		p.projectNodes()
	}
	if stratum < 0 || stratum == 1 {
		p.closeEdges()
	}
	p.Logger().Debug("evaluated",
		"stratum", stratum, "nodes", p.node.Size(), "reachable", p.reachable.Size())
	return nil
}

// RunAll loads inputs, evaluates the stratum, and stores outputs.
func (p *Program) RunAll(inputDir, outputDir string, stratum int) error {
	if err := p.LoadAll(inputDir); err != nil {
		return err
	}
	if err := p.Run(stratum); err != nil {
		return err
	}
	return p.PrintAll(outputDir)
}

// LoadAll reads every input relation from fact files in inputDir.
func (p *Program) LoadAll(inputDir string) error {
	return facts.LoadDir(inputDir, p.InputRelations(), p.NumThreads())
}

// PrintAll writes every output relation to files in outputDir.
func (p *Program) PrintAll(outputDir string) error {
	return facts.StoreDir(outputDir, p.OutputRelations(), p.NumThreads())
}

// ExecuteSubroutine dispatches the program's subroutines:
//
//	num_nodes()        -> [node count]
//	out_degree(nodeID) -> [degree], with the error flag set when nodeID is
//	                      not a known node
//
// Unknown names fall back to the inherited no-op.
func (p *Program) ExecuteSubroutine(name string, args []relation.Value) ([]relation.Value, []bool) {
	switch name {
	case "num_nodes":
		return []relation.Value{relation.Value(p.node.Size())}, []bool{false}
	case "out_degree":
		if len(args) != 1 {
			return []relation.Value{0}, []bool{true}
		}
		if !p.node.Contains(relation.NewTupleOf(p.node, args[0])) {
			return []relation.Value{0}, []bool{true}
		}
		degree := relation.Value(0)
		for it, end := p.edge.Begin(), p.edge.End(); !it.Equal(end); it.Advance() {
			if it.Tuple().Get(0) == args[0] {
				degree++
			}
		}
		return []relation.Value{degree}, []bool{false}
	}
	return p.Base.ExecuteSubroutine(name, args)
}

// projectNodes fills node with every endpoint occurring in edge.
func (p *Program) projectNodes() {
	for it, end := p.edge.Begin(), p.edge.End(); !it.Equal(end); it.Advance() {
		t := it.Tuple()
		p.node.Insert(relation.NewTupleOf(p.node, t.Get(0)))
		p.node.Insert(relation.NewTupleOf(p.node, t.Get(1)))
	}
}

// closeEdges computes the transitive closure of edge into reachable by
// breadth-first search from every source node. Domain values are compared
// raw; symbol resolution is never needed during evaluation. Sources are
// visited in value order so repeated runs fill reachable identically.
func (p *Program) closeEdges() {
	succ := make(map[relation.Value][]relation.Value)
	for it, end := p.edge.Begin(), p.edge.End(); !it.Equal(end); it.Advance() {
		t := it.Tuple()
		succ[t.Get(0)] = append(succ[t.Get(0)], t.Get(1))
	}
	sources := make([]relation.Value, 0, len(succ))
	for src := range succ {
		sources = append(sources, src)
	}
	slices.Sort(sources)

	for _, src := range sources {
		seen := make(map[relation.Value]bool)
		frontier := []relation.Value{src}
		for len(frontier) > 0 {
			next := frontier[:0:0]
			for _, from := range frontier {
				for _, to := range succ[from] {
					if seen[to] {
						continue
					}
					seen[to] = true
					p.reachable.Insert(relation.NewTupleOf(p.reachable, src, to))
					next = append(next, to)
				}
			}
			frontier = next
		}
	}
}
