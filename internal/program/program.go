package program

import (
	"io"

	"github.com/detljh/souffle/internal/relation"
)

// Program is the caller-facing interface of one compiled program instance.
// The registry accessors and bulk operations come from Base; the evaluation
// entry points are fulfilled by the generated (or hand-written) program.
type Program interface {
	// Run evaluates the program without performing any loads or stores.
	// A negative stratum runs every stratum in order; a non-negative value
	// runs that stratum alone.
	Run(stratum int) error

	// RunAll loads all input relations from inputDir, evaluates the given
	// stratum, and stores all output relations into outputDir.
	RunAll(inputDir, outputDir string, stratum int) error

	// LoadAll reads every input relation from fact files in inputDir.
	LoadAll(inputDir string) error

	// PrintAll writes every output relation to files in outputDir.
	PrintAll(outputDir string) error

	// DumpInputs writes a human-readable rendering of every input relation
	// to w. Diagnostics only; the format is not guaranteed.
	DumpInputs(w io.Writer) error

	// DumpOutputs writes a human-readable rendering of every output
	// relation to w. Diagnostics only; the format is not guaranteed.
	DumpOutputs(w io.Writer) error

	// ExecuteSubroutine invokes a named internal computation with positional
	// arguments, returning positional results and a parallel slice flagging
	// which result slots are erroneous. Programs without subroutines inherit
	// a no-op.
	ExecuteSubroutine(name string, args []relation.Value) (ret []relation.Value, retErr []bool)

	// SymbolTable returns the table shared by the program's relations.
	SymbolTable() relation.SymbolTable

	// GetRelation returns the named relation, or nil when the name is
	// unknown. Callers must branch on nil before use.
	GetRelation(name string) relation.Relation

	// GetRelationSize returns the row count of the named relation. Calling
	// it for an unknown name is a contract violation (nil dereference);
	// check GetRelation first when the name is not trusted.
	GetRelationSize(name string) int

	// GetRelationName returns the name the named relation reports for
	// itself. Same contract as GetRelationSize.
	GetRelationName(name string) string

	InputRelations() []relation.Relation
	OutputRelations() []relation.Relation
	InternalRelations() []relation.Relation
	AllRelations() []relation.Relation

	PurgeInputRelations()
	PurgeOutputRelations()
	PurgeInternalRelations()

	// SetNumThreads stores the advisory worker-count hint consumed by the
	// evaluation engine. This layer neither spawns nor synchronizes
	// threads.
	SetNumThreads(n int)
	NumThreads() int
}

// Class is the finer four-way classification a relation receives exactly
// once, at registration, from its two independent input/output flags.
type Class int

const (
	// ClassInternal marks relations that are neither input nor output.
	ClassInternal Class = iota
	// ClassInput marks input-only relations.
	ClassInput
	// ClassOutput marks output-only relations.
	ClassOutput
	// ClassInputOutput marks relations that are both input and output.
	ClassInputOutput
)

func (c Class) String() string {
	switch c {
	case ClassInternal:
		return "internal"
	case ClassInput:
		return "input"
	case ClassOutput:
		return "output"
	case ClassInputOutput:
		return "input-output"
	}
	return "unknown"
}

// Classify maps the two registration flags to the relation's class. Pure
// function, applied once at registration and never re-evaluated.
func Classify(isInput, isOutput bool) Class {
	switch {
	case isInput && isOutput:
		return ClassInputOutput
	case isInput:
		return ClassInput
	case isOutput:
		return ClassOutput
	default:
		return ClassInternal
	}
}
