package program

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/detljh/souffle/internal/facts"
	"github.com/detljh/souffle/internal/relation"
)

// Base carries the registry state of one program instance. Compiled
// programs embed *Base and add their evaluation logic on top.
//
// INVARIANTS:
//   - a relation is registered under exactly one name, exactly once
//   - the finer class of a relation never changes after registration
//   - the bulk input/output lists are independent memberships; a relation
//     registered with both flags appears in both
type Base struct {
	name   string
	token  string
	log    *slog.Logger
	symtab relation.SymbolTable

	relations map[string]relation.Relation
	all       []relation.Relation
	inputs    []relation.Relation
	outputs   []relation.Relation
	byClass   map[Class][]relation.Relation

	numThreads int
}

// Option configures a Base at construction.
type Option func(*baseConfig)

type baseConfig struct {
	tokens TokenGenerator
	log    *slog.Logger
}

// WithTokenGenerator overrides the instance token generator. Tests use
// NewFixedGenerator for deterministic tokens.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(c *baseConfig) {
		c.tokens = g
	}
}

// WithLogger overrides the logger the instance annotates with its program
// name and instance token.
func WithLogger(log *slog.Logger) Option {
	return func(c *baseConfig) {
		c.log = log
	}
}

// NewBase creates the registry state for one instance of the named program.
// Every instance receives a fresh token so logs from concurrently live
// instances stay distinguishable.
func NewBase(name string, symtab relation.SymbolTable, opts ...Option) *Base {
	cfg := baseConfig{tokens: UUIDv7Generator{}, log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	token := cfg.tokens.Generate()
	return &Base{
		name:       name,
		token:      token,
		log:        cfg.log.With("program", name, "instance", token),
		symtab:     symtab,
		relations:  make(map[string]relation.Relation),
		byClass:    make(map[Class][]relation.Relation),
		numThreads: 1,
	}
}

// AddRelation registers rel under name and files it by classification.
// Registering the same name twice is a contract violation.
func (b *Base) AddRelation(name string, rel relation.Relation, isInput, isOutput bool) {
	if _, ok := b.relations[name]; ok {
		panic(fmt.Sprintf("program %s: relation %q registered twice", b.name, name))
	}
	b.relations[name] = rel
	b.all = append(b.all, rel)
	if isInput {
		b.inputs = append(b.inputs, rel)
	}
	if isOutput {
		b.outputs = append(b.outputs, rel)
	}
	class := Classify(isInput, isOutput)
	b.byClass[class] = append(b.byClass[class], rel)
	b.log.Debug("relation registered",
		"relation", name, "class", class.String(), "signature", relation.Signature(rel))
}

// Name returns the program name the instance was created under.
func (b *Base) Name() string {
	return b.name
}

// InstanceToken returns the token identifying this instance in logs.
func (b *Base) InstanceToken() string {
	return b.token
}

// Logger returns the instance-scoped logger.
func (b *Base) Logger() *slog.Logger {
	return b.log
}

// SymbolTable returns the table shared by the program's relations.
func (b *Base) SymbolTable() relation.SymbolTable {
	return b.symtab
}

// GetRelation returns the named relation, or nil when the name is unknown.
func (b *Base) GetRelation(name string) relation.Relation {
	return b.relations[name]
}

// GetRelationSize returns the row count of the named relation. The name
// must exist; see Program.GetRelationSize.
func (b *Base) GetRelationSize(name string) int {
	return b.GetRelation(name).Size()
}

// GetRelationName returns the name the named relation reports for itself.
// The name must exist; see Program.GetRelationName.
func (b *Base) GetRelationName(name string) string {
	return b.GetRelation(name).Name()
}

// InputRelations returns every relation registered with the input flag.
func (b *Base) InputRelations() []relation.Relation {
	return b.inputs
}

// OutputRelations returns every relation registered with the output flag.
func (b *Base) OutputRelations() []relation.Relation {
	return b.outputs
}

// InternalRelations returns every relation registered with neither flag.
func (b *Base) InternalRelations() []relation.Relation {
	return b.byClass[ClassInternal]
}

// AllRelations returns every registered relation in registration order.
func (b *Base) AllRelations() []relation.Relation {
	return b.all
}

// ByClass returns the relations in the given finer class, in registration
// order.
func (b *Base) ByClass(c Class) []relation.Relation {
	return b.byClass[c]
}

// PurgeInputRelations empties every relation in the input bulk list.
func (b *Base) PurgeInputRelations() {
	purge(b.inputs)
}

// PurgeOutputRelations empties every relation in the output bulk list.
func (b *Base) PurgeOutputRelations() {
	purge(b.outputs)
}

// PurgeInternalRelations empties every internal relation.
func (b *Base) PurgeInternalRelations() {
	purge(b.byClass[ClassInternal])
}

func purge(rels []relation.Relation) {
	for _, r := range rels {
		r.Purge()
	}
}

// SetNumThreads stores the advisory worker-count hint. Values below 1 are
// clamped to 1.
func (b *Base) SetNumThreads(n int) {
	if n < 1 {
		n = 1
	}
	b.numThreads = n
}

// NumThreads returns the advisory worker-count hint.
func (b *Base) NumThreads() int {
	return b.numThreads
}

// DumpInputs writes a human-readable rendering of every input relation.
func (b *Base) DumpInputs(w io.Writer) error {
	return dump(w, b.inputs)
}

// DumpOutputs writes a human-readable rendering of every output relation.
func (b *Base) DumpOutputs(w io.Writer) error {
	return dump(w, b.outputs)
}

func dump(w io.Writer, rels []relation.Relation) error {
	for _, r := range rels {
		if err := facts.Dump(w, r); err != nil {
			return fmt.Errorf("dump %s: %w", r.Name(), err)
		}
	}
	return nil
}

// ExecuteSubroutine is the default no-op dispatch for programs without
// subroutines. Programs that have them shadow this method.
func (b *Base) ExecuteSubroutine(name string, args []relation.Value) ([]relation.Value, []bool) {
	return nil, nil
}
