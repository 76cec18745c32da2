package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detljh/souffle/internal/program"
	"github.com/detljh/souffle/internal/symbols"
)

// stub is the smallest Program the factory tests can hand out.
type stub struct {
	*program.Base
}

func (s *stub) Run(int) error                    { return nil }
func (s *stub) RunAll(string, string, int) error { return nil }
func (s *stub) LoadAll(string) error             { return nil }
func (s *stub) PrintAll(string) error            { return nil }

func newStub(name string) program.Program {
	return &stub{Base: program.NewBase(name, symbols.New())}
}

func TestRegisterAndNewInstance(t *testing.T) {
	program.RegisterFunc("factory-test-alpha", func() program.Program {
		return newStub("factory-test-alpha")
	})

	p := program.NewInstance("factory-test-alpha")
	require.NotNil(t, p)
	assert.Empty(t, p.AllRelations())

	// Every instantiation constructs a fresh instance.
	q := program.NewInstance("factory-test-alpha")
	require.NotNil(t, q)
	assert.NotSame(t, p, q)
}

func TestNewInstanceUnknownNameIsAbsent(t *testing.T) {
	assert.Nil(t, program.NewInstance("factory-test-missing"))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	program.RegisterFunc("factory-test-dup", func() program.Program {
		return newStub("factory-test-dup")
	})
	assert.Panics(t, func() {
		program.RegisterFunc("factory-test-dup", func() program.Program {
			return newStub("factory-test-dup")
		})
	})
}

func TestNamesAreSorted(t *testing.T) {
	program.RegisterFunc("factory-test-zz", func() program.Program { return newStub("factory-test-zz") })
	program.RegisterFunc("factory-test-aa", func() program.Program { return newStub("factory-test-aa") })

	names := program.Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "factory-test-aa")
	assert.Contains(t, names, "factory-test-zz")
}
