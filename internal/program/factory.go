package program

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs instances of one named program. Factories live for the
// whole process; they are registered once, typically from the implementing
// package's init, and never removed.
type Factory interface {
	// Name returns the program name the factory is registered under.
	Name() string
	// New constructs a fresh program instance.
	New() Program
}

// The directory is created lazily on first access rather than declared as
// an initialized package variable, so factory registration running during
// other packages' initialization can never race ahead of the directory's
// own setup.
var (
	directoryOnce sync.Once
	directoryMu   sync.Mutex
	factories     map[string]Factory
)

func directory() map[string]Factory {
	directoryOnce.Do(func() {
		factories = make(map[string]Factory)
	})
	return factories
}

// Register adds f to the process-wide directory. Two factories under one
// name is a fatal contract violation: the duplicate registration panics at
// the point it happens.
func Register(f Factory) {
	dir := directory()
	directoryMu.Lock()
	defer directoryMu.Unlock()
	name := f.Name()
	if _, ok := dir[name]; ok {
		panic(fmt.Sprintf("program: factory %q registered twice", name))
	}
	dir[name] = f
}

// NewInstance instantiates the program registered under name, or returns
// nil when no factory carries that name. Absence is expected and
// recoverable; callers must branch on nil.
func NewInstance(name string) Program {
	dir := directory()
	directoryMu.Lock()
	f, ok := dir[name]
	directoryMu.Unlock()
	if !ok {
		return nil
	}
	return f.New()
}

// Names returns the registered program names, sorted.
func Names() []string {
	dir := directory()
	directoryMu.Lock()
	defer directoryMu.Unlock()
	names := make([]string, 0, len(dir))
	for name := range dir {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// factoryFunc adapts a plain constructor to the Factory interface.
type factoryFunc struct {
	name string
	fn   func() Program
}

func (f factoryFunc) Name() string {
	return f.name
}

func (f factoryFunc) New() Program {
	return f.fn()
}

// RegisterFunc registers a constructor function under name. It is the usual
// way a program package self-registers:
//
//	func init() {
//		program.RegisterFunc("reach", func() program.Program { return New() })
//	}
func RegisterFunc(name string, fn func() Program) {
	Register(factoryFunc{name: name, fn: fn})
}
