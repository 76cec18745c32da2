// Package program holds the bookkeeping shared by all compiled Datalog
// programs and the process-wide factory directory used to instantiate them
// by name.
//
// A compiled program embeds *Base, registers its relations during
// construction, and implements the evaluation obligations (Run, RunAll,
// LoadAll, PrintAll) itself; Base supplies everything else: the name ->
// relation map, the input/output/internal classification, bulk purges,
// debug dumps, the advisory thread-count hint, and the default no-op
// subroutine dispatch.
//
// Factories self-register under a unique program name; the directory behind
// them is created lazily on first use, so registration happening inside
// package initialization can never observe an uninitialized directory.
// Instantiating an unknown name yields nil, an expected and recoverable
// outcome. Registering a name twice panics: two programs under one name is
// a build error, not a runtime condition.
package program
