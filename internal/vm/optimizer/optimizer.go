// Package optimizer is a vestigial stub for a static bytecode
// optimization pipeline (spec.md §1 Non-goals; original_source's
// axm/src/lib.rs names "optimizer — static bytecode optimisation
// pipeline"). There is no bytecode to optimize in a tree-walking
// evaluator; Optimize always succeeds unchanged, mirroring
// axm/src/jit.rs's always-succeeds stub pattern.
package optimizer

import "github.com/axiom-lang/axiom/internal/vm/bytecode"

// Optimize is a no-op pass over proto; it always succeeds.
func Optimize(proto *bytecode.Proto) *bytecode.Proto {
	return proto
}
