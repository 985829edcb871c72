// Package gc is a vestigial stub for a generational garbage collector
// (spec.md §1 Non-goals; original_source's axm/src/lib.rs names
// "gc — generational garbage collector"). Go's own runtime GC already
// manages internal/value.Value's heap allocations; this package backs
// nothing reachable from internal/interp.
package gc

// Stats is a placeholder collection-statistics snapshot; Collect always
// returns a zero value since no generational heap exists to scan.
type Stats struct {
	Collections int
	Freed       int
}

// Collect is a no-op, mirroring axm/src/jit.rs's always-succeeds stub
// pattern for scaffolding with no observable behavior.
func Collect() Stats {
	return Stats{}
}
