// Package profiler is a vestigial stub for opcode counters, hot-loop
// detection, and flame-graph export (spec.md §1 Non-goals;
// original_source's axm/src/lib.rs names "profiler — opcode counters,
// hot-loop detection, flame graph"). internal/interp does not emit
// opcodes for this package to count.
package profiler

// Sample is a placeholder profiler sample; nothing records into it.
type Sample struct {
	Label string
	Count int
}

// Report always returns an empty sample set.
func Report() []Sample {
	return nil
}
