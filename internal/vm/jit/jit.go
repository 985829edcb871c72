// Package jit is a vestigial stub for an experimental trace-JIT (spec.md
// §1 Non-goals; original_source's axm/src/jit.rs: "Lightweight module
// that inspects parsed items and optionally locates the main()
// function. Having a main() is NOT required.").
package jit

import "github.com/axiom-lang/axiom/internal/ast"

// PrepareEntry checks whether items declares a `main` function. It
// always succeeds: top-level statements execute regardless of whether
// main() is present, matching original_source's prepare_jit_entry.
func PrepareEntry(items []ast.Item) bool {
	for _, item := range items {
		if fn, ok := item.(*ast.FunctionDecl); ok && fn.Name == "main" {
			return true
		}
	}
	return false
}
