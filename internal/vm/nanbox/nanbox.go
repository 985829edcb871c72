// Package nanbox is a vestigial stub for a NaN-boxed value
// representation (spec.md §1 Non-goals; original_source's
// axm/src/lib.rs names "nanbox — NaN-boxed value representation").
// Axiom's real value model is internal/value.Value, a tagged Go struct;
// this package exercises no observable behavior.
package nanbox

// Val is a placeholder for a NaN-boxed 64-bit value; nothing encodes or
// decodes through it.
type Val uint64
