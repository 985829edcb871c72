// Package inlinecache is a vestigial stub for property/call inline
// caches and a shape system (spec.md §1 Non-goals; original_source's
// axm/src/lib.rs names "inline_cache — property / call inline caches +
// shape system"). internal/value.Class.ResolveMethod already performs
// the monomorphic first-hit walk spec.md §9 describes, with no caching
// layer; this package is not wired into that lookup path.
package inlinecache

// Cache is a placeholder inline-cache slot; nothing populates or
// consults it.
type Cache struct {
	Shape  string
	Offset int
}
