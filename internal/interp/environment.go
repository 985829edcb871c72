// Package interp implements the tree-walking evaluator: lexical
// environments, function/method call semantics, control flow, and
// enum matching, grounded on spec.md §4.4 and structured the way
// conneroisu-gix/pkg/eval dispatches over an AST by type-switch.
package interp

import "github.com/axiom-lang/axiom/internal/value"

// Environment is a stack of frames, innermost last. Resolution walks
// innermost to outermost, then the caller consults the global frame
// separately (Runtime.Globals).
//
// hasGlobalFrame0 marks that frames[0] is rt.Globals by reference (set
// whenever an Environment is constructed directly over the global map,
// as Runtime.Run/Call do), so Snapshot can exclude it: spec.md §4.4
// requires top-level globals be resolved dynamically at call time, not
// captured by value.
type Environment struct {
	frames          []map[string]value.Value
	hasGlobalFrame0 bool
}

// NewEnvironment returns an Environment with a single empty frame.
func NewEnvironment() *Environment {
	return &Environment{frames: []map[string]value.Value{make(map[string]value.Value)}}
}

// NewGlobalEnvironment returns an Environment whose sole frame is the
// live global map itself, so Snapshot knows to exclude it from closure
// captures.
func NewGlobalEnvironment(globals map[string]value.Value) *Environment {
	return &Environment{frames: []map[string]value.Value{globals}, hasGlobalFrame0: true}
}

// Push opens a new innermost frame, optionally pre-seeded (used to
// install a closure's captured bindings plus call arguments).
func (e *Environment) Push(seed map[string]value.Value) {
	frame := make(map[string]value.Value, len(seed))
	for k, v := range seed {
		frame[k] = v
	}
	e.frames = append(e.frames, frame)
}

func (e *Environment) Pop() {
	e.frames = e.frames[:len(e.frames)-1]
}

// Define binds name in the current (innermost) frame, shadowing any
// outer binding of the same name.
func (e *Environment) Define(name string, v value.Value) {
	e.frames[len(e.frames)-1][name] = v
}

// Get resolves name from innermost to outermost frame.
func (e *Environment) Get(name string) (value.Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Assign rebinds the nearest existing binding of name, returning false
// if no frame (other than globals, handled by the caller) has it.
func (e *Environment) Assign(name string, v value.Value) bool {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			e.frames[i][name] = v
			return true
		}
	}
	return false
}

// Snapshot copies every non-global binding visible in this Environment
// into a flat map, the closure-capture operation spec.md §4.4 requires:
// a value snapshot of locals, not a live reference into outer frames.
// Frame 0 is skipped when it is the live global map (hasGlobalFrame0) —
// globals are never captured by value; they stay resolved dynamically
// at call time through Runtime.Globals.
func (e *Environment) Snapshot() map[string]value.Value {
	out := make(map[string]value.Value)
	frames := e.frames
	if e.hasGlobalFrame0 {
		frames = frames[1:]
	}
	for _, frame := range frames {
		for k, v := range frame {
			out[k] = v
		}
	}
	return out
}
