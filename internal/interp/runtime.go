package interp

import (
	"io"
	"os"

	"github.com/axiom-lang/axiom/internal/ast"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/value"
)

// MaxCallDepth is the default nested-user-frame limit before the
// evaluator fails with a stack-overflow GenericError (spec.md §4.4).
const MaxCallDepth = 512

// Runtime holds process-wide evaluator state: the global frame, the
// class/enum tables, and the intrinsic module registry. It is
// constructed once per program run.
type Runtime struct {
	Globals   map[string]value.Value
	Classes   map[string]*value.Class
	Enums     map[string]*value.Enum
	Modules   map[string]Module
	MaxDepth  int
	callDepth int
	// Out is where `out` statements write; defaults to os.Stdout but
	// tests substitute a buffer to assert on program output.
	Out io.Writer
}

// Module is an intrinsic module: a named function table looked up as
// `module.name(args)` (spec.md §4.5).
type Module struct {
	Name      string
	Functions map[string]value.NativeFunc
}

// New constructs a Runtime with empty globals and an empty class/enum
// table; intrinsic modules are installed separately by stdlib.Install.
func New() *Runtime {
	return &Runtime{
		Globals:  make(map[string]value.Value),
		Classes:  make(map[string]*value.Class),
		Enums:    make(map[string]*value.Enum),
		Modules:  make(map[string]Module),
		MaxDepth: MaxCallDepth,
		Out:      os.Stdout,
	}
}

// RegisterModule installs an intrinsic module, overwriting any prior
// module registered under the same name.
func (rt *Runtime) RegisterModule(m Module) {
	rt.Modules[m.Name] = m
}

// Run executes a parsed program's top-level items in order: class/enum
// declarations populate their tables, function declarations populate
// globals, `std` imports and `lib` declarations have no run-time effect,
// a local `import` fails with an ImportError, and bare statements
// execute in the global scope (spec.md §4.4).
func (rt *Runtime) Run(items []ast.Item) *axerrors.RuntimeError {
	env := NewGlobalEnvironment(rt.Globals)
	ev := &evaluator{rt: rt, global: env}

	for _, item := range items {
		if err := ev.execItem(item); err != nil {
			return err
		}
	}
	return nil
}

// Eval parses nothing; it evaluates a single already-built program in
// the context of an existing Runtime and is equivalent to Run.
func (rt *Runtime) Eval(items []ast.Item) *axerrors.RuntimeError {
	return rt.Run(items)
}

// Call invokes an Axiom callable from Go, the hook intrinsics like
// `alg.map`/`alg.filter` use to apply a user-supplied Fun argument
// without reaching into evaluator internals themselves.
func Call(rt *Runtime, fn *value.Callable, args []value.Value) (value.Value, *axerrors.RuntimeError) {
	ev := &evaluator{rt: rt, global: NewGlobalEnvironment(rt.Globals)}
	return ev.invoke(value.Fun(fn), args, nil, axerrors.ZeroSpan)
}
