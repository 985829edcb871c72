package interp

import (
	"fmt"
	"strings"

	"github.com/axiom-lang/axiom/internal/ast"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/value"
)

func joinSpace(parts []string) string { return strings.Join(parts, " ") }

// evaluator carries the per-run mutable state threaded through every
// exec/eval call: the Runtime it belongs to, the active lexical
// Environment, and (while inside a method body) the bound self.
type evaluator struct {
	rt     *Runtime
	global *Environment
	self   *value.Instance
}

// signal is returned up the statement-execution chain to implement
// `ret`/`return` unwinding to the nearest call frame (spec.md §4.4's
// call-frame state machine).
type signal struct {
	returning bool
	value     value.Value
}

func (ev *evaluator) execItem(item ast.Item) *axerrors.RuntimeError {
	switch it := item.(type) {
	case *ast.FunctionDecl:
		ev.global.Define(it.Name, value.Fun(&value.Callable{
			Kind:     value.CallableUserDefined,
			Name:     it.Name,
			Params:   it.Params,
			Body:     it.Body,
			Captured: map[string]value.Value{},
		}))
		return nil
	case *ast.ClassDecl:
		return ev.declClass(it)
	case *ast.EnumDecl:
		ev.declEnum(it)
		return nil
	case *ast.StdImport:
		// The named module, if it exists, is already installed by
		// stdlib.Install; bare identifiers resolve to it directly
		// (evalIdentifier), so `std` registration is a no-op here.
		return nil
	case *ast.LocImport:
		// Filesystem-backed module loading is the deprecated no-op
		// internal/loader package (spec.md §9 "Deprecated surface");
		// a local import always fails at run time.
		return axerrors.NewImportError(it.Name, "local module loading is not supported (internal/loader is inert)")
	case *ast.LibDecl:
		// Recorded as the program's library name; no further runtime
		// effect (mirrors original_source's Item::LibDecl).
		return nil
	case *ast.StatementItem:
		sig, err := ev.execStmt(it.Stmt)
		if err != nil {
			return err
		}
		_ = sig // a bare top-level `ret` has nowhere to unwind to; ignored
		return nil
	default:
		return nil
	}
}

func (ev *evaluator) declClass(decl *ast.ClassDecl) *axerrors.RuntimeError {
	cls := value.NewClass(decl.Name)
	if decl.Parent != "" {
		parent, ok := ev.rt.Classes[decl.Parent]
		if !ok {
			return axerrors.NewUndefinedClass(decl.Parent)
		}
		cls.Parent = parent
	}
	for _, member := range decl.Body {
		switch m := member.(type) {
		case *ast.MethodMember:
			cls.Methods[m.Name] = &value.Callable{
				Kind:     value.CallableUserDefined,
				Name:     m.Name,
				Params:   m.Params,
				Body:     m.Body,
				Captured: map[string]value.Value{},
			}
		case *ast.FieldMember:
			cls.Fields = append(cls.Fields, value.FieldDecl{Name: m.Name, Default: m.Default})
		}
	}
	ev.rt.Classes[decl.Name] = cls
	return nil
}

func (ev *evaluator) declEnum(decl *ast.EnumDecl) {
	e := &value.Enum{Name: decl.Name}
	for _, v := range decl.Variants {
		e.Variants = append(e.Variants, value.EnumVariantDef{Name: v.Name, HasData: v.HasData})
	}
	ev.rt.Enums[decl.Name] = e
}

// execBlock runs a statement sequence in a fresh pushed frame (a bare
// `{ }` block, the body of an if/while/for statement or a match arm); callers that need
// the enclosing frame reused (function/method bodies) call execStmts
// directly instead.
func (ev *evaluator) execBlock(body []ast.Stmt, seed map[string]value.Value) (*signal, *axerrors.RuntimeError) {
	ev.global.Push(seed)
	defer ev.global.Pop()
	return ev.execStmts(body)
}

func (ev *evaluator) execStmts(body []ast.Stmt) (*signal, *axerrors.RuntimeError) {
	for _, s := range body {
		sig, err := ev.execStmt(s)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

func (ev *evaluator) execStmt(s ast.Stmt) (*signal, *axerrors.RuntimeError) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		_, err := ev.evalExpr(st.Expr)
		return nil, err

	case *ast.LetStmt:
		v, err := ev.evalExpr(st.Value)
		if err != nil {
			return nil, err
		}
		ev.global.Define(st.Name, v)
		return nil, nil

	case *ast.LocalFuncStmt:
		ev.global.Define(st.Name, value.Fun(&value.Callable{
			Kind:     value.CallableUserDefined,
			Name:     st.Name,
			Params:   st.Params,
			Body:     st.Body,
			Captured: ev.global.Snapshot(),
		}))
		return nil, nil

	case *ast.ReturnStmt:
		if st.Value == nil {
			return &signal{returning: true, value: value.Nil()}, nil
		}
		v, err := ev.evalExpr(st.Value)
		if err != nil {
			return nil, err
		}
		return &signal{returning: true, value: v}, nil

	case *ast.IfStmt:
		cond, err := ev.evalExpr(st.Condition)
		if err != nil {
			return nil, err
		}
		if cond.IsTruthy() {
			return ev.execBlock(st.Then, nil)
		}
		if st.Else != nil {
			return ev.execBlock(st.Else, nil)
		}
		return nil, nil

	case *ast.WhileStmt:
		for {
			cond, err := ev.evalExpr(st.Condition)
			if err != nil {
				return nil, err
			}
			if !cond.IsTruthy() {
				return nil, nil
			}
			sig, err := ev.execBlock(st.Body, nil)
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return sig, nil
			}
		}

	case *ast.ForStmt:
		return ev.execFor(st)

	case *ast.BlockStmt:
		return ev.execBlock(st.Body, nil)

	case *ast.GoSpawnStmt:
		return ev.execGoSpawn(st)

	case *ast.MatchStmt:
		return ev.execMatch(st)

	case *ast.OutStmt:
		parts := make([]string, len(st.Arguments))
		for i, a := range st.Arguments {
			v, err := ev.evalExpr(a)
			if err != nil {
				return nil, err
			}
			parts[i] = v.Display()
		}
		fmt.Fprintln(ev.rt.Out, joinSpace(parts))
		return nil, nil

	default:
		return nil, nil
	}
}

func (ev *evaluator) execFor(st *ast.ForStmt) (*signal, *axerrors.RuntimeError) {
	iterable, err := ev.evalExpr(st.Iterable)
	if err != nil {
		return nil, err
	}
	switch iterable.Kind {
	case value.KindLst:
		for _, item := range iterable.Lst.Items() {
			sig, err := ev.execBlock(st.Body, map[string]value.Value{st.Var: item})
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return sig, nil
			}
		}
	case value.KindMap:
		for _, key := range iterable.Map.Keys() {
			sig, err := ev.execBlock(st.Body, map[string]value.Value{st.Var: value.Str(key)})
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return sig, nil
			}
		}
	case value.KindNum:
		n := int(iterable.Num)
		for i := 0; i < n; i++ {
			sig, err := ev.execBlock(st.Body, map[string]value.Value{st.Var: value.Num(float64(i))})
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return sig, nil
			}
		}
	default:
		return nil, axerrors.NewTypeMismatch("Lst, Map, or Num", iterable.TypeName(), st.Iterable.Span())
	}
	return nil, nil
}

// execGoSpawn runs the spawn body on its own goroutine against a
// Runtime-shared global frame, matching the host's worker-isolation
// model (spec.md §5): user code cannot suspend or observe the
// goroutine boundary, it only shares the aliasable Lst/Map/Instance
// containers it closes over. Errors (and a `ret`) raised inside a
// spawned block are discarded: they are neither propagated to the
// spawning statement nor reported. The spawning statement waits for the
// goroutine to finish before it returns.
func (ev *evaluator) execGoSpawn(st *ast.GoSpawnStmt) (*signal, *axerrors.RuntimeError) {
	seed := ev.global.Snapshot()
	done := make(chan struct{})
	go func() {
		defer close(done)
		child := &evaluator{rt: ev.rt, global: NewEnvironment(), self: ev.self}
		child.global.Push(seed)
		child.execStmts(st.Body)
	}()
	<-done
	return nil, nil
}

func (ev *evaluator) execMatch(st *ast.MatchStmt) (*signal, *axerrors.RuntimeError) {
	scrutinee, err := ev.evalExpr(st.Expr)
	if err != nil {
		return nil, err
	}
	for _, arm := range st.Arms {
		seed, matched, err := ev.matchPattern(arm.Pattern, scrutinee)
		if err != nil {
			return nil, err
		}
		if matched {
			return ev.execBlock(arm.Body, seed)
		}
	}
	return nil, nil
}

// matchPattern reports whether pattern matches scrutinee and, if so,
// the bindings the arm body should see (spec.md §4.4 match semantics).
func (ev *evaluator) matchPattern(pat ast.Pattern, scrutinee value.Value) (map[string]value.Value, bool, *axerrors.RuntimeError) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return nil, true, nil

	case *ast.IdentifierPattern:
		return map[string]value.Value{p.Name: scrutinee}, true, nil

	case *ast.LiteralPattern:
		lit, err := ev.evalExpr(p.Value)
		if err != nil {
			return nil, false, err
		}
		return nil, valuesEqual(lit, scrutinee), nil

	case *ast.EnumVariantPattern:
		if scrutinee.Kind != value.KindEnumVariant || scrutinee.EnumName != p.Variant {
			return nil, false, nil
		}
		if p.Binding == "" {
			return nil, true, nil
		}
		payload := value.Nil()
		if scrutinee.EnumData != nil {
			payload = *scrutinee.EnumData
		}
		return map[string]value.Value{p.Binding: payload}, true, nil

	default:
		return nil, false, nil
	}
}

// valuesEqual implements the `==` structural-equality rule: same tag
// compares by value; cross-tag values are never equal (spec.md §4.4).
func valuesEqual(a, b value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case value.KindNum:
		return a.Num == b.Num
	case value.KindStr:
		return a.Str == b.Str
	case value.KindBol:
		return a.Bol == b.Bol
	case value.KindNil:
		return true
	case value.KindEnumVariant:
		if a.EnumName != b.EnumName {
			return false
		}
		ad, bd := value.Nil(), value.Nil()
		if a.EnumData != nil {
			ad = *a.EnumData
		}
		if b.EnumData != nil {
			bd = *b.EnumData
		}
		return valuesEqual(ad, bd)
	default:
		return false
	}
}
