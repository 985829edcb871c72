package interp

import (
	"math"
	"strings"

	"github.com/axiom-lang/axiom/internal/ast"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/value"
)

func (ev *evaluator) evalExpr(e ast.Expr) (value.Value, *axerrors.RuntimeError) {
	switch ex := e.(type) {
	case *ast.NumberExpr:
		return value.Num(ex.Value), nil
	case *ast.StringExpr:
		return value.Str(ex.Value), nil
	case *ast.BooleanExpr:
		return value.Bol(ex.Value), nil
	case *ast.NilExpr:
		return value.Nil(), nil
	case *ast.SelfExpr:
		if ev.self == nil {
			return value.Value{}, axerrors.NewGenericError("'self' used outside a method body", ex.Sp)
		}
		return value.InstanceVal(ev.self), nil
	case *ast.IdentifierExpr:
		return ev.evalIdentifier(ex)
	case *ast.ListExpr:
		return ev.evalList(ex)
	case *ast.InterpolatedStringExpr:
		return ev.evalInterpolated(ex)
	case *ast.BinaryExpr:
		return ev.evalBinary(ex)
	case *ast.UnaryExpr:
		return ev.evalUnary(ex)
	case *ast.CallExpr:
		return ev.evalCall(ex)
	case *ast.MethodCallExpr:
		return ev.evalMethodCall(ex)
	case *ast.IndexExpr:
		return ev.evalIndex(ex)
	case *ast.MemberAccessExpr:
		return ev.evalMemberAccess(ex)
	case *ast.AssignExpr:
		return ev.evalAssign(ex)
	case *ast.NewExpr:
		return ev.evalNew(ex)
	case *ast.LambdaExpr:
		return ev.evalLambda(ex)
	case *ast.FuncExpr:
		return ev.evalFuncExpr(ex)
	default:
		return value.Value{}, axerrors.NewGenericError("unhandled expression node", axerrors.ZeroSpan)
	}
}

func (ev *evaluator) evalIdentifier(ex *ast.IdentifierExpr) (value.Value, *axerrors.RuntimeError) {
	if v, ok := ev.global.Get(ex.Name); ok {
		return v, nil
	}
	if v, ok := ev.rt.Globals[ex.Name]; ok {
		return v, nil
	}
	if _, ok := ev.rt.Modules[ex.Name]; ok {
		return value.Obj(value.NewObject(ex.Name)), nil
	}
	return value.Value{}, axerrors.NewUndefinedVariable(ex.Name, ex.Sp)
}

func (ev *evaluator) evalList(ex *ast.ListExpr) (value.Value, *axerrors.RuntimeError) {
	items := make([]value.Value, len(ex.Items))
	for i, it := range ex.Items {
		v, err := ev.evalExpr(it)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}
	return value.Lst(value.NewList(items)), nil
}

func (ev *evaluator) evalInterpolated(ex *ast.InterpolatedStringExpr) (value.Value, *axerrors.RuntimeError) {
	var b strings.Builder
	for _, part := range ex.Parts {
		if part.Expr == nil {
			b.WriteString(part.Literal)
			continue
		}
		v, err := ev.evalExpr(part.Expr)
		if err != nil {
			return value.Value{}, err
		}
		b.WriteString(v.Display())
	}
	return value.Str(b.String()), nil
}

func (ev *evaluator) evalUnary(ex *ast.UnaryExpr) (value.Value, *axerrors.RuntimeError) {
	operand, err := ev.evalExpr(ex.Operand)
	if err != nil {
		return value.Value{}, err
	}
	switch ex.Op {
	case "-":
		if operand.Kind != value.KindNum {
			return value.Value{}, axerrors.NewTypeMismatch("Num", operand.TypeName(), ex.Sp)
		}
		return value.Num(-operand.Num), nil
	case "!":
		return value.Bol(!operand.IsTruthy()), nil
	default:
		return value.Value{}, axerrors.NewGenericError("unknown unary operator "+ex.Op, ex.Sp)
	}
}

// evalBinary implements arithmetic/comparison/logical semantics
// (spec.md §4.4): `+` concatenates when either operand is a string,
// `&&`/`||` short-circuit and return the last-evaluated operand.
func (ev *evaluator) evalBinary(ex *ast.BinaryExpr) (value.Value, *axerrors.RuntimeError) {
	if ex.Op == "&&" {
		left, err := ev.evalExpr(ex.Left)
		if err != nil {
			return value.Value{}, err
		}
		if !left.IsTruthy() {
			return left, nil
		}
		return ev.evalExpr(ex.Right)
	}
	if ex.Op == "||" {
		left, err := ev.evalExpr(ex.Left)
		if err != nil {
			return value.Value{}, err
		}
		if left.IsTruthy() {
			return left, nil
		}
		return ev.evalExpr(ex.Right)
	}

	left, err := ev.evalExpr(ex.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := ev.evalExpr(ex.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch ex.Op {
	case "+":
		if left.Kind == value.KindStr || right.Kind == value.KindStr {
			return value.Str(left.Display() + right.Display()), nil
		}
		if left.Kind != value.KindNum || right.Kind != value.KindNum {
			return value.Value{}, axerrors.NewTypeMismatch("Num", mismatchedType(left, right), ex.Sp)
		}
		return value.Num(left.Num + right.Num), nil
	case "-", "*", "/", "%":
		if left.Kind != value.KindNum || right.Kind != value.KindNum {
			return value.Value{}, axerrors.NewTypeMismatch("Num", mismatchedType(left, right), ex.Sp)
		}
		switch ex.Op {
		case "-":
			return value.Num(left.Num - right.Num), nil
		case "*":
			return value.Num(left.Num * right.Num), nil
		case "/":
			if right.Num == 0 {
				return value.Value{}, axerrors.NewDivisionByZero(ex.Sp)
			}
			return value.Num(left.Num / right.Num), nil
		case "%":
			if right.Num == 0 {
				return value.Value{}, axerrors.NewDivisionByZero(ex.Sp)
			}
			return value.Num(math.Mod(left.Num, right.Num)), nil
		}
	case "==":
		return value.Bol(valuesEqual(left, right)), nil
	case "!=":
		return value.Bol(!valuesEqual(left, right)), nil
	case "<", "<=", ">", ">=":
		return ev.evalComparison(ex.Op, left, right, ex.Sp)
	}
	return value.Value{}, axerrors.NewGenericError("unknown binary operator "+ex.Op, ex.Sp)
}

func mismatchedType(left, right value.Value) string {
	if left.Kind != value.KindNum {
		return left.TypeName()
	}
	return right.TypeName()
}

func (ev *evaluator) evalComparison(op string, left, right value.Value, sp axerrors.Span) (value.Value, *axerrors.RuntimeError) {
	if left.Kind != right.Kind || (left.Kind != value.KindNum && left.Kind != value.KindStr) {
		return value.Value{}, axerrors.NewTypeMismatch("Num or Str", left.TypeName()+"/"+right.TypeName(), sp)
	}
	var lt, eq bool
	if left.Kind == value.KindNum {
		lt, eq = left.Num < right.Num, left.Num == right.Num
	} else {
		lt, eq = left.Str < right.Str, left.Str == right.Str
	}
	switch op {
	case "<":
		return value.Bol(lt), nil
	case "<=":
		return value.Bol(lt || eq), nil
	case ">":
		return value.Bol(!lt && !eq), nil
	case ">=":
		return value.Bol(!lt), nil
	}
	return value.Value{}, axerrors.NewGenericError("unknown comparison operator "+op, sp)
}

func (ev *evaluator) evalIndex(ex *ast.IndexExpr) (value.Value, *axerrors.RuntimeError) {
	obj, err := ev.evalExpr(ex.Object)
	if err != nil {
		return value.Value{}, err
	}
	idx, err := ev.evalExpr(ex.Index)
	if err != nil {
		return value.Value{}, err
	}
	switch obj.Kind {
	case value.KindLst:
		if idx.Kind != value.KindNum {
			return value.Value{}, axerrors.NewTypeMismatch("Num", idx.TypeName(), ex.Sp)
		}
		i := int(idx.Num)
		if i < 0 {
			return value.Value{}, axerrors.NewIndexOutOfBounds(i, obj.Lst.Len())
		}
		v, ok := obj.Lst.Get(i)
		if !ok {
			return value.Value{}, axerrors.NewIndexOutOfBounds(i, obj.Lst.Len())
		}
		return v, nil
	case value.KindMap:
		if idx.Kind != value.KindStr {
			return value.Value{}, axerrors.NewTypeMismatch("Str", idx.TypeName(), ex.Sp)
		}
		v, ok := obj.Map.Get(idx.Str)
		if !ok {
			return value.Nil(), nil
		}
		return v, nil
	case value.KindStr:
		if idx.Kind != value.KindNum {
			return value.Value{}, axerrors.NewTypeMismatch("Num", idx.TypeName(), ex.Sp)
		}
		runes := []rune(obj.Str)
		i := int(idx.Num)
		if i < 0 || i >= len(runes) {
			return value.Value{}, axerrors.NewIndexOutOfBounds(i, len(runes))
		}
		return value.Str(string(runes[i])), nil
	default:
		return value.Value{}, axerrors.NewTypeMismatch("Lst, Map, or Str", obj.TypeName(), ex.Sp)
	}
}

// enumVariantDef looks up the named enum's variant, reporting whether a
// bare identifier names a declared enum at all (so callers can fall back
// to ordinary variable/module resolution otherwise).
func (ev *evaluator) enumVariantDef(ex ast.Expr) (*value.Enum, bool) {
	ident, ok := ex.(*ast.IdentifierExpr)
	if !ok {
		return nil, false
	}
	if _, shadowed := ev.global.Get(ident.Name); shadowed {
		return nil, false
	}
	if _, shadowed := ev.rt.Globals[ident.Name]; shadowed {
		return nil, false
	}
	e, ok := ev.rt.Enums[ident.Name]
	return e, ok
}

// buildEnumVariant constructs an EnumVariant value for `EnumName.Variant`
// (no payload) or `EnumName.Variant(payload)` (MethodCallExpr form, since
// the parser emits a method call whenever `.Name` is followed by `(`),
// per spec.md §3/§4.4's enum-variant value shape.
func buildEnumVariant(e *value.Enum, variant string, args []value.Value, sp axerrors.Span) (value.Value, *axerrors.RuntimeError) {
	for _, v := range e.Variants {
		if v.Name != variant {
			continue
		}
		if v.HasData {
			if len(args) != 1 {
				return value.Value{}, axerrors.NewArityMismatch(1, len(args))
			}
			return value.EnumVariant(variant, args[0]), nil
		}
		if len(args) != 0 {
			return value.Value{}, axerrors.NewArityMismatch(0, len(args))
		}
		return value.EnumVariant(variant, value.Nil()), nil
	}
	return value.Value{}, axerrors.NewUndefinedMethod(e.Name, variant)
}

func (ev *evaluator) evalMemberAccess(ex *ast.MemberAccessExpr) (value.Value, *axerrors.RuntimeError) {
	if e, ok := ev.enumVariantDef(ex.Object); ok {
		return buildEnumVariant(e, ex.Member, nil, ex.Sp)
	}
	obj, err := ev.evalExpr(ex.Object)
	if err != nil {
		return value.Value{}, err
	}
	if obj.Kind == value.KindInstance {
		if v, ok := obj.Instance.GetField(ex.Member); ok {
			return v, nil
		}
		if m, ok := obj.Instance.ResolveMethod(ex.Member); ok {
			return value.Fun(m), nil
		}
		return value.Value{}, axerrors.NewUndefinedMethod(obj.Instance.Class.Name, ex.Member)
	}
	return value.Value{}, axerrors.NewTypeMismatch("Instance", obj.TypeName(), ex.Sp)
}

func (ev *evaluator) evalAssign(ex *ast.AssignExpr) (value.Value, *axerrors.RuntimeError) {
	v, err := ev.evalExpr(ex.Value)
	if err != nil {
		return value.Value{}, err
	}
	switch target := ex.Target.(type) {
	case *ast.IdentifierExpr:
		if ev.global.Assign(target.Name, v) {
			return v, nil
		}
		// No existing binding anywhere: falls through to the global
		// frame, per spec.md §4.4 ("rebinds nearest existing binding,
		// else globals").
		ev.rt.Globals[target.Name] = v
		return v, nil

	case *ast.IndexExpr:
		obj, err := ev.evalExpr(target.Object)
		if err != nil {
			return value.Value{}, err
		}
		idx, err := ev.evalExpr(target.Index)
		if err != nil {
			return value.Value{}, err
		}
		switch obj.Kind {
		case value.KindLst:
			i := int(idx.Num)
			if !obj.Lst.Set(i, v) {
				return value.Value{}, axerrors.NewIndexOutOfBounds(i, obj.Lst.Len())
			}
		case value.KindMap:
			obj.Map.Set(idx.Str, v)
		default:
			return value.Value{}, axerrors.NewTypeMismatch("Lst or Map", obj.TypeName(), target.Sp)
		}
		return v, nil

	case *ast.MemberAccessExpr:
		obj, err := ev.evalExpr(target.Object)
		if err != nil {
			return value.Value{}, err
		}
		if obj.Kind != value.KindInstance {
			return value.Value{}, axerrors.NewTypeMismatch("Instance", obj.TypeName(), target.Sp)
		}
		obj.Instance.SetField(target.Member, v)
		return v, nil

	default:
		return value.Value{}, axerrors.NewGenericError("invalid assignment target", ex.Sp)
	}
}

func (ev *evaluator) evalLambda(ex *ast.LambdaExpr) (value.Value, *axerrors.RuntimeError) {
	return value.Fun(&value.Callable{
		Kind:     value.CallableUserDefined,
		Params:   ex.Params,
		Body:     []ast.Stmt{&ast.ReturnStmt{Value: ex.Body, Sp: ex.Sp}},
		Captured: ev.global.Snapshot(),
	}), nil
}

// evalFuncExpr builds a closure from an anonymous block-bodied function
// literal, capturing the enclosing scope by value at definition time
// (spec.md §8's curried-lambda scenario), matching evalLambda's capture
// rule but using the literal's own statement body instead of wrapping a
// single expression in a synthetic return.
func (ev *evaluator) evalFuncExpr(ex *ast.FuncExpr) (value.Value, *axerrors.RuntimeError) {
	return value.Fun(&value.Callable{
		Kind:     value.CallableUserDefined,
		Params:   ex.Params,
		Body:     ex.Body,
		Captured: ev.global.Snapshot(),
	}), nil
}

func (ev *evaluator) evalNew(ex *ast.NewExpr) (value.Value, *axerrors.RuntimeError) {
	cls, ok := ev.rt.Classes[ex.ClassName]
	if !ok {
		return value.Value{}, axerrors.NewUndefinedClass(ex.ClassName)
	}
	inst := &value.Instance{Class: cls, Fields: value.NewMap()}
	if err := ev.initInstanceFields(cls, inst); err != nil {
		return value.Value{}, err
	}
	if init, ok := cls.ResolveMethod("init"); ok {
		args := make([]value.Value, len(ex.Arguments))
		for i, a := range ex.Arguments {
			v, err := ev.evalExpr(a)
			if err != nil {
				return value.Value{}, err
			}
			args[i] = v
		}
		if _, err := ev.callUserDefined(init.Bind(inst), args, ex.Sp); err != nil {
			return value.Value{}, err
		}
	}
	return value.InstanceVal(inst), nil
}

// initInstanceFields walks the class hierarchy parent-first, evaluating
// each field's default-expression (or Nil when absent) into inst, so a
// subclass field of the same name overwrites its parent's value — the
// "each defaulting to Nil unless shadowed" rule of spec.md §3.
func (ev *evaluator) initInstanceFields(cls *value.Class, inst *value.Instance) *axerrors.RuntimeError {
	if cls.Parent != nil {
		if err := ev.initInstanceFields(cls.Parent, inst); err != nil {
			return err
		}
	}
	for _, f := range cls.Fields {
		v := value.Nil()
		if f.Default != nil {
			var err *axerrors.RuntimeError
			v, err = ev.evalExpr(f.Default)
			if err != nil {
				return err
			}
		}
		inst.SetField(f.Name, v)
	}
	return nil
}

func (ev *evaluator) evalCall(ex *ast.CallExpr) (value.Value, *axerrors.RuntimeError) {
	args := make([]value.Value, len(ex.Arguments))
	for i, a := range ex.Arguments {
		v, err := ev.evalExpr(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	callee, err := ev.evalExpr(ex.Function)
	if err != nil {
		return value.Value{}, err
	}
	return ev.invoke(callee, args, ex.Function, ex.Sp)
}

func (ev *evaluator) evalMethodCall(ex *ast.MethodCallExpr) (value.Value, *axerrors.RuntimeError) {
	args := make([]value.Value, len(ex.Arguments))
	for i, a := range ex.Arguments {
		v, err := ev.evalExpr(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	if e, ok := ev.enumVariantDef(ex.Object); ok {
		return buildEnumVariant(e, ex.Method, args, ex.Sp)
	}

	if ident, ok := ex.Object.(*ast.IdentifierExpr); ok {
		if mod, ok := ev.rt.Modules[ident.Name]; ok {
			fn, ok := mod.Functions[ex.Method]
			if !ok {
				return value.Value{}, axerrors.NewUndefinedFunction(ident.Name+"."+ex.Method, ex.Sp)
			}
			v, e := fn(args)
			if e != nil {
				if re, ok := e.(*axerrors.RuntimeError); ok {
					return value.Value{}, re
				}
				return value.Value{}, axerrors.NewGenericError(e.Error(), ex.Sp)
			}
			return v, nil
		}
	}

	obj, err := ev.evalExpr(ex.Object)
	if err != nil {
		return value.Value{}, err
	}

	if obj.Kind == value.KindStr {
		return callStringMethod(obj.Str, ex.Method, args, ex.Sp)
	}

	if obj.Kind == value.KindInstance {
		m, ok := obj.Instance.ResolveMethod(ex.Method)
		if !ok {
			return value.Value{}, axerrors.NewUndefinedMethod(obj.Instance.Class.Name, ex.Method)
		}
		return ev.callUserDefined(m, args, ex.Sp)
	}

	return value.Value{}, axerrors.NewUndefinedMethod(obj.TypeName(), ex.Method)
}

func (ev *evaluator) invoke(callee value.Value, args []value.Value, calleeExpr ast.Expr, sp axerrors.Span) (value.Value, *axerrors.RuntimeError) {
	if callee.Kind == value.KindNil {
		hint := ""
		if ident, ok := calleeExpr.(*ast.IdentifierExpr); ok {
			hint = ident.Name
		}
		return value.Value{}, axerrors.NewNilCall(hint, sp)
	}
	if callee.Kind != value.KindFun {
		return value.Value{}, axerrors.NewNotCallable(callee.TypeName(), sp)
	}
	if callee.Fun.Kind == value.CallableNative {
		v, err := callee.Fun.Native(args)
		if err != nil {
			if re, ok := err.(*axerrors.RuntimeError); ok {
				return value.Value{}, re
			}
			return value.Value{}, axerrors.NewGenericError(err.Error(), sp)
		}
		return v, nil
	}
	return ev.callUserDefined(callee.Fun, args, sp)
}

// callUserDefined runs a user-defined Callable's body in a new frame
// seeded with its captured environment plus parameter bindings,
// enforcing arity and the stack-overflow recursion limit (spec.md
// §4.4's function-call and stack-overflow rules).
func (ev *evaluator) callUserDefined(c *value.Callable, args []value.Value, sp axerrors.Span) (value.Value, *axerrors.RuntimeError) {
	if len(args) != len(c.Params) {
		return value.Value{}, axerrors.NewArityMismatch(len(c.Params), len(args))
	}
	ev.rt.callDepth++
	defer func() { ev.rt.callDepth-- }()
	if ev.rt.callDepth > ev.rt.MaxDepth {
		return value.Value{}, axerrors.NewGenericError("stack overflow", sp)
	}

	seed := make(map[string]value.Value, len(c.Captured)+len(c.Params)+1)
	for k, v := range c.Captured {
		seed[k] = v
	}
	for i, p := range c.Params {
		seed[p] = args[i]
	}

	callEnv := NewEnvironment()
	callEnv.frames[0] = seed
	child := &evaluator{rt: ev.rt, global: callEnv, self: ev.self}
	if c.BoundSelf != nil {
		child.self = c.BoundSelf
	}

	sig, err := child.execStmts(c.Body)
	if err != nil {
		return value.Value{}, err
	}
	if sig != nil && sig.returning {
		return sig.value, nil
	}
	return value.Nil(), nil
}

func callStringMethod(s, method string, args []value.Value, sp axerrors.Span) (value.Value, *axerrors.RuntimeError) {
	switch method {
	case "upper":
		return value.Str(strings.ToUpper(s)), nil
	case "lower":
		return value.Str(strings.ToLower(s)), nil
	case "trim":
		return value.Str(strings.TrimSpace(s)), nil
	case "len":
		return value.Num(float64(len([]rune(s)))), nil
	case "split":
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, axerrors.NewTypeMismatch("Str", "other", sp)
		}
		parts := strings.Split(s, args[0].Str)
		items := make([]value.Value, len(parts))
		for i, p := range parts {
			items[i] = value.Str(p)
		}
		return value.Lst(value.NewList(items)), nil
	default:
		return value.Value{}, axerrors.NewUndefinedMethod("Str", method)
	}
}
