// Package checker implements the semantic checker (spec.md §4.3): a
// non-fatal pass over a parsed program that reports undefined
// references, duplicate definitions, arity mismatches against known
// user functions, missing methods on known classes, and obvious type
// errors. It never aborts — callers (the `chk` CLI command) decide
// whether any Error-level diagnostic is fatal.
package checker

import (
	"fmt"

	"github.com/axiom-lang/axiom/internal/ast"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
)

// scope is a single lexical frame of known names during the check
// walk; a stack of these tracks let-bindings and function parameters
// without evaluating anything.
type scope struct {
	names map[string]bool
}

func newScope() *scope { return &scope{names: make(map[string]bool)} }

// Checker accumulates diagnostics while walking a program. Unlike the
// evaluator it never executes anything — symbol tables are built by a
// single forward pass over top-level items first, so forward
// references to functions/classes/enums declared later in the file
// never misreport as undefined.
type Checker struct {
	diags     []axerrors.Diagnostic
	functions map[string]*ast.FunctionDecl
	classes   map[string]*ast.ClassDecl
	enums     map[string]*ast.EnumDecl
	scopes    []*scope
}

// New constructs an empty Checker.
func New() *Checker {
	return &Checker{
		functions: make(map[string]*ast.FunctionDecl),
		classes:   make(map[string]*ast.ClassDecl),
		enums:     make(map[string]*ast.EnumDecl),
	}
}

// Check walks items and returns every diagnostic gathered. It never
// returns an error — only the diagnostics list communicates findings.
func Check(items []ast.Item) []axerrors.Diagnostic {
	c := New()
	c.collectDecls(items)
	c.pushScope()
	for _, item := range items {
		c.checkItem(item)
	}
	c.popScope()
	return c.diags
}

func (c *Checker) pushScope() { c.scopes = append(c.scopes, newScope()) }
func (c *Checker) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *Checker) define(name string) {
	c.scopes[len(c.scopes)-1].names[name] = true
}

func (c *Checker) isDefined(name string) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i].names[name] {
			return true
		}
	}
	return false
}

func (c *Checker) report(level axerrors.DiagnosticLevel, msg string, sp axerrors.Span, hint string) {
	c.diags = append(c.diags, axerrors.Diagnostic{Level: level, Message: msg, Span: sp, Hint: hint})
}

// collectDecls populates the function/class/enum tables and flags
// duplicate top-level definitions before any name-resolution walk.
func (c *Checker) collectDecls(items []ast.Item) {
	for _, item := range items {
		switch it := item.(type) {
		case *ast.FunctionDecl:
			if _, dup := c.functions[it.Name]; dup {
				c.report(axerrors.DiagError, fmt.Sprintf("duplicate function %q", it.Name), it.Sp, "")
				continue
			}
			c.functions[it.Name] = it
		case *ast.ClassDecl:
			if _, dup := c.classes[it.Name]; dup {
				c.report(axerrors.DiagError, fmt.Sprintf("duplicate class %q", it.Name), it.Sp, "")
				continue
			}
			c.classes[it.Name] = it
		case *ast.EnumDecl:
			if _, dup := c.enums[it.Name]; dup {
				c.report(axerrors.DiagError, fmt.Sprintf("duplicate enum %q", it.Name), it.Sp, "")
				continue
			}
			c.enums[it.Name] = it
		}
	}
}

func (c *Checker) checkItem(item ast.Item) {
	switch it := item.(type) {
	case *ast.FunctionDecl:
		c.checkFunctionDecl(it)
	case *ast.ClassDecl:
		c.checkClassDecl(it)
	case *ast.EnumDecl:
		// Enum variants carry no executable body; nothing to walk.
	case *ast.StdImport, *ast.LocImport, *ast.LibDecl:
		// Import/lib declarations are inert for checking purposes.
	case *ast.StatementItem:
		c.checkStmt(it.Stmt)
	}
}

func (c *Checker) checkFunctionDecl(fn *ast.FunctionDecl) {
	c.pushScope()
	for _, p := range fn.Params {
		c.define(p)
	}
	for _, s := range fn.Body {
		c.checkStmt(s)
	}
	c.popScope()
}

func (c *Checker) checkClassDecl(cd *ast.ClassDecl) {
	if cd.Parent != "" {
		if _, ok := c.classes[cd.Parent]; !ok {
			c.report(axerrors.Warning, fmt.Sprintf("class %q extends undefined class %q", cd.Name, cd.Parent), cd.Sp, "")
		}
	}
	for _, member := range cd.Body {
		switch m := member.(type) {
		case *ast.MethodMember:
			c.pushScope()
			c.define("self")
			for _, p := range m.Params {
				c.define(p)
			}
			for _, s := range m.Body {
				c.checkStmt(s)
			}
			c.popScope()
		case *ast.FieldMember:
			if m.Default != nil {
				c.checkExpr(m.Default)
			}
		}
	}
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.LetStmt:
		c.checkExpr(st.Value)
		c.define(st.Name)
	case *ast.LocalFuncStmt:
		c.define(st.Name)
		c.pushScope()
		for _, p := range st.Params {
			c.define(p)
		}
		for _, b := range st.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.ExprStmt:
		c.checkExpr(st.Expr)
	case *ast.ReturnStmt:
		if st.Value != nil {
			c.checkExpr(st.Value)
		}
	case *ast.IfStmt:
		c.checkExpr(st.Condition)
		c.pushScope()
		for _, b := range st.Then {
			c.checkStmt(b)
		}
		c.popScope()
		c.pushScope()
		for _, b := range st.Else {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.WhileStmt:
		c.checkExpr(st.Condition)
		c.pushScope()
		for _, b := range st.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.ForStmt:
		c.checkExpr(st.Iterable)
		c.pushScope()
		c.define(st.Var)
		for _, b := range st.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.BlockStmt:
		c.pushScope()
		for _, b := range st.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.GoSpawnStmt:
		c.pushScope()
		for _, b := range st.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.OutStmt:
		for _, a := range st.Arguments {
			c.checkExpr(a)
		}
	case *ast.MatchStmt:
		c.checkExpr(st.Expr)
		for _, arm := range st.Arms {
			c.pushScope()
			c.bindPattern(arm.Pattern)
			for _, b := range arm.Body {
				c.checkStmt(b)
			}
			c.popScope()
		}
	}
}

func (c *Checker) bindPattern(p ast.Pattern) {
	switch pat := p.(type) {
	case *ast.IdentifierPattern:
		c.define(pat.Name)
	case *ast.EnumVariantPattern:
		if pat.EnumName != "" {
			if en, ok := c.enums[pat.EnumName]; ok {
				if !hasVariant(en, pat.Variant) {
					c.report(axerrors.Warning, fmt.Sprintf("enum %q has no variant %q", pat.EnumName, pat.Variant), axerrors.ZeroSpan, "")
				}
			} else {
				c.report(axerrors.Warning, fmt.Sprintf("undefined enum %q", pat.EnumName), axerrors.ZeroSpan, "")
			}
		}
		if pat.Binding != "" {
			c.define(pat.Binding)
		}
	}
}

func hasVariant(en *ast.EnumDecl, name string) bool {
	for _, v := range en.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

func (c *Checker) checkExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IdentifierExpr:
		if !c.isDefined(ex.Name) {
			_, isFn := c.functions[ex.Name]
			_, isEnum := c.enums[ex.Name]
			if !isFn && !isEnum {
				c.report(axerrors.Warning, fmt.Sprintf("undefined reference %q", ex.Name), ex.Sp, "checked before run — may resolve to a module or intrinsic at runtime")
			}
		}
	case *ast.CallExpr:
		c.checkExpr(ex.Function)
		for _, a := range ex.Arguments {
			c.checkExpr(a)
		}
		if ident, ok := ex.Function.(*ast.IdentifierExpr); ok {
			if fn, ok := c.functions[ident.Name]; ok && len(fn.Params) != len(ex.Arguments) {
				c.report(axerrors.DiagError, fmt.Sprintf("%q expects %d argument(s), got %d", ident.Name, len(fn.Params), len(ex.Arguments)), ex.Sp, "")
			}
		}
	case *ast.MethodCallExpr:
		c.checkExpr(ex.Object)
		for _, a := range ex.Arguments {
			c.checkExpr(a)
		}
		if ident, ok := ex.Object.(*ast.IdentifierExpr); ok {
			if cls, ok := c.classes[ident.Name]; ok && !classHasMethod(cls, c.classes, ex.Method) {
				c.report(axerrors.Warning, fmt.Sprintf("class %q has no method %q", ident.Name, ex.Method), ex.Sp, "")
			}
			if en, ok := c.enums[ident.Name]; ok && !hasVariant(en, ex.Method) {
				c.report(axerrors.Warning, fmt.Sprintf("enum %q has no variant %q", ident.Name, ex.Method), ex.Sp, "")
			}
		}
	case *ast.IndexExpr:
		c.checkExpr(ex.Object)
		c.checkExpr(ex.Index)
	case *ast.MemberAccessExpr:
		if ident, ok := ex.Object.(*ast.IdentifierExpr); ok {
			if en, ok := c.enums[ident.Name]; ok {
				if !hasVariant(en, ex.Member) {
					c.report(axerrors.Warning, fmt.Sprintf("enum %q has no variant %q", ident.Name, ex.Member), ex.Sp, "")
				}
				return
			}
		}
		c.checkExpr(ex.Object)
	case *ast.AssignExpr:
		c.checkExpr(ex.Value)
		c.checkExpr(ex.Target)
	case *ast.BinaryExpr:
		c.checkExpr(ex.Left)
		c.checkExpr(ex.Right)
		checkObviousTypeMismatch(c, ex)
	case *ast.UnaryExpr:
		c.checkExpr(ex.Operand)
	case *ast.ListExpr:
		for _, it := range ex.Items {
			c.checkExpr(it)
		}
	case *ast.InterpolatedStringExpr:
		for _, part := range ex.Parts {
			if part.Expr != nil {
				c.checkExpr(part.Expr)
			}
		}
	case *ast.LambdaExpr:
		c.pushScope()
		for _, p := range ex.Params {
			c.define(p)
		}
		c.checkExpr(ex.Body)
		c.popScope()
	case *ast.FuncExpr:
		c.pushScope()
		for _, p := range ex.Params {
			c.define(p)
		}
		for _, b := range ex.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.NewExpr:
		if _, ok := c.classes[ex.ClassName]; !ok {
			c.report(axerrors.Warning, fmt.Sprintf("new of undefined class %q", ex.ClassName), ex.Sp, "")
		}
		for _, a := range ex.Arguments {
			c.checkExpr(a)
		}
	case *ast.NumberExpr, *ast.StringExpr, *ast.BooleanExpr, *ast.NilExpr, *ast.SelfExpr:
		// Literals carry nothing further to check.
	}
}

// checkObviousTypeMismatch flags binary expressions whose operands are
// both known literals of incompatible kinds — the "obvious type
// errors" spec.md §4.3 asks for, not full inference.
func checkObviousTypeMismatch(c *Checker, ex *ast.BinaryExpr) {
	_, lIsNum := ex.Left.(*ast.NumberExpr)
	_, rIsNum := ex.Right.(*ast.NumberExpr)
	_, lIsStr := ex.Left.(*ast.StringExpr)
	_, rIsStr := ex.Right.(*ast.StringExpr)
	if ex.Op == "+" {
		return // string/num "+" is valid for both per spec.md §4.4
	}
	if (lIsNum && rIsStr) || (lIsStr && rIsNum) {
		c.report(axerrors.Warning, fmt.Sprintf("operator %q mixes Num and Str literals", ex.Op), ex.Sp, "")
	}
}

func classHasMethod(cls *ast.ClassDecl, classes map[string]*ast.ClassDecl, method string) bool {
	for cur := cls; cur != nil; {
		for _, m := range cur.Body {
			if mm, ok := m.(*ast.MethodMember); ok && mm.Name == method {
				return true
			}
		}
		if cur.Parent == "" {
			break
		}
		cur = classes[cur.Parent]
	}
	return false
}
