package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/axiom-lang/axiom/internal/ast"
	"github.com/axiom-lang/axiom/internal/parser"
)

// Formatter re-prints a parsed Axiom program as canonical source text.
// It never consults spans — only AST shape — so re-parsing its output
// reproduces the same AST modulo spans (spec.md §8's idempotence
// property), the same guarantee axm/src/fmt.rs documents for its own
// printer.
type Formatter struct {
	config *Config
	buf    *strings.Builder
	indent int
}

// New constructs a Formatter; a nil config falls back to DefaultConfig.
func New(config *Config) *Formatter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Formatter{config: config}
}

// Format parses source and returns its canonical rendering.
func (f *Formatter) Format(source string) (string, error) {
	p, lexErrs := parser.New(source, 0)
	if p == nil {
		return "", fmt.Errorf("lexer errors: %v", lexErrs)
	}
	items, perr := p.Parse()
	if perr != nil {
		return "", fmt.Errorf("parse error: %v", perr)
	}
	return f.FormatItems(items), nil
}

// FormatItems renders an already-parsed program.
func (f *Formatter) FormatItems(items []ast.Item) string {
	f.buf = &strings.Builder{}
	f.indent = 0
	for i, item := range items {
		if i > 0 {
			f.buf.WriteByte('\n')
		}
		f.writeItem(item)
	}
	out := f.buf.String()
	if f.config.TrailingNewline && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func (f *Formatter) pad() string { return strings.Repeat(" ", f.indent*f.config.IndentSize) }

func (f *Formatter) line(s string) {
	f.buf.WriteString(f.pad())
	f.buf.WriteString(s)
	f.buf.WriteByte('\n')
}

func (f *Formatter) writeItem(item ast.Item) {
	switch it := item.(type) {
	case *ast.FunctionDecl:
		f.line(fmt.Sprintf("fn %s(%s) {", it.Name, strings.Join(it.Params, ", ")))
		f.indent++
		f.writeStmts(it.Body)
		f.indent--
		f.line("}")
	case *ast.ClassDecl:
		header := "cls " + it.Name
		if it.Parent != "" {
			header += " ext " + it.Parent
		}
		f.line(header + " {")
		f.indent++
		for _, m := range it.Body {
			f.writeClassMember(m)
		}
		f.indent--
		f.line("}")
	case *ast.EnumDecl:
		f.line("enum " + it.Name + " {")
		f.indent++
		for i, v := range it.Variants {
			suffix := ","
			if i == len(it.Variants)-1 {
				suffix = ""
			}
			if v.HasData {
				f.line(v.Name + "()" + suffix)
			} else {
				f.line(v.Name + suffix)
			}
		}
		f.indent--
		f.line("}")
	case *ast.StdImport:
		f.line("std " + it.Name + ";")
	case *ast.LocImport:
		f.line("import " + it.Name + ";")
	case *ast.LibDecl:
		f.line("lib " + it.Name + ";")
	case *ast.StatementItem:
		f.writeStmt(it.Stmt)
	}
}

func (f *Formatter) writeClassMember(m ast.ClassMember) {
	switch mm := m.(type) {
	case *ast.MethodMember:
		f.line(fmt.Sprintf("fn %s(%s) {", mm.Name, strings.Join(mm.Params, ", ")))
		f.indent++
		f.writeStmts(mm.Body)
		f.indent--
		f.line("}")
	case *ast.FieldMember:
		if mm.Default != nil {
			f.line(mm.Name + " = " + f.exprString(mm.Default, 0) + ";")
		} else {
			f.line(mm.Name + ";")
		}
	}
}

func (f *Formatter) writeStmts(body []ast.Stmt) {
	for _, s := range body {
		f.writeStmt(s)
	}
}

func (f *Formatter) writeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		f.line(f.exprString(st.Expr, 0) + ";")
	case *ast.LetStmt:
		f.line("let " + st.Name + " = " + f.exprString(st.Value, 0) + ";")
	case *ast.ReturnStmt:
		if st.Value == nil {
			f.line("ret;")
		} else {
			f.line("ret " + f.exprString(st.Value, 0) + ";")
		}
	case *ast.IfStmt:
		f.line("if " + f.exprString(st.Condition, 0) + " {")
		f.indent++
		f.writeStmts(st.Then)
		f.indent--
		if st.Else != nil {
			f.line("} else {")
			f.indent++
			f.writeStmts(st.Else)
			f.indent--
		}
		f.line("}")
	case *ast.WhileStmt:
		f.line("while " + f.exprString(st.Condition, 0) + " {")
		f.indent++
		f.writeStmts(st.Body)
		f.indent--
		f.line("}")
	case *ast.ForStmt:
		f.line("for " + st.Var + " in " + f.exprString(st.Iterable, 0) + " {")
		f.indent++
		f.writeStmts(st.Body)
		f.indent--
		f.line("}")
	case *ast.BlockStmt:
		f.line("{")
		f.indent++
		f.writeStmts(st.Body)
		f.indent--
		f.line("}")
	case *ast.GoSpawnStmt:
		f.line("go {")
		f.indent++
		f.writeStmts(st.Body)
		f.indent--
		f.line("}")
	case *ast.MatchStmt:
		f.line("match " + f.exprString(st.Expr, 0) + " {")
		f.indent++
		for _, arm := range st.Arms {
			f.line(f.patternString(arm.Pattern) + " -> {")
			f.indent++
			f.writeStmts(arm.Body)
			f.indent--
			f.line("}")
		}
		f.indent--
		f.line("}")
	case *ast.OutStmt:
		parts := make([]string, len(st.Arguments))
		for i, a := range st.Arguments {
			parts[i] = f.exprString(a, 0)
		}
		f.line("out " + strings.Join(parts, ", ") + ";")
	case *ast.LocalFuncStmt:
		f.line(fmt.Sprintf("fn %s(%s) {", st.Name, strings.Join(st.Params, ", ")))
		f.indent++
		f.writeStmts(st.Body)
		f.indent--
		f.line("}")
	}
}

// blockExprString renders a statement body as a standalone indented
// block, for embedding a FuncExpr literal inside a larger expression
// (spec.md §8's curried-lambda scenario).
func (f *Formatter) blockExprString(body []ast.Stmt) string {
	sub := &Formatter{config: f.config, buf: &strings.Builder{}, indent: f.indent + 1}
	sub.writeStmts(body)
	return "{\n" + sub.buf.String() + f.pad() + "}"
}

func (f *Formatter) patternString(p ast.Pattern) string {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return "_"
	case *ast.IdentifierPattern:
		return pat.Name
	case *ast.LiteralPattern:
		return f.exprString(pat.Value, 0)
	case *ast.EnumVariantPattern:
		s := pat.Variant
		if pat.EnumName != "" {
			s = pat.EnumName + "." + s
		}
		if pat.Binding != "" {
			s += "(" + pat.Binding + ")"
		}
		return s
	default:
		return ""
	}
}

// precedence levels mirror the parser's grammar table (spec.md §4.2):
// higher binds tighter. 0 is used for contexts needing no parens.
func precedence(op string) int {
	switch op {
	case "||":
		return 1
	case "&&":
		return 2
	case "==", "!=":
		return 3
	case "<", "<=", ">", ">=":
		return 4
	case "+", "-":
		return 5
	case "*", "/", "%":
		return 6
	default:
		return 9
	}
}

// exprString renders e, adding parens only when e's precedence is lower
// than the surrounding context requires (parentPrec), so output stays
// close to natural while still reparsing to the same AST.
func (f *Formatter) exprString(e ast.Expr, parentPrec int) string {
	switch ex := e.(type) {
	case *ast.NumberExpr:
		return formatNumber(ex.Value)
	case *ast.StringExpr:
		return strconv.Quote(ex.Value)
	case *ast.BooleanExpr:
		return strconv.FormatBool(ex.Value)
	case *ast.NilExpr:
		return "nil"
	case *ast.SelfExpr:
		return "self"
	case *ast.IdentifierExpr:
		return ex.Name
	case *ast.ListExpr:
		parts := make([]string, len(ex.Items))
		for i, it := range ex.Items {
			parts[i] = f.exprString(it, 0)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.InterpolatedStringExpr:
		var b strings.Builder
		b.WriteByte('"')
		for _, part := range ex.Parts {
			if part.Expr == nil {
				b.WriteString(part.Literal)
				continue
			}
			b.WriteString("${" + f.exprString(part.Expr, 0) + "}")
		}
		b.WriteByte('"')
		return b.String()
	case *ast.BinaryExpr:
		prec := precedence(ex.Op)
		s := f.exprString(ex.Left, prec) + " " + ex.Op + " " + f.exprString(ex.Right, prec+1)
		if prec < parentPrec {
			return "(" + s + ")"
		}
		return s
	case *ast.UnaryExpr:
		s := ex.Op + f.exprString(ex.Operand, 7)
		if 7 < parentPrec {
			return "(" + s + ")"
		}
		return s
	case *ast.CallExpr:
		return f.exprString(ex.Function, 8) + "(" + f.exprList(ex.Arguments) + ")"
	case *ast.MethodCallExpr:
		return f.exprString(ex.Object, 8) + "." + ex.Method + "(" + f.exprList(ex.Arguments) + ")"
	case *ast.IndexExpr:
		return f.exprString(ex.Object, 8) + "[" + f.exprString(ex.Index, 0) + "]"
	case *ast.MemberAccessExpr:
		return f.exprString(ex.Object, 8) + "." + ex.Member
	case *ast.AssignExpr:
		return f.exprString(ex.Target, 0) + " = " + f.exprString(ex.Value, 0)
	case *ast.NewExpr:
		return "new " + ex.ClassName + "(" + f.exprList(ex.Arguments) + ")"
	case *ast.LambdaExpr:
		s := "(" + strings.Join(ex.Params, ", ") + ") -> " + f.exprString(ex.Body, 0)
		if parentPrec > 0 {
			return "(" + s + ")"
		}
		return s
	case *ast.FuncExpr:
		return "fn(" + strings.Join(ex.Params, ", ") + ") " + f.blockExprString(ex.Body)
	default:
		return ""
	}
}

func (f *Formatter) exprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = f.exprString(e, 0)
	}
	return strings.Join(parts, ", ")
}

// formatNumber prints an integral float without a decimal point,
// matching Value.Display's convention so formatted literals read the
// way the evaluator would print them.
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// FormatFile formats content (the text of the file at path) and returns
// the result; path itself is not read.
func FormatFile(path string, content string, config *Config) (string, error) {
	return New(config).Format(content)
}
