package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiom-lang/axiom/internal/ast"
	"github.com/axiom-lang/axiom/internal/parser"
)

func parse(t *testing.T, source string) []ast.Item {
	t.Helper()
	p, lexErrs := parser.New(source, 0)
	require.Nil(t, lexErrs)
	items, perr := p.Parse()
	require.Nil(t, perr, "parse error: %v", perr)
	return items
}

func TestParseFunctionDecl(t *testing.T) {
	items := parse(t, `fn add(a, b) { ret a + b }`)
	require.Len(t, items, 1)
	fn, ok := items[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)
	_, ok = fn.Body[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseLocalFuncStmtVsFuncExpr(t *testing.T) {
	items := parse(t, `
fn outer() {
	fn named(y) { ret y }
	let anon = fn(z) { ret z }
	ret named(1)
}
`)
	fn := items[0].(*ast.FunctionDecl)
	_, ok := fn.Body[0].(*ast.LocalFuncStmt)
	assert.True(t, ok, "expected `fn named(...)` to parse as a LocalFuncStmt")

	let, ok := fn.Body[1].(*ast.LetStmt)
	require.True(t, ok)
	_, ok = let.Value.(*ast.FuncExpr)
	assert.True(t, ok, "expected `fn(z) {...}` to parse as a FuncExpr")
}

func TestParseArrowLambda(t *testing.T) {
	items := parse(t, `let double = x -> x * 2`)
	let := items[0].(*ast.StatementItem).Stmt.(*ast.LetStmt)
	lam, ok := let.Value.(*ast.LambdaExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, lam.Params)
}

func TestParseMultiParamArrowLambda(t *testing.T) {
	items := parse(t, `let add = (a, b) -> a + b`)
	let := items[0].(*ast.StatementItem).Stmt.(*ast.LetStmt)
	lam, ok := let.Value.(*ast.LambdaExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, lam.Params)
}

func TestParseParenthesizedExpressionNotMistakenForLambda(t *testing.T) {
	items := parse(t, `let r = (1 + 2) * 3`)
	let := items[0].(*ast.StatementItem).Stmt.(*ast.LetStmt)
	bin, ok := let.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", bin.Op)
}

func TestParseIfElse(t *testing.T) {
	items := parse(t, `
fn pick(x) {
	if x { ret "t" } else { ret "f" }
}
`)
	fn := items[0].(*ast.FunctionDecl)
	ifs, ok := fn.Body[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Len(t, ifs.Then, 1)
	assert.Len(t, ifs.Else, 1)
}

func TestParseClassWithParentAndFields(t *testing.T) {
	items := parse(t, `
cls Animal {
	name
	fn speak() { ret "..." }
}
cls Dog ext Animal {
	fn speak() { ret "woof" }
}
`)
	require.Len(t, items, 2)
	dog := items[1].(*ast.ClassDecl)
	assert.Equal(t, "Dog", dog.Name)
	assert.Equal(t, "Animal", dog.Parent)
}

func TestParseEnumDecl(t *testing.T) {
	items := parse(t, `
enum Shape {
	Circle,
	Rect
}
`)
	en := items[0].(*ast.EnumDecl)
	assert.Equal(t, "Shape", en.Name)
	assert.Len(t, en.Variants, 2)
}

func TestParseListLiteralAndIndex(t *testing.T) {
	items := parse(t, `let r = [1, 2, 3][1]`)
	let := items[0].(*ast.StatementItem).Stmt.(*ast.LetStmt)
	idx, ok := let.Value.(*ast.IndexExpr)
	require.True(t, ok)
	lst, ok := idx.Object.(*ast.ListExpr)
	require.True(t, ok)
	assert.Len(t, lst.Items, 3)
}

func TestParseArityMismatchDetectedAtRuntimeNotParse(t *testing.T) {
	// Arity is not a parse-time property; extra call args parse fine.
	items := parse(t, `
fn add(a, b) { ret a + b }
add(1, 2, 3)
`)
	require.Len(t, items, 2)
}

func TestParseErrorOnUnterminatedBlock(t *testing.T) {
	p, lexErrs := parser.New(`fn broken(a) { ret a`, 0)
	require.Nil(t, lexErrs)
	_, perr := p.Parse()
	require.NotNil(t, perr)
}
