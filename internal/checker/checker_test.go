package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiom-lang/axiom/internal/checker"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/parser"
)

func check(t *testing.T, source string) []axerrors.Diagnostic {
	t.Helper()
	p, lexErrs := parser.New(source, 0)
	require.Nil(t, lexErrs)
	items, perr := p.Parse()
	require.Nil(t, perr)
	return checker.Check(items)
}

func TestCheckCleanProgramHasNoDiagnostics(t *testing.T) {
	diags := check(t, `
fn add(a, b) { ret a + b }
let r = add(1, 2)
`)
	assert.Empty(t, diags)
}

func TestCheckUndefinedReference(t *testing.T) {
	diags := check(t, `let r = undefined_name + 1`)
	require.NotEmpty(t, diags)
	assert.Equal(t, axerrors.Warning, diags[0].Level)
}

func TestCheckDuplicateFunction(t *testing.T) {
	diags := check(t, `
fn add(a, b) { ret a + b }
fn add(a, b) { ret a - b }
`)
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Level == axerrors.DiagError {
			found = true
		}
	}
	assert.True(t, found, "expected an Error-level diagnostic for the duplicate function")
}

func TestCheckArityMismatchAgainstKnownFunction(t *testing.T) {
	diags := check(t, `
fn add(a, b) { ret a + b }
add(1, 2, 3)
`)
	require.NotEmpty(t, diags)
	assert.Equal(t, axerrors.DiagError, diags[0].Level)
}

func TestCheckForwardReferenceToLaterFunction(t *testing.T) {
	// collectDecls runs before the name-resolution walk, so calling a
	// function declared later in the file is never flagged.
	diags := check(t, `
fn caller() { ret callee() }
fn callee() { ret 1 }
`)
	assert.Empty(t, diags)
}

func TestCheckClassExtendsUndefinedParent(t *testing.T) {
	diags := check(t, `cls Dog ext Animal { fn speak() { ret "woof" } }`)
	require.NotEmpty(t, diags)
	assert.Equal(t, axerrors.Warning, diags[0].Level)
}

func TestCheckLocalFuncStmtDefinesNameInEnclosingScope(t *testing.T) {
	diags := check(t, `
fn outer() {
	fn helper(y) { ret y }
	ret helper(1)
}
`)
	assert.Empty(t, diags)
}

func TestCheckFuncExprParamsScoped(t *testing.T) {
	diags := check(t, `let m = fn(x) { ret fn(y) { ret x * y } }`)
	assert.Empty(t, diags)
}

func TestCheckEnumVariantConstructionNotFlagged(t *testing.T) {
	diags := check(t, `
enum Status { Active, Failed(reason) }
fn describe(s) {
	match s {
		Status.Active -> { ret "ok" }
		Status.Failed(r) -> { ret r }
		_ -> { ret "?" }
	}
}
let a = describe(Status.Active)
`)
	assert.Empty(t, diags)
}

func TestCheckEnumUnknownVariantWarning(t *testing.T) {
	diags := check(t, `
enum Status { Active }
let a = Status.Bogus
`)
	require.NotEmpty(t, diags)
	assert.Equal(t, axerrors.Warning, diags[0].Level)
}

func TestCheckMixedLiteralOperatorWarning(t *testing.T) {
	diags := check(t, `let r = 1 - "a"`)
	require.NotEmpty(t, diags)
	assert.Equal(t, axerrors.Warning, diags[0].Level)
}
