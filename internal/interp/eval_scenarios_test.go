package interp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/interp"
	"github.com/axiom-lang/axiom/internal/parser"
	"github.com/axiom-lang/axiom/internal/stdlib"
	"github.com/axiom-lang/axiom/internal/value"
)

// run parses and executes source against a fresh Runtime with the
// intrinsic registry installed, returning the Runtime for global
// inspection and any fatal error.
func run(t *testing.T, source string) (*interp.Runtime, *axerrors.RuntimeError) {
	t.Helper()
	p, lexErrs := parser.New(source, 0)
	require.Nil(t, lexErrs, "unexpected lex errors: %v", lexErrs)
	items, perr := p.Parse()
	require.Nil(t, perr, "unexpected parse error: %v", perr)

	rt := interp.New()
	rt.Out = &strings.Builder{}
	stdlib.Install(rt)
	return rt, rt.Run(items)
}

func global(t *testing.T, rt *interp.Runtime, name string) value.Value {
	t.Helper()
	v, ok := rt.Globals[name]
	require.True(t, ok, "global %q not defined", name)
	return v
}

// These scenarios are transcribed verbatim from the end-to-end table
// (closure capture through stack overflow), minus the shorthand
// semicolon-separated one-liners the grammar expresses as full
// function bodies with explicit ret statements instead.

func TestClosureCapture(t *testing.T) {
	rt, err := run(t, `
fn make_adder(x) {
	fn adder(y) { ret x + y }
	ret adder
}
let add5 = make_adder(5)
let r = add5(10)
`)
	require.Nil(t, err)
	assert.Equal(t, 15.0, global(t, rt, "r").Num)
}

func TestIndependentClosures(t *testing.T) {
	rt, err := run(t, `
fn make_adder(x) {
	fn adder(y) { ret x + y }
	ret adder
}
let add5 = make_adder(5)
let add10 = make_adder(10)
let r1 = add5(3)
let r2 = add10(7)
`)
	require.Nil(t, err)
	assert.Equal(t, 8.0, global(t, rt, "r1").Num)
	assert.Equal(t, 17.0, global(t, rt, "r2").Num)
}

func TestCurriedLambda(t *testing.T) {
	rt, err := run(t, `
let m = fn(x) { ret fn(y) { ret x * y } }
let t = m(3)
let r = t(7)
`)
	require.Nil(t, err)
	assert.Equal(t, 21.0, global(t, rt, "r").Num)
}

func TestThreeLevelClosure(t *testing.T) {
	rt, err := run(t, `
fn outer(a) {
	fn middle(b) {
		fn inner(c) { ret a + b + c }
		ret inner
	}
	ret middle
}
let r = outer(1)(2)(3)
`)
	require.Nil(t, err)
	assert.Equal(t, 6.0, global(t, rt, "r").Num)
}

func TestRetReturnParity(t *testing.T) {
	rt, err := run(t, `
fn f(x) { ret x + 1 }
let a = f(9)
`)
	require.Nil(t, err)
	assert.Equal(t, 10.0, global(t, rt, "a").Num)

	rt, err = run(t, `
fn g(x) { return x + 1 }
let b = g(9)
`)
	require.Nil(t, err)
	assert.Equal(t, 10.0, global(t, rt, "b").Num)
}

func TestArityMismatch(t *testing.T) {
	_, err := run(t, `
fn add(a, b) { ret a + b }
add(1, 2, 3)
`)
	require.NotNil(t, err)
	assert.Equal(t, axerrors.ArityMismatch, err.Kind)
	assert.Equal(t, 2, err.ExpectedN)
	assert.Equal(t, 3, err.FoundN)
}

func TestFibonacci(t *testing.T) {
	rt, err := run(t, `
fn fib(n) {
	if n < 2 { ret n }
	let a = 0
	let b = 1
	let i = 2
	while i <= n {
		let c = a + b
		a = b
		b = c
		i = i + 1
	}
	ret b
}
let r10 = fib(10)
let r20 = fib(20)
`)
	require.Nil(t, err)
	assert.Equal(t, 55.0, global(t, rt, "r10").Num)
	assert.Equal(t, 6765.0, global(t, rt, "r20").Num)
}

func TestNilTruthiness(t *testing.T) {
	rt, err := run(t, `
fn pick(x) {
	if x { ret "t" }
	ret "f"
}
let x = nil
let r = pick(x)
`)
	require.Nil(t, err)
	assert.Equal(t, "f", global(t, rt, "r").Str)
}

func TestMapOverLambda(t *testing.T) {
	rt, err := run(t, `
let r = alg.sum(alg.map(alg.range(4), fn(x) { ret x * 2 }))
`)
	require.Nil(t, err)
	assert.Equal(t, 12.0, global(t, rt, "r").Num)
}

func TestStringMethodUpper(t *testing.T) {
	rt, err := run(t, `let r = "hello world".upper()`)
	require.Nil(t, err)
	assert.Equal(t, "HELLO WORLD", global(t, rt, "r").Str)
}

func TestStackOverflow(t *testing.T) {
	_, err := run(t, `
fn inf() { ret inf() }
inf()
`)
	require.NotNil(t, err)
	assert.Equal(t, axerrors.GenericError, err.Kind)
	assert.Contains(t, err.Error(), "overflow")
}

func TestAlgSumRangeInvariant(t *testing.T) {
	for _, n := range []int{0, 1, 5, 50} {
		rt, err := run(t, `let r = alg.sum(alg.range(`+itoa(n)+`))`)
		require.Nil(t, err)
		assert.Equal(t, float64(n*(n-1)/2), global(t, rt, "r").Num)
	}
}

func TestEnumVariantConstructionAndMatch(t *testing.T) {
	rt, err := run(t, `
enum Status {
	Active,
	Failed(reason),
	Unknown
}
fn describe(s) {
	match s {
		Status.Active -> { ret "ok" }
		Status.Failed(r) -> { ret r }
		_ -> { ret "?" }
	}
}
let a = describe(Status.Active)
let b = describe(Status.Failed("boom"))
let c = describe(Status.Unknown)
`)
	require.Nil(t, err)
	assert.Equal(t, "ok", global(t, rt, "a").Str)
	assert.Equal(t, "boom", global(t, rt, "b").Str)
	assert.Equal(t, "?", global(t, rt, "c").Str)
}

func TestEnumVariantArityMismatch(t *testing.T) {
	_, err := run(t, `
enum Status { Active }
let a = Status.Active(1)
`)
	require.NotNil(t, err)
	assert.Equal(t, axerrors.ArityMismatch, err.Kind)
}

// spec.md §8 "Boundary behaviors": list index -1 is IndexOutOfBounds,
// not the last element.
func TestListNegativeIndexIsOutOfBounds(t *testing.T) {
	_, err := run(t, `
let xs = [1, 2, 3]
let r = xs[-1]
`)
	require.NotNil(t, err)
	assert.Equal(t, axerrors.IndexOutOfBounds, err.Kind)
}

// spec.md §8: division by 0.0 is DivisionByZero, not Infinity.
func TestDivisionByZero(t *testing.T) {
	_, err := run(t, `let r = 1 / 0`)
	require.NotNil(t, err)
	assert.Equal(t, axerrors.DivisionByZero, err.Kind)
}

// spec.md §8: calling nil is NilCall, not NotCallable.
func TestCallingNilIsNilCall(t *testing.T) {
	_, err := run(t, `
let f = nil
f()
`)
	require.NotNil(t, err)
	assert.Equal(t, axerrors.NilCall, err.Kind)
}

// spec.md §4.4: "Top-level globals are not captured by value; they are
// resolved dynamically at call time." A closure defined at the top
// level must see a later mutation of the global it references.
func TestTopLevelClosureResolvesGlobalsDynamically(t *testing.T) {
	rt, err := run(t, `
let x = 1
let f = fn() { ret x }
x = 2
let r = f()
`)
	require.Nil(t, err)
	assert.Equal(t, 2.0, global(t, rt, "r").Num)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}
