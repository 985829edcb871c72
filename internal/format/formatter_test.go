package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiom-lang/axiom/internal/format"
	"github.com/axiom-lang/axiom/internal/parser"
)

// reparse parses source, returning the item count, used to assert
// idempotence structurally rather than by comparing spans.
func reparse(t *testing.T, source string) int {
	t.Helper()
	p, lexErrs := parser.New(source, 0)
	require.Nil(t, lexErrs, "re-parse lex error on:\n%s", source)
	items, perr := p.Parse()
	require.Nil(t, perr, "re-parse error on:\n%s", source)
	return len(items)
}

func assertIdempotent(t *testing.T, source string) string {
	t.Helper()
	f := format.New(nil)
	once, err := f.Format(source)
	require.NoError(t, err)

	origItems := reparse(t, source)
	formattedItems := reparse(t, once)
	assert.Equal(t, origItems, formattedItems, "formatted item count should match original")

	twice, err := format.New(nil).Format(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice, "formatting a second time should be a fixed point")
	return once
}

func TestFormatIdempotenceFunctionDecl(t *testing.T) {
	assertIdempotent(t, `fn add(a,b){ret a+b}`)
}

func TestFormatIdempotenceLocalFuncAndFuncExpr(t *testing.T) {
	assertIdempotent(t, `
fn make_adder(x) {
	fn adder(y) { ret x + y }
	ret adder
}
let m = fn(x) { ret fn(y) { ret x * y } }
`)
}

func TestFormatIdempotenceClassHierarchy(t *testing.T) {
	assertIdempotent(t, `
cls Animal {
	name;
	fn speak() { ret "..." }
}
cls Dog ext Animal {
	fn speak() { ret "woof" }
}
`)
}

func TestFormatIdempotenceEnum(t *testing.T) {
	assertIdempotent(t, `
enum Shape {
	Circle,
	Rect
}
`)
}

func TestFormatIdempotenceControlFlow(t *testing.T) {
	assertIdempotent(t, `
fn fib(n) {
	if n<2 { ret n }
	let a=0
	let b=1
	let i=2
	while i<=n {
		let c=a+b
		a=b
		b=c
		i=i+1
	}
	ret b
}
`)
}

func TestFormatProducesCanonicalSpacing(t *testing.T) {
	out, err := format.New(nil).Format(`fn add(a,b){ret a+b}`)
	require.NoError(t, err)
	assert.Contains(t, out, "fn add(a, b) {")
	assert.Contains(t, out, "ret a + b")
}
