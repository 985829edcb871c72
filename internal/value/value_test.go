package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axiom-lang/axiom/internal/value"
)

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"nil", value.Nil(), false},
		{"zero num", value.Num(0), false},
		{"nonzero num", value.Num(1), true},
		{"empty str", value.Str(""), false},
		{"nonempty str", value.Str("x"), true},
		{"false bool", value.Bol(false), false},
		{"true bool", value.Bol(true), true},
		{"empty list", value.Lst(value.NewList(nil)), false},
		{"nonempty list", value.Lst(value.NewList([]value.Value{value.Num(1)})), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.IsTruthy())
		})
	}
}

func TestDisplayIntegralFloatsPrintWithoutDecimal(t *testing.T) {
	assert.Equal(t, "3", value.Num(3).Display())
	assert.Equal(t, "3.5", value.Num(3.5).Display())
	assert.Equal(t, "hi", value.Str("hi").Display())
	assert.Equal(t, "true", value.Bol(true).Display())
}

func TestListIsSharedByReferenceNotCloned(t *testing.T) {
	// spec.md §9: "A copy of a value containing a Lst must share the
	// underlying sequence, not clone it."
	l := value.NewList([]value.Value{value.Num(1)})
	original := value.Lst(l)
	aliased := original // Go struct copy of the Value wrapper itself

	aliased.Lst.Append(value.Num(2))
	assert.Equal(t, 2, original.Lst.Len(), "appending through the alias must be visible on the original")
}

func TestMapGetSetAndKeys(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Num(1))
	m.Set("b", value.Num(2))

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v.Num)

	_, ok = m.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())
	assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())
}

func TestTypeNameAndEnumVariant(t *testing.T) {
	ev := value.EnumVariant("Circle", value.Nil())
	assert.Equal(t, "EnumVariant", ev.TypeName())
	assert.Equal(t, "Circle", ev.EnumName)
}

func TestListNegativeIndexGetFails(t *testing.T) {
	l := value.NewList([]value.Value{value.Num(1), value.Num(2)})
	_, ok := l.Get(-1)
	assert.False(t, ok, "negative index must not wrap to the last element")
}
