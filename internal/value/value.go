// Package value implements Axiom's universal runtime value model,
// grounded on core/value.rs and core/oop.rs (original_source). Sharing
// is expressed with sync.RWMutex-guarded state rather than
// Arc<RwLock<..>>/DashMap, Go's idiomatic analogue for a single
// evaluator goroutine that nonetheless needs to be safe if a `go { }`
// block reaches the same list, map, or instance (spec.md §5).
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Kind tags the variant of a Value.
type Kind int

const (
	KindNum Kind = iota
	KindStr
	KindBol
	KindLst
	KindMap
	KindObj
	KindInstance
	KindEnumVariant
	KindFun
	KindNil
)

// Value is the tagged union every Axiom expression evaluates to. Only
// one of the typed fields is meaningful, selected by Kind. Num, Str,
// Bol, EnumVariant and Nil are copied by value on assignment; Lst, Map,
// and Instance hold pointers and are aliased the way the original's
// Arc-wrapped variants are (spec.md §2).
type Value struct {
	Kind     Kind
	Num      float64
	Str      string
	Bol      bool
	Lst      *List
	Map      *Map
	Obj      *Object
	Instance *Instance
	EnumName string
	EnumData *Value
	Fun      *Callable
}

// List is a shared, mutex-guarded vector backing the Lst variant.
type List struct {
	mu    sync.RWMutex
	items []Value
}

func NewList(items []Value) *List { return &List{items: items} }

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List) Get(i int) (Value, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		return Value{}, false
	}
	return l.items[i], true
}

func (l *List) Set(i int, v Value) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

func (l *List) Append(v Value) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, v)
}

// Items returns a snapshot copy of the backing slice.
func (l *List) Items() []Value {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Value, len(l.items))
	copy(out, l.items)
	return out
}

// Map is a shared, mutex-guarded string-keyed map backing the Map
// variant. Key order is intentionally left to Go's native unspecified
// map order (DESIGN.md Open Question decisions).
type Map struct {
	mu     sync.RWMutex
	fields map[string]Value
}

func NewMap() *Map { return &Map{fields: make(map[string]Value)} }

func (m *Map) Get(key string) (Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.fields[key]
	return v, ok
}

func (m *Map) Set(key string, v Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[key] = v
}

func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.fields)
}

func (m *Map) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.fields))
	for k := range m.fields {
		keys = append(keys, k)
	}
	return keys
}

// Object is the legacy pre-OOP named-struct value; the evaluator uses
// it to represent a bare intrinsic module name (e.g. `alg`) used as a
// value.
type Object struct {
	TypeName string
	Fields   *Map
}

func NewObject(typeName string) *Object {
	return &Object{TypeName: typeName, Fields: NewMap()}
}

// Num, Str, Bol, Nil, Lst, Map, Obj, Fun, EnumVariant construct tagged
// Values of the corresponding kind.
func Num(n float64) Value     { return Value{Kind: KindNum, Num: n} }
func Str(s string) Value      { return Value{Kind: KindStr, Str: s} }
func Bol(b bool) Value        { return Value{Kind: KindBol, Bol: b} }
func Nil() Value              { return Value{Kind: KindNil} }
func Lst(l *List) Value       { return Value{Kind: KindLst, Lst: l} }
func MapVal(m *Map) Value     { return Value{Kind: KindMap, Map: m} }
func Obj(o *Object) Value     { return Value{Kind: KindObj, Obj: o} }
func Fun(c *Callable) Value   { return Value{Kind: KindFun, Fun: c} }
func EnumVariant(name string, data Value) Value {
	return Value{Kind: KindEnumVariant, EnumName: name, EnumData: &data}
}
func InstanceVal(i *Instance) Value { return Value{Kind: KindInstance, Instance: i} }

// TypeName reports the runtime type name used in error messages and by
// the checker, e.g. "expected Num, found Str".
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNum:
		return "Num"
	case KindStr:
		return "Str"
	case KindBol:
		return "Bol"
	case KindLst:
		return "Lst"
	case KindMap:
		return "Map"
	case KindObj:
		return v.Obj.TypeName
	case KindInstance:
		return v.Instance.Class.Name
	case KindEnumVariant:
		return "EnumVariant"
	case KindFun:
		return "Fun"
	case KindNil:
		return "Nil"
	default:
		return "Unknown"
	}
}

// IsTruthy implements spec.md's truthiness rule: Nil is false, Num 0 is
// false, empty Str/Lst/Map are false, a Bol is its own value,
// everything else is true.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case KindNum:
		return v.Num != 0
	case KindStr:
		return v.Str != ""
	case KindBol:
		return v.Bol
	case KindLst:
		return v.Lst.Len() > 0
	case KindMap:
		return v.Map.Len() > 0
	case KindNil:
		return false
	default:
		return true
	}
}

// Display renders a Value the way `out` and string interpolation do:
// integral floats print without a decimal point.
func (v Value) Display() string {
	switch v.Kind {
	case KindNum:
		if v.Num == math.Trunc(v.Num) && !math.IsInf(v.Num, 0) {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindStr:
		return v.Str
	case KindBol:
		return strconv.FormatBool(v.Bol)
	case KindLst:
		items := v.Lst.Items()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := v.Map.Keys()
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _ := v.Map.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, val.Display()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindObj:
		return fmt.Sprintf("<%s>", v.Obj.TypeName)
	case KindInstance:
		keys := v.Instance.Fields.Keys()
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _ := v.Instance.Fields.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, val.Display()))
		}
		return fmt.Sprintf("<%s {%s}>", v.Instance.Class.Name, strings.Join(parts, ", "))
	case KindEnumVariant:
		if v.EnumData == nil || v.EnumData.Kind == KindNil {
			return v.EnumName
		}
		return fmt.Sprintf("%s(%s)", v.EnumName, v.EnumData.Display())
	case KindFun:
		return "<fun>"
	case KindNil:
		return "nil"
	default:
		return "<?>"
	}
}
