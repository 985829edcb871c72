package value

import "github.com/axiom-lang/axiom/internal/ast"

// CallableKind discriminates a user-defined Axiom function from a
// native one backed by Go code (an intrinsic).
type CallableKind int

const (
	CallableUserDefined CallableKind = iota
	CallableNative
)

// NativeFunc is the Go signature every intrinsic function implements.
type NativeFunc func(args []Value) (Value, error)

// Callable is a user-defined or native function value (Fun variant).
// A closure's captured environment is snapshotted at definition time —
// each entry is a Value copy, not a live reference to the defining
// scope (spec.md §4.4 closure semantics).
type Callable struct {
	Kind     CallableKind
	Name     string
	Params   []string
	Body     []ast.Stmt
	Captured map[string]Value
	Native   NativeFunc
	// BoundSelf is set when this Callable is a bound method: self
	// resolves to this instance during the call.
	BoundSelf *Instance
}

// Bind returns a copy of a user-defined method Callable bound to self,
// used by method dispatch to thread `self` into the call environment.
func (c *Callable) Bind(self *Instance) *Callable {
	bound := *c
	bound.BoundSelf = self
	return &bound
}

// Class is a class definition: name, optional parent for `ext`
// inheritance, its own methods, and its own field declarations with
// optional default-value expressions.
type Class struct {
	Name    string
	Parent  *Class
	Methods map[string]*Callable
	Fields  []FieldDecl
}

type FieldDecl struct {
	Name    string
	Default ast.Expr // nil if no default, defaults to Nil
}

// NewClass constructs an empty Class ready to have methods/fields
// attached by the evaluator while processing a ClassDecl.
func NewClass(name string) *Class {
	return &Class{Name: name, Methods: make(map[string]*Callable)}
}

// ResolveMethod walks the parent chain looking up a method by name,
// the VTable dispatch rule from oop.rs.
func (c *Class) ResolveMethod(name string) (*Callable, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Parent != nil {
		return c.Parent.ResolveMethod(name)
	}
	return nil, false
}

func (c *Class) HasInit() bool {
	_, ok := c.Methods["init"]
	return ok
}

// Instance is a runtime instance of a Class. Fields are stored in a
// shared Map so Instance values alias like a reference type, matching
// the aliasing rule for Lst/Map/Instance (spec.md §2).
type Instance struct {
	Class  *Class
	Fields *Map
}

func (i *Instance) GetField(name string) (Value, bool) { return i.Fields.Get(name) }
func (i *Instance) SetField(name string, v Value)       { i.Fields.Set(name, v) }

func (i *Instance) ResolveMethod(name string) (*Callable, bool) {
	m, ok := i.Class.ResolveMethod(name)
	if !ok {
		return nil, false
	}
	return m.Bind(i), true
}

// EnumVariantDef records one arm of an enum declaration: its name and
// whether it carries a payload.
type EnumVariantDef struct {
	Name    string
	HasData bool
}

// Enum is a runtime enum definition: a name and its variant set, used
// by the evaluator to construct `Enum.Variant` / `Enum.Variant(x)`
// values; match statements compare variant names without consulting it.
type Enum struct {
	Name     string
	Variants []EnumVariantDef
}

func (e *Enum) HasVariant(name string) bool {
	for _, v := range e.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}
