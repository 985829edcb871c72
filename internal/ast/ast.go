// Package ast defines the Axiom abstract syntax tree, grounded on
// axm/src/ast.rs (original_source) and spec.md §3. Every node carries a
// Span for diagnostic reporting.
package ast

import axerrors "github.com/axiom-lang/axiom/internal/errors"

// Item is a top-level declaration or statement.
type Item interface {
	itemNode()
	Span() axerrors.Span
}

type FunctionDecl struct {
	Name   string
	Params []string
	Body   []Stmt
	Sp     axerrors.Span
}

type ClassMember interface {
	classMemberNode()
}

type MethodMember struct {
	Name   string
	Params []string
	Body   []Stmt
	Sp     axerrors.Span
}

type FieldMember struct {
	Name    string
	Default Expr // nil if no default
	Sp      axerrors.Span
}

func (*MethodMember) classMemberNode() {}
func (*FieldMember) classMemberNode()  {}

type ClassDecl struct {
	Name   string
	Parent string // "" if no `ext`
	Body   []ClassMember
	Sp     axerrors.Span
}

type EnumVariant struct {
	Name    string
	HasData bool
	Sp      axerrors.Span
}

type EnumDecl struct {
	Name     string
	Variants []EnumVariant
	Sp       axerrors.Span
}

type StdImport struct {
	Name string
	Sp   axerrors.Span
}

type LocImport struct {
	Name string
	Sp   axerrors.Span
}

type LibDecl struct {
	Name string
	Sp   axerrors.Span
}

// StatementItem wraps a top-level Stmt as an Item.
type StatementItem struct {
	Stmt Stmt
}

func (*FunctionDecl) itemNode()  {}
func (*ClassDecl) itemNode()     {}
func (*EnumDecl) itemNode()      {}
func (*StdImport) itemNode()     {}
func (*LocImport) itemNode()     {}
func (*LibDecl) itemNode()       {}
func (*StatementItem) itemNode() {}

func (n *FunctionDecl) Span() axerrors.Span  { return n.Sp }
func (n *ClassDecl) Span() axerrors.Span     { return n.Sp }
func (n *EnumDecl) Span() axerrors.Span      { return n.Sp }
func (n *StdImport) Span() axerrors.Span     { return n.Sp }
func (n *LocImport) Span() axerrors.Span     { return n.Sp }
func (n *LibDecl) Span() axerrors.Span       { return n.Sp }
func (n *StatementItem) Span() axerrors.Span { return n.Stmt.Span() }
