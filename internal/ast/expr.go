package ast

import axerrors "github.com/axiom-lang/axiom/internal/errors"

// Expr is an expression node (spec.md §3). Every case exposes its Span.
type Expr interface {
	exprNode()
	Span() axerrors.Span
}

type NumberExpr struct {
	Value float64
	Sp    axerrors.Span
}

type StringExpr struct {
	Value string
	Sp    axerrors.Span
}

type BooleanExpr struct {
	Value bool
	Sp    axerrors.Span
}

type NilExpr struct {
	Sp axerrors.Span
}

type IdentifierExpr struct {
	Name string
	Sp   axerrors.Span
}

type SelfExpr struct {
	Sp axerrors.Span
}

type ListExpr struct {
	Items []Expr
	Sp    axerrors.Span
}

type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
	Sp    axerrors.Span
}

type UnaryExpr struct {
	Op      string
	Operand Expr
	Sp      axerrors.Span
}

type CallExpr struct {
	Function  Expr
	Arguments []Expr
	Sp        axerrors.Span
}

type MethodCallExpr struct {
	Object    Expr
	Method    string
	Arguments []Expr
	Sp        axerrors.Span
}

type IndexExpr struct {
	Object Expr
	Index  Expr
	Sp     axerrors.Span
}

type MemberAccessExpr struct {
	Object Expr
	Member string
	Sp     axerrors.Span
}

type AssignExpr struct {
	Target Expr
	Value  Expr
	Sp     axerrors.Span
}

type NewExpr struct {
	ClassName string
	Arguments []Expr
	Sp        axerrors.Span
}

// StringPart is one piece of an InterpolatedStringExpr: literal text or
// an embedded expression.
type StringPart struct {
	Literal string
	Expr    Expr // nil if this part is a literal
}

type InterpolatedStringExpr struct {
	Parts []StringPart
	Sp    axerrors.Span
}

type LambdaExpr struct {
	Params []string
	Body   Expr
	Sp     axerrors.Span
}

// FuncExpr is an anonymous function literal `fn(params) { stmt* }` —
// the block-bodied sibling of LambdaExpr's single-expression arrow
// form, needed for expressions like `fn(x){ret fn(y){ret x*y}}`
// (spec.md §8's curried-lambda scenario).
type FuncExpr struct {
	Params []string
	Body   []Stmt
	Sp     axerrors.Span
}

func (*NumberExpr) exprNode()             {}
func (*StringExpr) exprNode()             {}
func (*BooleanExpr) exprNode()            {}
func (*NilExpr) exprNode()                {}
func (*IdentifierExpr) exprNode()         {}
func (*SelfExpr) exprNode()               {}
func (*ListExpr) exprNode()               {}
func (*BinaryExpr) exprNode()             {}
func (*UnaryExpr) exprNode()              {}
func (*CallExpr) exprNode()               {}
func (*MethodCallExpr) exprNode()         {}
func (*IndexExpr) exprNode()              {}
func (*MemberAccessExpr) exprNode()       {}
func (*AssignExpr) exprNode()             {}
func (*NewExpr) exprNode()                {}
func (*InterpolatedStringExpr) exprNode() {}
func (*LambdaExpr) exprNode()             {}
func (*FuncExpr) exprNode()               {}

func (n *NumberExpr) Span() axerrors.Span             { return n.Sp }
func (n *StringExpr) Span() axerrors.Span             { return n.Sp }
func (n *BooleanExpr) Span() axerrors.Span            { return n.Sp }
func (n *NilExpr) Span() axerrors.Span                { return n.Sp }
func (n *IdentifierExpr) Span() axerrors.Span         { return n.Sp }
func (n *SelfExpr) Span() axerrors.Span               { return n.Sp }
func (n *ListExpr) Span() axerrors.Span               { return n.Sp }
func (n *BinaryExpr) Span() axerrors.Span             { return n.Sp }
func (n *UnaryExpr) Span() axerrors.Span              { return n.Sp }
func (n *CallExpr) Span() axerrors.Span               { return n.Sp }
func (n *MethodCallExpr) Span() axerrors.Span         { return n.Sp }
func (n *IndexExpr) Span() axerrors.Span              { return n.Sp }
func (n *MemberAccessExpr) Span() axerrors.Span       { return n.Sp }
func (n *AssignExpr) Span() axerrors.Span             { return n.Sp }
func (n *NewExpr) Span() axerrors.Span                { return n.Sp }
func (n *InterpolatedStringExpr) Span() axerrors.Span { return n.Sp }
func (n *LambdaExpr) Span() axerrors.Span             { return n.Sp }
func (n *FuncExpr) Span() axerrors.Span               { return n.Sp }
