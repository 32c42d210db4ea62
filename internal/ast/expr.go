package ast

import (
	"strcheck/internal/source"
	"strcheck/internal/token"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprInterp
	ExprBinary
	ExprUnary
	ExprConditional
	ExprMember
	ExprCall
	ExprIndex
	// ExprNew is object creation: new T(args) { initialisers }.
	ExprNew
	// ExprArrayNew is an explicitly typed array: new T[n] or new T[] { ... }.
	ExprArrayNew
	// ExprImplicitArray is new[] { ... }; the element type comes from the initialisers.
	ExprImplicitArray
	ExprGroup
	ExprThis
	ExprBase
	// ExprPredefType is a builtin type keyword used as a receiver, as in string.Format.
	ExprPredefType
	ExprTypeOf
	ExprCast
	// ExprIs is a type test, optionally declaring a pattern variable: x is T t.
	ExprIs
	ExprLambda
)

var exprKindNames = [...]string{
	ExprIdent:         "Ident",
	ExprLit:           "Lit",
	ExprInterp:        "Interp",
	ExprBinary:        "Binary",
	ExprUnary:         "Unary",
	ExprConditional:   "Conditional",
	ExprMember:        "Member",
	ExprCall:          "Call",
	ExprIndex:         "Index",
	ExprNew:           "New",
	ExprArrayNew:      "ArrayNew",
	ExprImplicitArray: "ImplicitArray",
	ExprGroup:         "Group",
	ExprThis:          "This",
	ExprBase:          "Base",
	ExprPredefType:    "PredefType",
	ExprTypeOf:        "TypeOf",
	ExprCast:          "Cast",
	ExprIs:            "Is",
	ExprLambda:        "Lambda",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type IdentExpr struct {
	Name string
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitReal
	LitString
	LitChar
	LitBool
	LitNull
)

type LitExpr struct {
	Kind LitKind
	// Raw is the literal exactly as written, suffix included.
	Raw string
}

// InterpPart is a text run or a hole of an interpolated string.
type InterpPart struct {
	Hole   bool
	Span   source.Span
	Expr   ExprID
	Align  source.Span
	Format source.Span
}

type InterpExpr struct {
	Verbatim bool
	Parts    []InterpPart
}

// Holes returns the expressions of all holes in order.
func (in *InterpExpr) Holes() []ExprID {
	out := make([]ExprID, 0, len(in.Parts))
	for _, p := range in.Parts {
		if p.Hole && p.Expr.IsValid() {
			out = append(out, p.Expr)
		}
	}
	return out
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAndAnd
	OpOrOr
	OpCoalesce
	OpBitAnd
	OpBitOr
	OpBitXor
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
)

var binaryOpText = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAndAnd: "&&", OpOrOr: "||", OpCoalesce: "??",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^",
	OpAssign: "=", OpAddAssign: "+=", OpSubAssign: "-=",
	OpMulAssign: "*=", OpDivAssign: "/=", OpModAssign: "%=",
	OpAndAssign: "&=", OpOrAssign: "|=", OpXorAssign: "^=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsAssign reports whether op stores into its left operand.
func (op BinaryOp) IsAssign() bool {
	return op >= OpAssign
}

type BinaryExpr struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryPlus
	UnaryNot
	UnaryBitNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
)

var unaryOpText = [...]string{
	UnaryNeg: "-", UnaryPlus: "+", UnaryNot: "!", UnaryBitNot: "~",
	UnaryPreInc: "++x", UnaryPreDec: "--x", UnaryPostInc: "x++", UnaryPostDec: "x--",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpText) {
		return unaryOpText[op]
	}
	return "?"
}

type UnaryExpr struct {
	Op      UnaryOp
	Operand ExprID
}

type ConditionalExpr struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type MemberExpr struct {
	Target   ExprID
	Name     string
	NameSpan source.Span
	// Conditional marks "?." access.
	Conditional bool
}

type CallExpr struct {
	Target ExprID
	Args   []ExprID
}

type IndexExpr struct {
	Target ExprID
	Args   []ExprID
}

type NewExpr struct {
	Type    TypeExpr
	Args    []ExprID
	HasArgs bool
	// Init holds object-initialiser assignments (m = e) or collection elements.
	Init    []ExprID
	HasInit bool
}

type ArrayNewExpr struct {
	// Elem is the element type; Rank of the created array is Elem.Rank+1.
	Elem    TypeExpr
	Sizes   []ExprID
	Init    []ExprID
	HasInit bool
}

type ImplicitArrayExpr struct {
	Elems []ExprID
}

type GroupExpr struct {
	Inner ExprID
}

type PredefTypeExpr struct {
	Keyword token.Kind
}

type TypeOfExpr struct {
	Type TypeExpr
}

// CastExpr is (T)x, or x as T when As is set.
type CastExpr struct {
	Type  TypeExpr
	Value ExprID
	As    bool
}

type IsExpr struct {
	Value    ExprID
	Type     TypeExpr
	Name     string
	NameSpan source.Span
}

// LambdaExpr has either an expression body or a block body.
type LambdaExpr struct {
	Params []Param
	Body   ExprID
	Block  StmtID
}
