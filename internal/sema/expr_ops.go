package sema

import (
	"strings"

	"strcheck/internal/ast"
	"strcheck/internal/types"
)

func (tc *typeChecker) literalType(lit *ast.LitExpr) types.TypeID {
	b := tc.builtins
	raw := strings.ToLower(lit.Raw)
	switch lit.Kind {
	case ast.LitInt:
		if strings.HasSuffix(raw, "l") {
			return b.Long
		}
		return b.Int
	case ast.LitReal:
		switch {
		case strings.HasSuffix(raw, "f"):
			return b.Float
		case strings.HasSuffix(raw, "m"):
			return b.Decimal
		}
		return b.Double
	case ast.LitString:
		return b.String
	case ast.LitChar:
		return b.Char
	case ast.LitBool:
		return b.Bool
	}
	// null не имеет собственного типа
	return types.NoTypeID
}

func (tc *typeChecker) typeBinary(bin *ast.BinaryExpr) types.TypeID {
	b := tc.builtins
	if bin.Op.IsAssign() {
		left := tc.bindExpr(bin.Left)
		tc.bindExpect(bin.Right, left)
		return left
	}
	left := tc.bindExpr(bin.Left)
	right := tc.bindExpr(bin.Right)
	switch bin.Op {
	case ast.OpAdd:
		if left == b.String || right == b.String {
			return b.String
		}
		return tc.types.Promote(left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return tc.types.Promote(left, right)
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpAndAnd, ast.OpOrOr:
		return b.Bool
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		if left == b.Bool && right == b.Bool {
			return b.Bool
		}
		if left == right && tc.types.KindOf(left) == types.KindEnum {
			return left
		}
		return tc.types.Promote(left, right)
	case ast.OpCoalesce:
		if left != types.NoTypeID {
			return left
		}
		return right
	}
	return types.NoTypeID
}

func (tc *typeChecker) typeUnary(un *ast.UnaryExpr) types.TypeID {
	operand := tc.bindExpr(un.Operand)
	switch un.Op {
	case ast.UnaryNot:
		return tc.builtins.Bool
	case ast.UnaryNeg, ast.UnaryPlus:
		return tc.types.Promote(operand, operand)
	case ast.UnaryBitNot:
		if tc.types.KindOf(operand) == types.KindEnum {
			return operand
		}
		return tc.types.Promote(operand, operand)
	}
	// ++ и -- сохраняют тип операнда
	return operand
}
