package lower

import (
	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/ir"
)

// typeOf approximates the static type of e, enough to choose between signed
// and unsigned operators and to type temporaries.
func typeOf(e ast.Expr) ast.TypeRef {
	intT := ast.TypeOf(ast.Int)

	switch e := e.(type) {
	case *ast.StrLit:
		return ast.TypeOf(ast.Char).Pointer()
	case *ast.Ident:
		switch ent := e.Entity.(type) {
		case ast.Variable:
			return ent.Type
		case ast.Function:
			return ast.TypeOf(ast.Void).Pointer()
		}
	case *ast.Unary:
		switch e.Op {
		case ast.Deref:
			return typeOf(e.X).Elem()
		case ast.AddrOf:
			return typeOf(e.X).Pointer()
		case ast.LogNot:
			return intT
		default:
			return typeOf(e.X)
		}
	case *ast.Binary:
		switch e.Op {
		case ast.LogAnd, ast.LogOr, ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
			return intT
		case ast.Shl, ast.Shr:
			return typeOf(e.X)
		}
		if y := typeOf(e.Y); y.IsUnsigned() && !typeOf(e.X).IsUnsigned() {
			return y
		}
		return typeOf(e.X)
	case *ast.Assign:
		return typeOf(e.LHS)
	case *ast.CompoundAssign:
		return typeOf(e.LHS)
	case *ast.Call:
		if fn, ok := e.Entity.(ast.Function); ok {
			return fn.Return
		}
	case *ast.Cast:
		return e.Type
	case *ast.Cond:
		return typeOf(e.Then)
	}
	return intT
}

// binaryOp selects the IR operator for op. An operation is unsigned when
// either operand is, except shifts, which follow the left operand.
func binaryOp(op ast.BinaryOp, x, y ast.Expr) ir.Op {
	unsigned := typeOf(x).IsUnsigned() || typeOf(y).IsUnsigned()
	pick := func(signed, uns ir.Op) ir.Op {
		if unsigned {
			return uns
		}
		return signed
	}

	switch op {
	case ast.Add:
		return ir.Add
	case ast.Sub:
		return ir.Sub
	case ast.Mul:
		return ir.Mul
	case ast.Div:
		return pick(ir.SDiv, ir.UDiv)
	case ast.Mod:
		return pick(ir.SMod, ir.UMod)
	case ast.Shl:
		return ir.BitLShift
	case ast.Shr:
		if typeOf(x).IsUnsigned() {
			return ir.BitRShift
		}
		return ir.ArithRShift
	case ast.BitAnd:
		return ir.BitAnd
	case ast.BitOr:
		return ir.BitOr
	case ast.BitXor:
		return ir.BitXor
	case ast.Eq:
		return ir.EQ
	case ast.Ne:
		return ir.NEQ
	case ast.Lt:
		return pick(ir.SLt, ir.ULt)
	case ast.Le:
		return pick(ir.SLteq, ir.ULteq)
	case ast.Gt:
		return pick(ir.SGt, ir.UGt)
	case ast.Ge:
		return pick(ir.SGteq, ir.UGteq)
	}
	panic("lower: no IR operator for " + op.String())
}
