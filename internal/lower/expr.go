package lower

import (
	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/ir"
)

func (l *funcLowerer) expr(e ast.Expr) (ir.Expr, error) {
	switch e := e.(type) {
	case *ast.IntLit, *ast.CharLit, *ast.StrLit:
		c, _ := constant(e)
		return c, nil

	case *ast.Ident:
		if e.Entity == nil {
			return nil, diag.UnresolvedEntity(e.Name)
		}
		return &ir.Var{Name: e.Name, Entity: e.Entity}, nil

	case *ast.Unary:
		return l.unary(e)

	case *ast.Binary:
		switch e.Op {
		case ast.LogAnd:
			return l.logicalAnd(e)
		case ast.LogOr:
			return l.logicalOr(e)
		}
		// The right operand is lowered first so its side effects are
		// emitted before the left operand's.
		y, err := l.expr(e.Y)
		if err != nil {
			return nil, err
		}
		x, err := l.expr(e.X)
		if err != nil {
			return nil, err
		}
		return &ir.Binary{Op: binaryOp(e.Op, e.X, e.Y), X: x, Y: y}, nil

	case *ast.Assign:
		dst, err := l.expr(e.LHS)
		if err != nil {
			return nil, err
		}
		val, err := l.expr(e.RHS)
		if err != nil {
			return nil, err
		}
		addr, err := l.addressOf(dst)
		if err != nil {
			return nil, err
		}
		l.emit(&ir.Assign{Addr: addr, Value: val})
		return dst, nil

	case *ast.CompoundAssign:
		dst, err := l.expr(e.LHS)
		if err != nil {
			return nil, err
		}
		val, err := l.expr(e.RHS)
		if err != nil {
			return nil, err
		}
		addr, err := l.addressOf(dst)
		if err != nil {
			return nil, err
		}
		l.emit(&ir.Assign{Addr: addr, Value: &ir.Binary{Op: binaryOp(e.Op, e.LHS, e.RHS), X: dst, Y: val}})
		return dst, nil

	case *ast.Call:
		return l.call(e)

	case *ast.Cast:
		x, err := l.expr(e.X)
		if err != nil {
			return nil, err
		}
		op := ir.SCast
		if e.Type.IsUnsigned() {
			op = ir.UCast
		}
		return &ir.Unary{Op: op, X: x}, nil

	case *ast.Cond:
		return l.conditional(e)

	case *ast.FieldAccess:
		return nil, diag.Unsupported("member access")
	case *ast.Index:
		return nil, diag.Unsupported("array indexing")
	case *ast.SizeofExpr, *ast.SizeofType:
		return nil, diag.Unsupported("sizeof")
	}

	return nil, diag.Unsupported("expression " + ast.ExprString(e))
}

func (l *funcLowerer) unary(e *ast.Unary) (ir.Expr, error) {
	switch e.Op {
	case ast.PreInc, ast.PreDec, ast.PostInc, ast.PostDec:
		return l.increment(e)
	}

	x, err := l.expr(e.X)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.UPlus:
		return x, nil
	case ast.UMinus:
		return &ir.Unary{Op: ir.UMinus, X: x}, nil
	case ast.LogNot:
		return &ir.Unary{Op: ir.Not, X: x}, nil
	case ast.BitNot:
		return &ir.Unary{Op: ir.BitNot, X: x}, nil
	case ast.Deref:
		return &ir.Mem{X: x}, nil
	case ast.AddrOf:
		return l.addressOf(x)
	}
	return nil, diag.Unsupported("operator " + e.Op.String())
}

// increment lowers ++ and --. The prefix forms yield the updated variable;
// the postfix forms save the old value in a temporary first.
func (l *funcLowerer) increment(e *ast.Unary) (ir.Expr, error) {
	dst, err := l.expr(e.X)
	if err != nil {
		return nil, err
	}
	addr, err := l.addressOf(dst)
	if err != nil {
		return nil, err
	}

	op := ir.Add
	if e.Op == ast.PreDec || e.Op == ast.PostDec {
		op = ir.Sub
	}
	update := &ir.Assign{Addr: addr, Value: &ir.Binary{Op: op, X: dst, Y: ir.Int(1)}}

	if !e.Op.Postfix() {
		l.emit(update)
		return dst, nil
	}

	old := l.newTemp(typeOf(e.X))
	l.emit(&ir.Assign{Addr: tempAddr(old), Value: dst})
	l.emit(update)
	return old, nil
}

// logicalAnd lowers `a && b` to
//
//	tmp = 0
//	if (a) tmp = b
//
// Everything b needs is emitted after the then label, so none of it runs
// when a is false.
func (l *funcLowerer) logicalAnd(e *ast.Binary) (ir.Expr, error) {
	tmp := l.newTemp(ast.TypeOf(ast.Int))
	l.emit(&ir.Assign{Addr: tempAddr(tmp), Value: ir.Int(0)})

	cond, err := l.expr(e.X)
	if err != nil {
		return nil, err
	}
	then, end := l.newLabel(), l.newLabel()
	l.emit(&ir.CJump{Cond: cond, Then: then, Else: end})
	l.emit(&ir.LabelStmt{Label: then})

	rhs, err := l.expr(e.Y)
	if err != nil {
		return nil, err
	}
	l.emit(&ir.Assign{Addr: tempAddr(tmp), Value: rhs})
	l.emit(&ir.LabelStmt{Label: end})
	return tmp, nil
}

// logicalOr lowers `a || b` to
//
//	tmp = 1
//	if (!a) tmp = b
func (l *funcLowerer) logicalOr(e *ast.Binary) (ir.Expr, error) {
	tmp := l.newTemp(ast.TypeOf(ast.Int))
	l.emit(&ir.Assign{Addr: tempAddr(tmp), Value: ir.Int(1)})

	cond, err := l.expr(e.X)
	if err != nil {
		return nil, err
	}
	elseLabel, end := l.newLabel(), l.newLabel()
	l.emit(&ir.CJump{Cond: cond, Then: end, Else: elseLabel})
	l.emit(&ir.LabelStmt{Label: elseLabel})

	rhs, err := l.expr(e.Y)
	if err != nil {
		return nil, err
	}
	l.emit(&ir.Assign{Addr: tempAddr(tmp), Value: rhs})
	l.emit(&ir.LabelStmt{Label: end})
	return tmp, nil
}

// conditional lowers `c ? x : y` through a temporary assigned on each arm.
func (l *funcLowerer) conditional(e *ast.Cond) (ir.Expr, error) {
	cond, err := l.expr(e.Cond)
	if err != nil {
		return nil, err
	}
	tmp := l.newTemp(typeOf(e.Then))
	then, elseLabel, end := l.newLabel(), l.newLabel(), l.newLabel()

	l.emit(&ir.CJump{Cond: cond, Then: then, Else: elseLabel})
	l.emit(&ir.LabelStmt{Label: then})
	x, err := l.expr(e.Then)
	if err != nil {
		return nil, err
	}
	l.emit(&ir.Assign{Addr: tempAddr(tmp), Value: x})
	l.emit(&ir.Jump{Target: end})

	l.emit(&ir.LabelStmt{Label: elseLabel})
	y, err := l.expr(e.Else)
	if err != nil {
		return nil, err
	}
	l.emit(&ir.Assign{Addr: tempAddr(tmp), Value: y})
	l.emit(&ir.LabelStmt{Label: end})
	return tmp, nil
}

// call lowers arguments left to right. The callee's entity must have been
// attached by the resolver.
func (l *funcLowerer) call(e *ast.Call) (ir.Expr, error) {
	name, ok := e.CalleeName()
	if !ok {
		return nil, diag.NotCallable(ast.ExprString(e.Callee))
	}
	if e.Entity == nil {
		return nil, diag.UnresolvedEntity(name)
	}

	args := make([]ir.Expr, len(e.Args))
	for i, a := range e.Args {
		x, err := l.expr(a)
		if err != nil {
			return nil, err
		}
		args[i] = x
	}
	return &ir.Call{Name: name, Args: args, Entity: e.Entity}, nil
}

// hasCall reports whether evaluating e calls a function.
func hasCall(e ir.Expr) bool {
	switch e := e.(type) {
	case *ir.Call:
		return true
	case *ir.Unary:
		return hasCall(e.X)
	case *ir.Binary:
		return hasCall(e.X) || hasCall(e.Y)
	case *ir.Mem:
		return hasCall(e.X)
	}
	return false
}
