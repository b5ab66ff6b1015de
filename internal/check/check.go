// Package check validates resolved expressions before lowering.
//
// Two rules apply to every expression in the program. The target of an
// assignment, compound assignment or increment must be variable-like, and
// the target of a call must be a function or a variable initialised with one.
package check

import (
	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
)

// Assignable reports whether e names a storage location: an identifier,
// possibly under dereference, address-of or increment wrappers.
func Assignable(e ast.Expr) bool {
	for {
		switch x := e.(type) {
		case *ast.Ident:
			return true
		case *ast.Unary:
			switch x.Op {
			case ast.Deref, ast.AddrOf, ast.PreInc, ast.PreDec, ast.PostInc, ast.PostDec:
				e = x.X
				continue
			}
		}
		return false
	}
}

// Callable reports whether the resolved target of c can be called.
func Callable(c *ast.Call) bool {
	if c.Entity == nil {
		return false
	}
	return callableEntity(c.Entity, make(map[*ast.Ident]bool))
}

func callableEntity(e ast.Entity, seen map[*ast.Ident]bool) bool {
	switch e := e.(type) {
	case ast.Function:
		return true
	case ast.Variable:
		return e.Init != nil && callableExpr(e.Init, seen)
	}
	return false
}

// callableExpr follows a variable's initializer to a function. Global
// initializers can refer to each other, so identifiers are visited once.
func callableExpr(e ast.Expr, seen map[*ast.Ident]bool) bool {
	switch x := e.(type) {
	case *ast.Ident:
		if seen[x] || x.Entity == nil {
			return false
		}
		seen[x] = true
		return callableEntity(x.Entity, seen)
	case *ast.Unary:
		if x.Op == ast.AddrOf || x.Op == ast.Deref {
			return callableExpr(x.X, seen)
		}
	case *ast.Cast:
		return callableExpr(x.X, seen)
	}
	return false
}

// Expr validates every node of e.
func Expr(e ast.Expr) error {
	var err error
	ast.Inspect(e, func(n ast.Expr) bool {
		if err != nil {
			return false
		}
		err = node(n)
		return err == nil
	})
	return err
}

func node(n ast.Expr) error {
	switch n := n.(type) {
	case *ast.Assign:
		if !Assignable(n.LHS) {
			return diag.InvalidAssignmentTarget(ast.ExprString(n.LHS))
		}
	case *ast.CompoundAssign:
		if !Assignable(n.LHS) {
			return diag.InvalidAssignmentTarget(ast.ExprString(n.LHS))
		}
	case *ast.Unary:
		switch n.Op {
		case ast.PreInc, ast.PreDec, ast.PostInc, ast.PostDec:
			if !Assignable(n.X) {
				return diag.InvalidAssignmentTarget(ast.ExprString(n.X))
			}
		}
	case *ast.Call:
		if !Callable(n) {
			return diag.NotCallable(ast.ExprString(n.Callee))
		}
	}
	return nil
}

// Stmts validates every expression in stmts.
func Stmts(stmts []ast.Stmt) error {
	var err error
	ast.InspectStmts(stmts, func(n ast.Expr) bool {
		if err != nil {
			return false
		}
		err = node(n)
		return err == nil
	})
	return err
}

// Program validates global initializers and function bodies in declaration
// order and returns the first failure.
func Program(prog *ast.Program) error {
	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.VarDecl:
			for _, v := range d.Vars {
				if err := Expr(v.Init); err != nil {
					return err
				}
			}
		case *ast.FuncDecl:
			if err := Stmts(d.Body); err != nil {
				return err
			}
		}
	}
	return nil
}
