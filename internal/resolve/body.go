package resolve

import (
	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/scope"
)

func (r *Resolver) resolveStmts(s *scope.Scope, stmts []ast.Stmt) error {
	for _, st := range stmts {
		if err := r.resolveStmt(s, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStmt(s *scope.Scope, st ast.Stmt) error {
	switch st := st.(type) {
	case nil:
		return nil

	case *ast.ExprStmt:
		return r.resolveExpr(s, st.X)

	case *ast.DeclStmt:
		return r.resolveLocal(s, st.Decl)

	case *ast.BlockStmt:
		inner := s.Child()
		st.Scope = inner.ID()
		return r.resolveStmts(inner, st.Stmts)

	case *ast.IfStmt:
		if err := r.resolveExpr(s, st.Cond); err != nil {
			return err
		}
		if err := r.resolveStmt(s, st.Then); err != nil {
			return err
		}
		return r.resolveStmt(s, st.Else)

	case *ast.WhileStmt:
		if err := r.resolveExpr(s, st.Cond); err != nil {
			return err
		}
		return r.resolveStmt(s, st.Body)

	case *ast.DoWhileStmt:
		if err := r.resolveStmt(s, st.Body); err != nil {
			return err
		}
		return r.resolveExpr(s, st.Cond)

	case *ast.ForStmt:
		for _, e := range []ast.Expr{st.Init, st.Cond, st.Post} {
			if err := r.resolveExpr(s, e); err != nil {
				return err
			}
		}
		return r.resolveStmt(s, st.Body)

	case *ast.ReturnStmt:
		return r.resolveExpr(s, st.X)

	case *ast.BreakStmt, *ast.ContinueStmt, *ast.GotoStmt:
		return nil

	case *ast.LabeledStmt:
		return r.resolveStmt(s, st.Stmt)

	case *ast.SwitchStmt:
		if err := r.resolveExpr(s, st.Tag); err != nil {
			return err
		}
		inner := s.Child()
		st.Scope = inner.ID()
		clauses := st.Cases
		if st.Default != nil {
			clauses = append(clauses[:len(clauses):len(clauses)], st.Default)
		}
		for _, cc := range clauses {
			for _, v := range cc.Values {
				if err := r.resolveExpr(inner, v); err != nil {
					return err
				}
			}
			if err := r.resolveStmts(inner, cc.Body); err != nil {
				return err
			}
		}
		return nil
	}

	return nil
}

// resolveLocal declares local variables one at a time. Each initializer is
// resolved before its own name is declared, so `int a = a;` sees only an
// outer `a`.
func (r *Resolver) resolveLocal(s *scope.Scope, d *ast.VarDecl) error {
	t, err := r.resolveType(s, d.Type)
	if err != nil {
		return err
	}
	d.Type = t

	for _, v := range d.Vars {
		if err := r.resolveExpr(s, v.Init); err != nil {
			return err
		}
		ent := ast.Variable{Type: t, Private: d.Static, Init: v.Init}
		if err := s.Declare(v.Name, ent); err != nil {
			return err
		}
		v.Entity = ent
	}
	return nil
}

func (r *Resolver) resolveExpr(s *scope.Scope, e ast.Expr) error {
	switch e := e.(type) {
	case nil, *ast.IntLit, *ast.CharLit, *ast.StrLit:
		return nil

	case *ast.Ident:
		ent, ok := s.Lookup(e.Name)
		if !ok {
			return diag.UndefinedName(e.Name)
		}
		e.Entity = ent
		return nil

	case *ast.Unary:
		return r.resolveExpr(s, e.X)

	case *ast.Binary:
		return r.resolveExprs(s, e.X, e.Y)

	case *ast.Assign:
		return r.resolveExprs(s, e.LHS, e.RHS)

	case *ast.CompoundAssign:
		return r.resolveExprs(s, e.LHS, e.RHS)

	case *ast.Call:
		if err := r.resolveExpr(s, e.Callee); err != nil {
			return err
		}
		if id, ok := e.Callee.(*ast.Ident); ok {
			e.Entity = id.Entity
		}
		return r.resolveExprs(s, e.Args...)

	case *ast.Cast:
		t, err := r.resolveType(s, e.Type)
		if err != nil {
			return err
		}
		e.Type = t
		return r.resolveExpr(s, e.X)

	case *ast.Cond:
		return r.resolveExprs(s, e.Cond, e.Then, e.Else)

	case *ast.FieldAccess:
		return r.resolveExpr(s, e.X)

	case *ast.Index:
		return r.resolveExprs(s, e.X, e.Index)

	case *ast.SizeofExpr:
		return r.resolveExpr(s, e.X)

	case *ast.SizeofType:
		t, err := r.resolveType(s, e.Type)
		if err != nil {
			return err
		}
		e.Type = t
		return nil
	}

	return nil
}

func (r *Resolver) resolveExprs(s *scope.Scope, exprs ...ast.Expr) error {
	for _, e := range exprs {
		if err := r.resolveExpr(s, e); err != nil {
			return err
		}
	}
	return nil
}
