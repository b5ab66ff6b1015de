package ast

// Inspect traverses e depth-first, calling f for e and each subexpression.
// When f returns false the children of that node are skipped.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	switch e := e.(type) {
	case *Unary:
		Inspect(e.X, f)
	case *Binary:
		Inspect(e.X, f)
		Inspect(e.Y, f)
	case *Assign:
		Inspect(e.LHS, f)
		Inspect(e.RHS, f)
	case *CompoundAssign:
		Inspect(e.LHS, f)
		Inspect(e.RHS, f)
	case *Call:
		Inspect(e.Callee, f)
		for _, a := range e.Args {
			Inspect(a, f)
		}
	case *Cast:
		Inspect(e.X, f)
	case *Cond:
		Inspect(e.Cond, f)
		Inspect(e.Then, f)
		Inspect(e.Else, f)
	case *FieldAccess:
		Inspect(e.X, f)
	case *Index:
		Inspect(e.X, f)
		Inspect(e.Index, f)
	case *SizeofExpr:
		Inspect(e.X, f)
	}
}

// InspectStmts calls Inspect on every expression appearing in stmts,
// including local initializers and nested statements.
func InspectStmts(stmts []Stmt, f func(Expr) bool) {
	for _, s := range stmts {
		inspectStmt(s, f)
	}
}

func inspectStmt(s Stmt, f func(Expr) bool) {
	switch s := s.(type) {
	case *ExprStmt:
		Inspect(s.X, f)
	case *DeclStmt:
		for _, v := range s.Decl.Vars {
			Inspect(v.Init, f)
		}
	case *BlockStmt:
		InspectStmts(s.Stmts, f)
	case *IfStmt:
		Inspect(s.Cond, f)
		inspectStmt(s.Then, f)
		inspectStmt(s.Else, f)
	case *WhileStmt:
		Inspect(s.Cond, f)
		inspectStmt(s.Body, f)
	case *DoWhileStmt:
		inspectStmt(s.Body, f)
		Inspect(s.Cond, f)
	case *ForStmt:
		Inspect(s.Init, f)
		Inspect(s.Cond, f)
		Inspect(s.Post, f)
		inspectStmt(s.Body, f)
	case *ReturnStmt:
		Inspect(s.X, f)
	case *LabeledStmt:
		inspectStmt(s.Stmt, f)
	case *SwitchStmt:
		Inspect(s.Tag, f)
		for _, c := range s.Cases {
			for _, v := range c.Values {
				Inspect(v, f)
			}
			InspectStmts(c.Body, f)
		}
		if s.Default != nil {
			InspectStmts(s.Default.Body, f)
		}
	}
}
