package lower

import (
	"fmt"

	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/ir"
)

func (l *funcLowerer) stmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := l.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (l *funcLowerer) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case nil:
		return nil
	case *ast.ExprStmt:
		return l.effect(s.X)
	case *ast.DeclStmt:
		return l.declStmt(s.Decl)
	case *ast.BlockStmt:
		if err := l.pushScope(s.Scope); err != nil {
			return err
		}
		defer l.popScope()
		return l.stmts(s.Stmts)
	case *ast.IfStmt:
		return l.ifStmt(s)
	case *ast.WhileStmt:
		return l.whileStmt(s)
	case *ast.DoWhileStmt:
		return l.doWhileStmt(s)
	case *ast.ForStmt:
		return l.forStmt(s)
	case *ast.ReturnStmt:
		return l.returnStmt(s)
	case *ast.BreakStmt:
		if len(l.breaks) == 0 {
			return diag.UnresolvedEntity("break target")
		}
		l.emit(&ir.Jump{Target: l.breaks[len(l.breaks)-1]})
		return nil
	case *ast.ContinueStmt:
		if len(l.continues) == 0 {
			return diag.UnresolvedEntity("continue target")
		}
		l.emit(&ir.Jump{Target: l.continues[len(l.continues)-1]})
		return nil
	case *ast.GotoStmt:
		if !l.defined[s.Label] {
			l.gotos = append(l.gotos, s.Label)
		}
		l.emit(&ir.Jump{Target: l.userLabel(s.Label)})
		return nil
	case *ast.LabeledStmt:
		if l.defined[s.Label] {
			return diag.DuplicateDefinition(s.Label)
		}
		l.defined[s.Label] = true
		l.emit(&ir.LabelStmt{Label: l.userLabel(s.Label)})
		return l.stmt(s.Stmt)
	case *ast.SwitchStmt:
		return l.switchStmt(s)
	}
	return diag.Unsupported(fmt.Sprintf("statement %T", s))
}

// effect lowers e for its side effects. The value is kept as an expression
// statement only when evaluating it calls a function.
func (l *funcLowerer) effect(e ast.Expr) error {
	if e == nil {
		return nil
	}
	x, err := l.expr(e)
	if err != nil {
		return err
	}
	if hasCall(x) {
		l.emit(&ir.ExprStmt{X: x})
	}
	return nil
}

// declStmt assigns each initialised local in declaration order.
func (l *funcLowerer) declStmt(d *ast.VarDecl) error {
	for _, v := range d.Vars {
		if v.Init == nil {
			continue
		}
		if v.Entity == nil {
			return diag.UnresolvedEntity(v.Name)
		}
		val, err := l.expr(v.Init)
		if err != nil {
			return err
		}
		l.emit(&ir.Assign{Addr: &ir.Addr{Name: v.Name, Entity: v.Entity}, Value: val})
	}
	return nil
}

func (l *funcLowerer) ifStmt(s *ast.IfStmt) error {
	cond, err := l.expr(s.Cond)
	if err != nil {
		return err
	}

	then := l.newLabel()
	var elseLabel ir.Label
	if s.Else != nil {
		elseLabel = l.newLabel()
	}
	end := l.newLabel()
	if s.Else == nil {
		elseLabel = end
	}

	l.emit(&ir.CJump{Cond: cond, Then: then, Else: elseLabel})
	l.emit(&ir.LabelStmt{Label: then})
	if err := l.stmt(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		l.emit(&ir.Jump{Target: end})
		l.emit(&ir.LabelStmt{Label: elseLabel})
		if err := l.stmt(s.Else); err != nil {
			return err
		}
	}
	l.emit(&ir.LabelStmt{Label: end})
	return nil
}

// loop lowers body with break and continue bound to the given labels.
func (l *funcLowerer) loop(body ast.Stmt, brk, cont ir.Label) error {
	l.breaks = append(l.breaks, brk)
	l.continues = append(l.continues, cont)
	err := l.stmt(body)
	l.breaks = l.breaks[:len(l.breaks)-1]
	l.continues = l.continues[:len(l.continues)-1]
	return err
}

func (l *funcLowerer) whileStmt(s *ast.WhileStmt) error {
	begin, body, end := l.newLabel(), l.newLabel(), l.newLabel()

	l.emit(&ir.LabelStmt{Label: begin})
	cond, err := l.expr(s.Cond)
	if err != nil {
		return err
	}
	l.emit(&ir.CJump{Cond: cond, Then: body, Else: end})
	l.emit(&ir.LabelStmt{Label: body})
	if err := l.loop(s.Body, end, begin); err != nil {
		return err
	}
	l.emit(&ir.Jump{Target: begin})
	l.emit(&ir.LabelStmt{Label: end})
	return nil
}

func (l *funcLowerer) doWhileStmt(s *ast.DoWhileStmt) error {
	body, test, end := l.newLabel(), l.newLabel(), l.newLabel()

	l.emit(&ir.LabelStmt{Label: body})
	if err := l.loop(s.Body, end, test); err != nil {
		return err
	}
	l.emit(&ir.LabelStmt{Label: test})
	cond, err := l.expr(s.Cond)
	if err != nil {
		return err
	}
	l.emit(&ir.CJump{Cond: cond, Then: body, Else: end})
	l.emit(&ir.LabelStmt{Label: end})
	return nil
}

func (l *funcLowerer) forStmt(s *ast.ForStmt) error {
	if err := l.effect(s.Init); err != nil {
		return err
	}

	begin, body, cont, end := l.newLabel(), l.newLabel(), l.newLabel(), l.newLabel()

	l.emit(&ir.LabelStmt{Label: begin})
	if s.Cond != nil {
		cond, err := l.expr(s.Cond)
		if err != nil {
			return err
		}
		l.emit(&ir.CJump{Cond: cond, Then: body, Else: end})
	}
	l.emit(&ir.LabelStmt{Label: body})
	if err := l.loop(s.Body, end, cont); err != nil {
		return err
	}
	l.emit(&ir.LabelStmt{Label: cont})
	if err := l.effect(s.Post); err != nil {
		return err
	}
	l.emit(&ir.Jump{Target: begin})
	l.emit(&ir.LabelStmt{Label: end})
	return nil
}

func (l *funcLowerer) returnStmt(s *ast.ReturnStmt) error {
	if s.X == nil {
		l.emit(&ir.Return{})
		return nil
	}
	x, err := l.expr(s.X)
	if err != nil {
		return err
	}
	l.emit(&ir.Return{X: x})
	return nil
}

// switchStmt evaluates the tag once, tests each case value in source order,
// then lays out the case bodies so control falls through from one to the
// next. break jumps past the last body; continue still targets the
// enclosing loop.
func (l *funcLowerer) switchStmt(s *ast.SwitchStmt) error {
	tag, err := l.expr(s.Tag)
	if err != nil {
		return err
	}
	tmp := l.newTemp(typeOf(s.Tag))
	l.emit(&ir.Assign{Addr: tempAddr(tmp), Value: tag})

	if err := l.pushScope(s.Scope); err != nil {
		return err
	}
	defer l.popScope()

	bodies := make([]ir.Label, len(s.Cases))
	for i := range s.Cases {
		bodies[i] = l.newLabel()
	}
	end := l.newLabel()
	fallback := end
	var dflt ir.Label
	if s.Default != nil {
		dflt = l.newLabel()
		fallback = dflt
	}

	for i, cc := range s.Cases {
		for _, v := range cc.Values {
			c, ok := constant(v)
			if !ok {
				return diag.NotAConstant(ast.ExprString(v))
			}
			next := l.newLabel()
			l.emit(&ir.CJump{Cond: &ir.Binary{Op: ir.EQ, X: tmp, Y: c}, Then: bodies[i], Else: next})
			l.emit(&ir.LabelStmt{Label: next})
		}
	}
	l.emit(&ir.Jump{Target: fallback})

	l.breaks = append(l.breaks, end)
	defer func() { l.breaks = l.breaks[:len(l.breaks)-1] }()

	for i, cc := range s.Cases {
		l.emit(&ir.LabelStmt{Label: bodies[i]})
		if err := l.stmts(cc.Body); err != nil {
			return err
		}
	}
	if s.Default != nil {
		l.emit(&ir.LabelStmt{Label: dflt})
		if err := l.stmts(s.Default.Body); err != nil {
			return err
		}
	}
	l.emit(&ir.LabelStmt{Label: end})
	return nil
}
