package syntax

import (
	"cuelang.org/go/cue"

	"github.com/roach88/cbc/internal/ast"
)

func decodeStmts(v cue.Value) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	err := each(v, func(sv cue.Value) error {
		s, err := decodeStmt(sv)
		if err != nil {
			return err
		}
		stmts = append(stmts, s)
		return nil
	})
	return stmts, err
}

func decodeStmt(v cue.Value) (ast.Stmt, error) {
	tag, body, err := tagged(v)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "expr":
		x, err := decodeExpr(body)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil

	case "local":
		d, err := decodeVarDecl(body)
		if err != nil {
			return nil, err
		}
		return &ast.DeclStmt{Decl: d}, nil

	case "block":
		stmts, err := decodeStmts(body)
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Stmts: stmts}, nil

	case "if":
		c, err := requiredExpr(body, "cond")
		if err != nil {
			return nil, err
		}
		then, err := requiredStmt(body, "then")
		if err != nil {
			return nil, err
		}
		s := &ast.IfStmt{Cond: c, Then: then}
		if ev, ok := lookup(body, "else"); ok && !absent(ev) {
			if s.Else, err = decodeStmt(ev); err != nil {
				return nil, err
			}
		}
		return s, nil

	case "while":
		c, err := requiredExpr(body, "cond")
		if err != nil {
			return nil, err
		}
		b, err := requiredStmt(body, "body")
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: c, Body: b}, nil

	case "do":
		b, err := requiredStmt(body, "body")
		if err != nil {
			return nil, err
		}
		c, err := requiredExpr(body, "cond")
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStmt{Body: b, Cond: c}, nil

	case "for":
		return decodeFor(body)

	case "return":
		x, err := optionalValue(body)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{X: x}, nil

	case "break":
		return &ast.BreakStmt{}, nil

	case "continue":
		return &ast.ContinueStmt{}, nil

	case "goto":
		label, err := stringOf(body)
		if err != nil {
			return nil, err
		}
		return &ast.GotoStmt{Label: label}, nil

	case "label":
		name, err := requiredString(body, "name")
		if err != nil {
			return nil, err
		}
		s, err := requiredStmt(body, "stmt")
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStmt{Label: name, Stmt: s}, nil

	case "switch":
		return decodeSwitch(body)
	}
	return nil, errorAt(v, "unknown statement %q", tag)
}

func requiredStmt(v cue.Value, name string) (ast.Stmt, error) {
	f, err := required(v, name)
	if err != nil {
		return nil, err
	}
	return decodeStmt(f)
}

// optionalValue decodes v as an expression unless it is null or {}.
func optionalValue(v cue.Value) (ast.Expr, error) {
	if absent(v) {
		return nil, nil
	}
	return decodeExpr(v)
}

func decodeFor(v cue.Value) (ast.Stmt, error) {
	init, err := optionalExpr(v, "init")
	if err != nil {
		return nil, err
	}
	cond, err := optionalExpr(v, "cond")
	if err != nil {
		return nil, err
	}
	post, err := optionalExpr(v, "post")
	if err != nil {
		return nil, err
	}
	b, err := requiredStmt(v, "body")
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: b}, nil
}

// decodeSwitch reads {tag, cases: [{values, body}], default?: [stmts]}.
func decodeSwitch(v cue.Value) (ast.Stmt, error) {
	tag, err := requiredExpr(v, "tag")
	if err != nil {
		return nil, err
	}
	s := &ast.SwitchStmt{Tag: tag}

	if cv, ok := lookup(v, "cases"); ok {
		err := each(cv, func(c cue.Value) error {
			cc := &ast.CaseClause{}
			vv, err := required(c, "values")
			if err != nil {
				return err
			}
			err = each(vv, func(x cue.Value) error {
				e, err := decodeExpr(x)
				if err != nil {
					return err
				}
				cc.Values = append(cc.Values, e)
				return nil
			})
			if err != nil {
				return err
			}
			if len(cc.Values) == 0 {
				return errorAt(vv, "a case needs at least one value")
			}
			if bv, ok := lookup(c, "body"); ok {
				if cc.Body, err = decodeStmts(bv); err != nil {
					return err
				}
			}
			s.Cases = append(s.Cases, cc)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if dv, ok := lookup(v, "default"); ok {
		body, err := decodeStmts(dv)
		if err != nil {
			return nil, err
		}
		s.Default = &ast.CaseClause{Body: body}
	}
	return s, nil
}
