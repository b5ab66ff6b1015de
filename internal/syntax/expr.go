package syntax

import (
	"unicode/utf8"

	"cuelang.org/go/cue"

	"github.com/roach88/cbc/internal/ast"
)

func decodeExpr(v cue.Value) (ast.Expr, error) {
	tag, body, err := tagged(v)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "int":
		n, err := body.Int64()
		if err != nil {
			return nil, errorAt(body, "expected integer, got %v", body.Kind())
		}
		return &ast.IntLit{Value: n}, nil

	case "char":
		s, err := stringOf(body)
		if err != nil {
			return nil, err
		}
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) {
			return nil, errorAt(body, "char literal must be exactly one character")
		}
		return &ast.CharLit{Value: r}, nil

	case "string":
		s, err := stringOf(body)
		if err != nil {
			return nil, err
		}
		return &ast.StrLit{Value: s}, nil

	case "ident":
		s, err := stringOf(body)
		if err != nil {
			return nil, err
		}
		return &ast.Ident{Name: s}, nil

	case "unary", "postfix":
		return decodeUnary(body, tag == "postfix")

	case "binary":
		opv, err := required(body, "op")
		if err != nil {
			return nil, err
		}
		sp, err := stringOf(opv)
		if err != nil {
			return nil, err
		}
		op, ok := ast.ParseBinaryOp(sp)
		if !ok {
			return nil, errorAt(opv, "unknown binary operator %q", sp)
		}
		x, y, err := operands(body, "x", "y")
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: op, X: x, Y: y}, nil

	case "assign":
		return decodeAssign(body)

	case "call":
		return decodeCall(body)

	case "cast":
		t, err := requiredType(body, "type")
		if err != nil {
			return nil, err
		}
		x, err := requiredExpr(body, "x")
		if err != nil {
			return nil, err
		}
		return &ast.Cast{Type: t, X: x}, nil

	case "cond":
		c, err := requiredExpr(body, "cond")
		if err != nil {
			return nil, err
		}
		then, els, err := operands(body, "then", "else")
		if err != nil {
			return nil, err
		}
		return &ast.Cond{Cond: c, Then: then, Else: els}, nil

	case "member":
		x, err := requiredExpr(body, "x")
		if err != nil {
			return nil, err
		}
		name, err := requiredString(body, "name")
		if err != nil {
			return nil, err
		}
		arrow, err := optionalBool(body, "arrow")
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{X: x, Name: name, Arrow: arrow}, nil

	case "index":
		x, idx, err := operands(body, "x", "index")
		if err != nil {
			return nil, err
		}
		return &ast.Index{X: x, Index: idx}, nil

	case "sizeof":
		x, err := decodeExpr(body)
		if err != nil {
			return nil, err
		}
		return &ast.SizeofExpr{X: x}, nil

	case "sizeof_type":
		s, err := stringOf(body)
		if err != nil {
			return nil, err
		}
		t, err := ParseType(s)
		if err != nil {
			return nil, errorAt(body, "%v", err)
		}
		return &ast.SizeofType{Type: t}, nil
	}
	return nil, errorAt(v, "unknown expression %q", tag)
}

func requiredExpr(v cue.Value, name string) (ast.Expr, error) {
	f, err := required(v, name)
	if err != nil {
		return nil, err
	}
	return decodeExpr(f)
}

// optionalExpr returns nil when the field is missing, null or {}.
func optionalExpr(v cue.Value, name string) (ast.Expr, error) {
	f, ok := lookup(v, name)
	if !ok || absent(f) {
		return nil, nil
	}
	return decodeExpr(f)
}

func operands(v cue.Value, a, b string) (ast.Expr, ast.Expr, error) {
	x, err := requiredExpr(v, a)
	if err != nil {
		return nil, nil, err
	}
	y, err := requiredExpr(v, b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// decodeUnary reads {op, x}. Prefix `++`/`--` and their postfix forms share
// a spelling; the tag selects which.
func decodeUnary(v cue.Value, postfix bool) (ast.Expr, error) {
	opv, err := required(v, "op")
	if err != nil {
		return nil, err
	}
	sp, err := stringOf(opv)
	if err != nil {
		return nil, err
	}

	op, ok := ast.ParseUnaryOp(sp)
	if postfix {
		switch op {
		case ast.PreInc:
			op = ast.PostInc
		case ast.PreDec:
			op = ast.PostDec
		default:
			ok = false
		}
	}
	if !ok {
		return nil, errorAt(opv, "unknown unary operator %q", sp)
	}

	x, err := requiredExpr(v, "x")
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, X: x}, nil
}

// decodeAssign reads {op?, lhs, rhs}. op defaults to "=".
func decodeAssign(v cue.Value) (ast.Expr, error) {
	sp := "="
	if opv, ok := lookup(v, "op"); ok {
		var err error
		if sp, err = stringOf(opv); err != nil {
			return nil, err
		}
	}
	lhs, rhs, err := operands(v, "lhs", "rhs")
	if err != nil {
		return nil, err
	}
	if sp == "=" {
		return &ast.Assign{LHS: lhs, RHS: rhs}, nil
	}
	op, ok := ast.ParseCompoundOp(sp)
	if !ok {
		return nil, errorAt(v, "unknown assignment operator %q", sp)
	}
	return &ast.CompoundAssign{Op: op, LHS: lhs, RHS: rhs}, nil
}

// decodeCall reads {func: name, args} or {callee: expr, args}.
func decodeCall(v cue.Value) (ast.Expr, error) {
	c := &ast.Call{}
	fv, byName := lookup(v, "func")
	cv, byExpr := lookup(v, "callee")
	switch {
	case byName && byExpr:
		return nil, errorAt(v, "func and callee are mutually exclusive")
	case byName:
		name, err := stringOf(fv)
		if err != nil {
			return nil, err
		}
		c.Callee = &ast.Ident{Name: name}
	case byExpr:
		callee, err := decodeExpr(cv)
		if err != nil {
			return nil, err
		}
		c.Callee = callee
	default:
		return nil, errorAt(v, "func is required")
	}

	if av, ok := lookup(v, "args"); ok {
		err := each(av, func(a cue.Value) error {
			x, err := decodeExpr(a)
			if err != nil {
				return err
			}
			c.Args = append(c.Args, x)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}
