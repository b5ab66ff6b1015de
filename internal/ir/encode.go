package ir

// Value returns the canonical JSON model of p. Types are rendered as C
// spellings and entities are omitted; names identify them.
func (p *Program) Value() Value {
	vars := make(VArray, len(p.Vars))
	for i, v := range p.Vars {
		obj := VObject{
			"name":    VString(v.Name),
			"type":    VString(v.Type.String()),
			"private": VBool(v.Private),
		}
		if v.Init != nil {
			obj["init"] = exprValue(v.Init)
		}
		vars[i] = obj
	}

	funcs := make(VArray, len(p.Funcs))
	for i, f := range p.Funcs {
		funcs[i] = funcValue(f)
	}

	return VObject{"vars": vars, "funcs": funcs}
}

// MarshalJSON encodes p canonically.
func (p *Program) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(p.Value())
}

func funcValue(f DefinedFunc) Value {
	params := make(VArray, len(f.Params.Fixed))
	for i, prm := range f.Params.Fixed {
		params[i] = VObject{"name": VString(prm.Name), "type": VString(prm.Type.String())}
	}
	temps := make(VArray, len(f.Temps))
	for i, t := range f.Temps {
		temps[i] = VObject{"name": VString(t.Name), "type": VString(t.Type.String())}
	}
	body := make(VArray, len(f.Body))
	for i, s := range f.Body {
		body[i] = stmtValue(s)
	}

	return VObject{
		"name":     VString(f.Name),
		"return":   VString(f.Return.String()),
		"params":   params,
		"variadic": VBool(f.Params.Variadic),
		"private":  VBool(f.Private),
		"temps":    temps,
		"body":     body,
	}
}

func stmtValue(s Stmt) Value {
	switch s := s.(type) {
	case *Return:
		obj := VObject{"kind": VString("return")}
		if s.X != nil {
			obj["x"] = exprValue(s.X)
		}
		return obj
	case *Jump:
		return VObject{"kind": VString("jump"), "target": VInt(s.Target)}
	case *CJump:
		return VObject{
			"kind": VString("cjump"),
			"cond": exprValue(s.Cond),
			"then": VInt(s.Then),
			"else": VInt(s.Else),
		}
	case *LabelStmt:
		return VObject{"kind": VString("label"), "label": VInt(s.Label)}
	case *ExprStmt:
		return VObject{"kind": VString("expr"), "x": exprValue(s.X)}
	case *Assign:
		return VObject{"kind": VString("assign"), "addr": exprValue(s.Addr), "value": exprValue(s.Value)}
	}
	return nil
}

func exprValue(e Expr) Value {
	switch e := e.(type) {
	case *Unary:
		return VObject{"kind": VString("unary"), "op": VString(e.Op.String()), "x": exprValue(e.X)}
	case *Binary:
		return VObject{
			"kind": VString("binary"),
			"op":   VString(e.Op.String()),
			"x":    exprValue(e.X),
			"y":    exprValue(e.Y),
		}
	case *Call:
		args := make(VArray, len(e.Args))
		for i, a := range e.Args {
			args[i] = exprValue(a)
		}
		return VObject{"kind": VString("call"), "name": VString(e.Name), "args": args}
	case *Addr:
		return VObject{"kind": VString("addr"), "name": VString(e.Name)}
	case *Mem:
		return VObject{"kind": VString("mem"), "x": exprValue(e.X)}
	case *Var:
		return VObject{"kind": VString("var"), "name": VString(e.Name)}
	case *Const:
		if e.Kind == StrConst {
			return VObject{"kind": VString("str"), "value": VString(e.Str)}
		}
		return VObject{"kind": VString("int"), "value": VInt(e.Int)}
	}
	return nil
}
