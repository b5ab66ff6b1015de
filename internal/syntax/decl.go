package syntax

import (
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/cbc/internal/ast"
)

func decodeProgram(v cue.Value) (*ast.Program, error) {
	prog := &ast.Program{}
	err := each(v, func(dv cue.Value) error {
		d, err := decodeDecl(dv)
		if err != nil {
			return err
		}
		prog.Decls = append(prog.Decls, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func decodeDecl(v cue.Value) (ast.Decl, error) {
	tag, body, err := tagged(v)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "var":
		return decodeVarDecl(body)
	case "func":
		return decodeFunc(body, true)
	case "extern":
		return decodeFunc(body, false)
	case "struct":
		name, members, err := decodeComposite(body)
		if err != nil {
			return nil, err
		}
		return &ast.StructDecl{Name: name, Members: members}, nil
	case "union":
		name, members, err := decodeComposite(body)
		if err != nil {
			return nil, err
		}
		return &ast.UnionDecl{Name: name, Members: members}, nil
	case "typedef":
		name, err := requiredString(body, "name")
		if err != nil {
			return nil, err
		}
		t, err := requiredType(body, "type")
		if err != nil {
			return nil, err
		}
		return &ast.TypedefDecl{Name: name, Type: t}, nil
	case "import":
		s, err := stringOf(body)
		if err != nil {
			return nil, err
		}
		return &ast.ImportDecl{Path: strings.Split(s, ".")}, nil
	}
	return nil, errorAt(v, "unknown declaration %q", tag)
}

// decodeVarDecl reads {type, static?, names: [{name, init?}]}. A single
// variable may be written as {type, name, init?} instead.
func decodeVarDecl(v cue.Value) (*ast.VarDecl, error) {
	t, err := requiredType(v, "type")
	if err != nil {
		return nil, err
	}
	static, err := optionalBool(v, "static")
	if err != nil {
		return nil, err
	}
	d := &ast.VarDecl{Static: static, Type: t}

	names, ok := lookup(v, "names")
	if !ok {
		vi, err := decodeVarInit(v)
		if err != nil {
			return nil, err
		}
		d.Vars = []*ast.VarInit{vi}
		return d, nil
	}

	err = each(names, func(nv cue.Value) error {
		vi, err := decodeVarInit(nv)
		if err != nil {
			return err
		}
		d.Vars = append(d.Vars, vi)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(d.Vars) == 0 {
		return nil, errorAt(names, "at least one name is required")
	}
	return d, nil
}

func decodeVarInit(v cue.Value) (*ast.VarInit, error) {
	name, err := requiredString(v, "name")
	if err != nil {
		return nil, err
	}
	vi := &ast.VarInit{Name: name}
	if iv, ok := lookup(v, "init"); ok {
		vi.Init, err = decodeExpr(iv)
		if err != nil {
			return nil, err
		}
	}
	return vi, nil
}

// decodeFunc reads a function. A definition requires a body; a prototype
// must not have one.
func decodeFunc(v cue.Value, definition bool) (*ast.FuncDecl, error) {
	name, err := requiredString(v, "name")
	if err != nil {
		return nil, err
	}
	ret, err := requiredType(v, "return")
	if err != nil {
		return nil, err
	}
	static, err := optionalBool(v, "static")
	if err != nil {
		return nil, err
	}
	variadic, err := optionalBool(v, "variadic")
	if err != nil {
		return nil, err
	}

	f := &ast.FuncDecl{Static: static, Return: ret, Name: name, Params: ast.Params{Variadic: variadic}}
	if pv, ok := lookup(v, "params"); ok {
		err := each(pv, func(p cue.Value) error {
			t, err := requiredType(p, "type")
			if err != nil {
				return err
			}
			param := ast.Param{Type: t}
			if nv, ok := lookup(p, "name"); ok {
				if param.Name, err = stringOf(nv); err != nil {
					return err
				}
			}
			f.Params.Fixed = append(f.Params.Fixed, param)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	bv, hasBody := lookup(v, "body")
	switch {
	case !definition && hasBody:
		return nil, errorAt(bv, "extern %s must not have a body", name)
	case !definition:
		return f, nil
	case !hasBody:
		return nil, errorAt(v, "body is required")
	}

	f.Body, err = decodeStmts(bv)
	if err != nil {
		return nil, err
	}
	if f.Body == nil {
		f.Body = []ast.Stmt{}
	}
	return f, nil
}

func decodeComposite(v cue.Value) (string, []ast.Member, error) {
	name, err := requiredString(v, "name")
	if err != nil {
		return "", nil, err
	}
	mv, err := required(v, "members")
	if err != nil {
		return "", nil, err
	}

	var members []ast.Member
	err = each(mv, func(m cue.Value) error {
		n, err := requiredString(m, "name")
		if err != nil {
			return err
		}
		t, err := requiredType(m, "type")
		if err != nil {
			return err
		}
		members = append(members, ast.Member{Name: n, Type: t})
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return name, members, nil
}
