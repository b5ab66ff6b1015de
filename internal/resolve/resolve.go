// Package resolve binds every name in a program to its declaration.
//
// Resolution runs in two passes over the top-level declarations. Pass 1
// declares names into the root scope without looking inside bodies or member
// lists, so functions and types may refer to each other in any order. Pass 2
// walks bodies and member lists, opening a child scope per function body,
// block and switch, and attaches a snapshot of the found entity to each use.
//
// The type-dependency cycle check runs between the two passes (see Program).
package resolve

import (
	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/scope"
	"github.com/roach88/cbc/internal/typedep"
)

// Resolver carries the scope tree across both passes.
type Resolver struct {
	tree *scope.Tree

	// protos holds function names declared only by a prototype so far.
	// A single definition may follow them.
	protos map[string]bool

	// typedefs being deep-resolved, to stop at pointer loops between aliases.
	resolving map[string]bool
}

// New creates a resolver with an empty root scope.
func New() *Resolver {
	return &Resolver{
		tree:      scope.NewTree(),
		protos:    make(map[string]bool),
		resolving: make(map[string]bool),
	}
}

// Tree returns the scope tree built so far.
func (r *Resolver) Tree() *scope.Tree {
	return r.tree
}

// Program runs pass 1, the cycle check and pass 2, stopping at the first
// error.
func Program(prog *ast.Program) (*scope.Tree, error) {
	r := New()
	if err := r.DeclareTopLevel(prog); err != nil {
		return nil, err
	}
	if err := typedep.Check(r.tree.Root()); err != nil {
		return nil, err
	}
	if err := r.ResolveBodies(prog); err != nil {
		return nil, err
	}
	return r.tree, nil
}

// DeclareTopLevel is pass 1. Each top-level name is declared in the root
// scope with its raw definition.
func (r *Resolver) DeclareTopLevel(prog *ast.Program) error {
	root := r.tree.Root()

	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.VarDecl:
			for _, v := range d.Vars {
				ent := ast.Variable{Type: d.Type, Private: d.Static, Init: v.Init}
				if err := root.Declare(v.Name, ent); err != nil {
					return err
				}
				v.Entity = ent
			}

		case *ast.FuncDecl:
			if err := r.declareFunc(root, d); err != nil {
				return err
			}

		case *ast.StructDecl:
			if err := root.Declare(d.Name, ast.Struct{Members: d.Members}); err != nil {
				return err
			}

		case *ast.UnionDecl:
			if err := root.Declare(d.Name, ast.Union{Members: d.Members}); err != nil {
				return err
			}

		case *ast.TypedefDecl:
			if err := root.Declare(d.Name, ast.TypeDef{Aliased: d.Type}); err != nil {
				return err
			}

		case *ast.ImportDecl:
			// no-op
		}
	}

	return nil
}

// declareFunc declares a function signature. A name may carry any number of
// prototypes and at most one definition.
func (r *Resolver) declareFunc(root *scope.Scope, f *ast.FuncDecl) error {
	ent := ast.Function{Return: f.Return, Private: f.Static, Params: f.Params}

	prev, exists := root.LookupLocal(f.Name)
	if !exists {
		if err := root.Declare(f.Name, ent); err != nil {
			return err
		}
		r.protos[f.Name] = f.IsPrototype()
		return nil
	}

	if _, ok := prev.(ast.Function); !ok {
		return diag.DuplicateDefinition(f.Name)
	}
	if f.IsPrototype() {
		return nil
	}
	if !r.protos[f.Name] {
		return diag.DuplicateDefinition(f.Name)
	}
	r.protos[f.Name] = false
	return root.Replace(f.Name, ent)
}

// ResolveBodies is pass 2. It cross-references member and alias types, then
// resolves global initializers and function bodies in declaration order.
func (r *Resolver) ResolveBodies(prog *ast.Program) error {
	root := r.tree.Root()

	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.StructDecl:
			members, err := r.resolveMembers(root, d.Members)
			if err != nil {
				return err
			}
			d.Members = members
			if err := root.Replace(d.Name, ast.Struct{Members: members}); err != nil {
				return err
			}

		case *ast.UnionDecl:
			members, err := r.resolveMembers(root, d.Members)
			if err != nil {
				return err
			}
			d.Members = members
			if err := root.Replace(d.Name, ast.Union{Members: members}); err != nil {
				return err
			}

		case *ast.TypedefDecl:
			t, err := r.resolveType(root, d.Type)
			if err != nil {
				return err
			}
			d.Type = t
			if err := root.Replace(d.Name, ast.TypeDef{Aliased: t}); err != nil {
				return err
			}
		}
	}

	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.VarDecl:
			if err := r.resolveGlobal(root, d); err != nil {
				return err
			}
		case *ast.FuncDecl:
			if err := r.resolveFunc(root, d); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Resolver) resolveMembers(s *scope.Scope, members []ast.Member) ([]ast.Member, error) {
	out := make([]ast.Member, len(members))
	for i, m := range members {
		t, err := r.resolveType(s, m.Type)
		if err != nil {
			return nil, err
		}
		out[i] = ast.Member{Name: m.Name, Type: t}
	}
	return out, nil
}

// resolveType attaches the declaration a named type refers to. `struct X`
// must name a struct, `union X` a union and a bare name a typedef.
func (r *Resolver) resolveType(s *scope.Scope, t ast.TypeRef) (ast.TypeRef, error) {
	if !t.IsNamed() {
		return t, nil
	}

	ent, ok := s.Lookup(t.Name)
	if !ok {
		return t, diag.UndefinedType(t.String())
	}

	switch ent := ent.(type) {
	case ast.Struct:
		if t.Base == ast.StructType {
			return t.WithEntity(ent), nil
		}
	case ast.Union:
		if t.Base == ast.UnionType {
			return t.WithEntity(ent), nil
		}
	case ast.TypeDef:
		if t.Base != ast.NamedType {
			break
		}
		// Follow the alias chain so signedness is visible at every use.
		if !r.resolving[t.Name] && ent.Aliased.IsNamed() && ent.Aliased.Entity == nil {
			r.resolving[t.Name] = true
			aliased, err := r.resolveType(s, ent.Aliased)
			delete(r.resolving, t.Name)
			if err != nil {
				return t, err
			}
			ent.Aliased = aliased
		}
		return t.WithEntity(ent), nil
	}

	return t, diag.UndefinedType(t.String())
}

func (r *Resolver) resolveGlobal(root *scope.Scope, d *ast.VarDecl) error {
	t, err := r.resolveType(root, d.Type)
	if err != nil {
		return err
	}
	d.Type = t

	for _, v := range d.Vars {
		if v.Init != nil {
			if err := r.resolveExpr(root, v.Init); err != nil {
				return err
			}
		}
		ent := ast.Variable{Type: t, Private: d.Static, Init: v.Init}
		if err := root.Replace(v.Name, ent); err != nil {
			return err
		}
		v.Entity = ent
	}
	return nil
}

func (r *Resolver) resolveParams(s *scope.Scope, p ast.Params) (ast.Params, error) {
	out := ast.Params{Variadic: p.Variadic}
	for _, param := range p.Fixed {
		t, err := r.resolveType(s, param.Type)
		if err != nil {
			return ast.Params{}, err
		}
		out.Fixed = append(out.Fixed, ast.Param{Type: t, Name: param.Name})
	}
	return out, nil
}

func (r *Resolver) resolveFunc(root *scope.Scope, f *ast.FuncDecl) error {
	ret, err := r.resolveType(root, f.Return)
	if err != nil {
		return err
	}
	params, err := r.resolveParams(root, f.Params)
	if err != nil {
		return err
	}
	f.Return, f.Params = ret, params

	if f.IsPrototype() {
		return nil
	}

	ent := ast.Function{Return: ret, Private: f.Static, Params: params}
	if err := root.Replace(f.Name, ent); err != nil {
		return err
	}

	body := root.Child()
	f.Scope = body.ID()

	for _, p := range params.Fixed {
		if p.Name == "" {
			continue
		}
		if err := body.Declare(p.Name, ast.Variable{Type: p.Type}); err != nil {
			return err
		}
	}

	return r.resolveStmts(body, f.Body)
}
