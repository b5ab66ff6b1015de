// Package lower translates a resolved, checked program into IR.
//
// Lowering is a single recursive walk per function. Statements are appended
// to the function body as they are produced; an expression lowers to an IR
// expression plus whatever statements its side effects need, which are
// appended before the expression is used. Structured control flow becomes
// labels and jumps.
package lower

import (
	"fmt"

	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/ir"
	"github.com/roach88/cbc/internal/scope"
)

// tempPrefix names compiler temporaries. Source identifiers cannot normally
// begin with two underscores, but a visible name is skipped regardless.
const tempPrefix = "__tmp"

// Program lowers every global variable and function definition of prog.
// tree is the scope tree the resolver built for prog.
func Program(prog *ast.Program, tree *scope.Tree) (*ir.Program, error) {
	out := &ir.Program{}

	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.VarDecl:
			for _, v := range d.Vars {
				dv, err := lowerGlobal(d, v)
				if err != nil {
					return nil, err
				}
				out.Vars = append(out.Vars, dv)
			}

		case *ast.FuncDecl:
			if d.IsPrototype() {
				continue
			}
			fl := &funcLowerer{tree: tree, labels: make(map[string]ir.Label), defined: make(map[string]bool)}
			f, err := fl.lowerFunc(d)
			if err != nil {
				return nil, err
			}
			out.Funcs = append(out.Funcs, f)
		}
	}

	return out, nil
}

// lowerGlobal requires a literal initializer.
func lowerGlobal(d *ast.VarDecl, v *ast.VarInit) (ir.DefinedVar, error) {
	dv := ir.DefinedVar{Name: v.Name, Type: d.Type, Private: d.Static}
	if v.Init == nil {
		return dv, nil
	}
	c, ok := constant(v.Init)
	if !ok {
		return dv, diag.NotAConstant(ast.ExprString(v.Init))
	}
	dv.Init = c
	return dv, nil
}

// constant converts a literal to an IR constant.
func constant(e ast.Expr) (*ir.Const, bool) {
	switch e := e.(type) {
	case *ast.IntLit:
		return ir.Int(e.Value), true
	case *ast.CharLit:
		return ir.Int(int64(e.Value)), true
	case *ast.StrLit:
		return ir.Str(e.Value), true
	}
	return nil, false
}

// funcLowerer holds the state of lowering one function.
type funcLowerer struct {
	tree *scope.Tree

	// scopes is the lexical chain at the current point, innermost last.
	scopes []*scope.Scope

	// locals holds every name declared anywhere in the function, since a
	// temporary lives for the whole function.
	locals map[string]bool

	breaks    []ir.Label
	continues []ir.Label

	nextLabel int
	nextTemp  int
	temps     []ir.Temp

	body []ir.Stmt

	// labels maps source labels to IR labels; defined records which have
	// been placed. gotos keeps first-use order for deterministic errors.
	labels  map[string]ir.Label
	defined map[string]bool
	gotos   []string
}

func (l *funcLowerer) lowerFunc(f *ast.FuncDecl) (ir.DefinedFunc, error) {
	s, ok := l.tree.Get(f.Scope)
	if !ok {
		return ir.DefinedFunc{}, diag.UnresolvedEntity(f.Name + " body scope")
	}
	l.scopes = append(l.scopes, s)
	l.locals = make(map[string]bool)
	collectNames(s, l.locals)

	if err := l.stmts(f.Body); err != nil {
		return ir.DefinedFunc{}, err
	}

	for _, name := range l.gotos {
		if !l.defined[name] {
			return ir.DefinedFunc{}, diag.UndefinedName(name)
		}
	}

	return ir.DefinedFunc{
		Name:    f.Name,
		Return:  f.Return,
		Params:  f.Params,
		Private: f.Static,
		Body:    l.body,
		Temps:   l.temps,
	}, nil
}

func (l *funcLowerer) emit(s ir.Stmt) {
	l.body = append(l.body, s)
}

func (l *funcLowerer) newLabel() ir.Label {
	lb := ir.Label(l.nextLabel)
	l.nextLabel++
	return lb
}

// userLabel returns the IR label for a source label, allocating it on first
// mention so forward gotos work.
func (l *funcLowerer) userLabel(name string) ir.Label {
	lb, ok := l.labels[name]
	if !ok {
		lb = l.newLabel()
		l.labels[name] = lb
	}
	return lb
}

func (l *funcLowerer) pushScope(id ast.ScopeID) error {
	s, ok := l.tree.Get(id)
	if !ok {
		return diag.UnresolvedEntity(fmt.Sprintf("scope %d", id))
	}
	l.scopes = append(l.scopes, s)
	return nil
}

func (l *funcLowerer) popScope() {
	l.scopes = l.scopes[:len(l.scopes)-1]
}

func collectNames(s *scope.Scope, into map[string]bool) {
	for _, name := range s.Names() {
		into[name] = true
	}
	for _, c := range s.Children() {
		collectNames(c, into)
	}
}

// visible reports whether name is bound in the current chain or declared
// elsewhere in the function.
func (l *funcLowerer) visible(name string) bool {
	if l.locals[name] {
		return true
	}
	if len(l.scopes) == 0 {
		return false
	}
	_, ok := l.scopes[len(l.scopes)-1].Lookup(name)
	return ok
}

// newTemp allocates a temporary of type t. The counter only grows, and names
// the program already uses are skipped.
func (l *funcLowerer) newTemp(t ast.TypeRef) *ir.Var {
	var name string
	for {
		name = fmt.Sprintf("%s%d", tempPrefix, l.nextTemp)
		l.nextTemp++
		if !l.visible(name) {
			break
		}
	}
	l.temps = append(l.temps, ir.Temp{Name: name, Type: t})
	return &ir.Var{Name: name, Entity: ast.Variable{Type: t}}
}

// addressOf turns an lvalue into the address it designates. A variable
// yields its address; a dereference yields the pointer it dereferences.
// Temporaries hold values, such as the old value of `a++`, and have no
// address the source can name.
func (l *funcLowerer) addressOf(e ir.Expr) (ir.Expr, error) {
	switch e := e.(type) {
	case *ir.Var:
		if l.isTemp(e.Name) {
			return nil, diag.InvalidAssignmentTarget(ir.ExprString(e))
		}
		return &ir.Addr{Name: e.Name, Entity: e.Entity}, nil
	case *ir.Mem:
		return e.X, nil
	}
	return nil, diag.InvalidAssignmentTarget(ir.ExprString(e))
}

func (l *funcLowerer) isTemp(name string) bool {
	for _, t := range l.temps {
		if t.Name == name {
			return true
		}
	}
	return false
}

func tempAddr(v *ir.Var) *ir.Addr {
	return &ir.Addr{Name: v.Name, Entity: v.Entity}
}
