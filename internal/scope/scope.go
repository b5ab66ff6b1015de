// Package scope implements the lexical scope tree the resolver builds.
//
// Scopes live in an arena (Tree). A scope refers to its parent and children
// by ast.ScopeID, so the parent link is a lookup-only handle and never an
// owning reference. The root scope holds top-level declarations; each
// function body and nested block gets a child scope.
package scope

import (
	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
)

// Tree owns every scope created while resolving one program.
type Tree struct {
	scopes []*Scope
}

// NewTree creates a tree containing only the root scope.
func NewTree() *Tree {
	t := &Tree{}
	t.newScope(ast.NoScope)
	return t
}

// Root returns the top-level scope.
func (t *Tree) Root() *Scope {
	return t.scopes[0]
}

// Get returns the scope with the given handle.
func (t *Tree) Get(id ast.ScopeID) (*Scope, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(t.scopes) {
		return nil, false
	}
	return t.scopes[i], true
}

// Len returns the number of scopes in the tree.
func (t *Tree) Len() int {
	return len(t.scopes)
}

func (t *Tree) newScope(parent ast.ScopeID) *Scope {
	s := &Scope{
		tree:     t,
		id:       ast.ScopeID(len(t.scopes) + 1),
		parent:   parent,
		entities: make(map[string]ast.Entity),
	}
	t.scopes = append(t.scopes, s)
	return s
}

// Scope binds names to entities. Names are unique within one scope; an inner
// scope may shadow an outer one.
type Scope struct {
	tree     *Tree
	id       ast.ScopeID
	parent   ast.ScopeID
	children []ast.ScopeID
	entities map[string]ast.Entity
	order    []string // declaration order, for deterministic iteration
}

// ID returns the scope's handle.
func (s *Scope) ID() ast.ScopeID {
	return s.id
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope {
	p, ok := s.tree.Get(s.parent)
	if !ok {
		return nil
	}
	return p
}

// Child creates a nested scope registered under s.
func (s *Scope) Child() *Scope {
	c := s.tree.newScope(s.id)
	s.children = append(s.children, c.id)
	return c
}

// Children returns the nested scopes s created, in creation order.
func (s *Scope) Children() []*Scope {
	out := make([]*Scope, 0, len(s.children))
	for _, id := range s.children {
		c, _ := s.tree.Get(id)
		out = append(out, c)
	}
	return out
}

// Declare binds name in this scope. It fails when name is already bound here;
// bindings in enclosing scopes do not matter.
func (s *Scope) Declare(name string, e ast.Entity) error {
	if _, exists := s.entities[name]; exists {
		return diag.DuplicateDefinition(name)
	}
	s.entities[name] = e
	s.order = append(s.order, name)
	return nil
}

// Replace swaps the entity bound to name in this scope. Sites that resolved
// name earlier keep the entity they saw.
func (s *Scope) Replace(name string, e ast.Entity) error {
	if _, exists := s.entities[name]; !exists {
		return diag.UndefinedName(name)
	}
	s.entities[name] = e
	return nil
}

// Lookup finds name in this scope or the nearest enclosing scope binding it.
func (s *Scope) Lookup(name string) (ast.Entity, bool) {
	for cur := s; cur != nil; cur = cur.Parent() {
		if e, ok := cur.entities[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// LookupLocal finds name in this scope only.
func (s *Scope) LookupLocal(name string) (ast.Entity, bool) {
	e, ok := s.entities[name]
	return e, ok
}

// Names returns the names bound in this scope in declaration order.
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of names bound in this scope.
func (s *Scope) Len() int {
	return len(s.order)
}
