package ast

// Program is an ordered sequence of top-level declarations.
type Program struct {
	Decls []Decl
}

// Decl is a top-level declaration.
// This is a sealed interface - only types in this package implement it.
type Decl interface {
	decl()
}

// VarDecl declares one or more variables of the same type:
// `static int a, b = 1;`. It is used both at top level and inside bodies.
type VarDecl struct {
	Static bool
	Type   TypeRef
	Vars   []*VarInit
}

// VarInit is one name in a VarDecl with its optional initializer.
// Entity is the declared Variable, attached by the resolver.
type VarInit struct {
	Name   string
	Init   Expr
	Entity Entity
}

// FuncDecl is a function definition, or a prototype when Body is nil.
// Scope is the body's scope, attached by the resolver.
type FuncDecl struct {
	Static bool
	Return TypeRef
	Name   string
	Params Params
	Body   []Stmt
	Scope  ScopeID
}

// IsPrototype reports whether the declaration has no body.
func (f *FuncDecl) IsPrototype() bool { return f.Body == nil }

// StructDecl defines `struct Name { Members }`.
type StructDecl struct {
	Name    string
	Members []Member
}

// UnionDecl defines `union Name { Members }`.
type UnionDecl struct {
	Name    string
	Members []Member
}

// TypedefDecl defines `typedef Type Name;`.
type TypedefDecl struct {
	Name string
	Type TypeRef
}

// ImportDecl is an import directive. The semantic core ignores it.
type ImportDecl struct {
	Path []string
}

func (*VarDecl) decl() {}
func (*FuncDecl) decl() {}
func (*StructDecl) decl() {}
func (*UnionDecl) decl() {}
func (*TypedefDecl) decl() {}
func (*ImportDecl) decl() {}
