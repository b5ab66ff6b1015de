package ast

// Entity describes a resolved declaration.
//
// This is a sealed interface. Implementations are value types and are never
// mutated after construction; a scope replaces its entry instead.
//
// Entity types:
//   - Variable: globals, locals and parameters
//   - Function: definitions and prototypes
//   - Struct, Union: member lists
//   - TypeDef: an alias for another type
type Entity interface {
	entity()
	Kind() string
}

// Variable is a declared object.
type Variable struct {
	Type    TypeRef
	Private bool // declared static
	Init    Expr // nil when uninitialised
}

// Function is a declared function signature.
type Function struct {
	Return  TypeRef
	Private bool
	Params  Params
}

// Struct is a struct definition.
type Struct struct {
	Members []Member
}

// Union is a union definition.
type Union struct {
	Members []Member
}

// TypeDef aliases another type.
type TypeDef struct {
	Aliased TypeRef
}

// Member is a named field of a struct or union.
type Member struct {
	Name string
	Type TypeRef
}

// Params is a function parameter list. An empty, non-variadic list is `(void)`.
type Params struct {
	Fixed    []Param
	Variadic bool
}

// Param is one named parameter.
type Param struct {
	Type TypeRef
	Name string
}

func (Variable) entity() {}
func (Function) entity() {}
func (Struct) entity() {}
func (Union) entity() {}
func (TypeDef) entity() {}

func (Variable) Kind() string { return "variable" }
func (Function) Kind() string { return "function" }
func (Struct) Kind() string { return "struct" }
func (Union) Kind() string { return "union" }
func (TypeDef) Kind() string { return "typedef" }
