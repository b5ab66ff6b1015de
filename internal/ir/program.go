package ir

import (
	"fmt"

	"github.com/roach88/cbc/internal/ast"
)

// Program is the lowered form of a whole translation unit.
type Program struct {
	Vars  []DefinedVar
	Funcs []DefinedFunc
}

// DefinedVar is a global variable. Init is nil when the source has no
// initializer.
type DefinedVar struct {
	Name    string
	Type    ast.TypeRef
	Private bool
	Init    *Const
}

// DefinedFunc is a function with a body. Temps lists the temporaries lowering
// introduced, in creation order.
type DefinedFunc struct {
	Name    string
	Return  ast.TypeRef
	Params  ast.Params
	Private bool
	Body    []Stmt
	Temps   []Temp
}

// Temp is a compiler-generated local variable.
type Temp struct {
	Name string
	Type ast.TypeRef
}

// Label identifies a jump target within one function.
type Label int

func (l Label) String() string {
	return fmt.Sprintf(".L%d", int(l))
}

// Stmt is an IR statement.
// This is a sealed interface - only types in this package implement it.
type Stmt interface {
	stmt()
}

// Return leaves the function. X is nil for `return;`.
type Return struct {
	X Expr
}

// Jump transfers control to Target.
type Jump struct {
	Target Label
}

// CJump goes to Then when Cond is non-zero and to Else otherwise.
type CJump struct {
	Cond Expr
	Then Label
	Else Label
}

// LabelStmt defines a jump target.
type LabelStmt struct {
	Label Label
}

// ExprStmt evaluates X and discards the result.
type ExprStmt struct {
	X Expr
}

// Assign stores Value at the address Addr evaluates to.
type Assign struct {
	Addr  Expr
	Value Expr
}

func (*Return) stmt()    {}
func (*Jump) stmt()      {}
func (*CJump) stmt()     {}
func (*LabelStmt) stmt() {}
func (*ExprStmt) stmt()  {}
func (*Assign) stmt()    {}

// Expr is an IR expression.
// This is a sealed interface - only types in this package implement it.
type Expr interface {
	expr()
}

// Unary applies a one-operand Op.
type Unary struct {
	Op Op
	X  Expr
}

// Binary applies a two-operand Op.
type Binary struct {
	Op   Op
	X, Y Expr
}

// Call invokes the function Name. Entity is the callee's resolved
// declaration, normally a Function.
type Call struct {
	Name   string
	Args   []Expr
	Entity ast.Entity
}

// Addr is the address of a named variable.
type Addr struct {
	Name   string
	Entity ast.Entity
}

// Mem reads the memory X points to.
type Mem struct {
	X Expr
}

// Var reads a named variable.
type Var struct {
	Name   string
	Entity ast.Entity
}

// ConstKind distinguishes integer and string constants.
type ConstKind int

const (
	IntConst ConstKind = iota
	StrConst
)

// Const is a literal. Int is used for IntConst, Str for StrConst.
type Const struct {
	Kind ConstKind
	Int  int64
	Str  string
}

// Int returns an integer constant.
func Int(v int64) *Const { return &Const{Kind: IntConst, Int: v} }

// Str returns a string constant.
func Str(s string) *Const { return &Const{Kind: StrConst, Str: s} }

func (*Unary) expr()  {}
func (*Binary) expr() {}
func (*Call) expr()   {}
func (*Addr) expr()   {}
func (*Mem) expr()    {}
func (*Var) expr()    {}
func (*Const) expr()  {}
