package ast

// Stmt is a statement node.
// This is a sealed interface - only types in this package implement it.
type Stmt interface {
	stmt()
}

// ScopeID is a handle to a scope in a scope.Tree. The zero value means the
// node has not been resolved yet.
type ScopeID int

// NoScope marks a node the resolver has not visited.
const NoScope ScopeID = 0

// ExprStmt evaluates X for its side effects.
type ExprStmt struct {
	X Expr
}

// DeclStmt declares local variables.
type DeclStmt struct {
	Decl *VarDecl
}

// BlockStmt is `{ ... }`. It opens a nested scope.
type BlockStmt struct {
	Stmts []Stmt
	Scope ScopeID
}

// IfStmt is `if (Cond) Then else Else`. Else may be nil.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// DoWhileStmt is `do Body while (Cond);`.
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
}

// ForStmt is `for (Init; Cond; Post) Body`. Any clause may be nil.
type ForStmt struct {
	Init, Cond, Post Expr
	Body             Stmt
}

// ReturnStmt returns X, or nothing when X is nil.
type ReturnStmt struct {
	X Expr
}

// BreakStmt leaves the innermost loop or switch.
type BreakStmt struct{}

// ContinueStmt restarts the innermost loop.
type ContinueStmt struct{}

// GotoStmt jumps to a labeled statement in the same function.
type GotoStmt struct {
	Label string
}

// LabeledStmt is `Label: Stmt`.
type LabeledStmt struct {
	Label string
	Stmt  Stmt
}

// SwitchStmt is `switch (Tag) { case ...: ... default: ... }`.
// Default is nil when absent; its body is laid out after the cases.
type SwitchStmt struct {
	Tag     Expr
	Cases   []*CaseClause
	Default *CaseClause
	Scope   ScopeID
}

// CaseClause is one `case v1: case v2: body` group. Values are literals.
type CaseClause struct {
	Values []Expr
	Body   []Stmt
}

func (*ExprStmt) stmt() {}
func (*DeclStmt) stmt() {}
func (*BlockStmt) stmt() {}
func (*IfStmt) stmt() {}
func (*WhileStmt) stmt() {}
func (*DoWhileStmt) stmt() {}
func (*ForStmt) stmt() {}
func (*ReturnStmt) stmt() {}
func (*BreakStmt) stmt() {}
func (*ContinueStmt) stmt() {}
func (*GotoStmt) stmt() {}
func (*LabeledStmt) stmt() {}
func (*SwitchStmt) stmt() {}
