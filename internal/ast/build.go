package ast

// Constructors for building trees by hand, mostly in tests and fixtures.

// Num returns an integer literal.
func Num(v int64) *IntLit { return &IntLit{Value: v} }

// Str returns a string literal.
func Str(s string) *StrLit { return &StrLit{Value: s} }

// Name returns an unresolved identifier.
func Name(n string) *Ident { return &Ident{Name: n} }

// Bin returns `x op y`.
func Bin(op BinaryOp, x, y Expr) *Binary { return &Binary{Op: op, X: x, Y: y} }

// Un returns `op x` (or `x op` for postfix operators).
func Un(op UnaryOp, x Expr) *Unary { return &Unary{Op: op, X: x} }

// Set returns `lhs = rhs`.
func Set(lhs, rhs Expr) *Assign { return &Assign{LHS: lhs, RHS: rhs} }

// SetOp returns `lhs op= rhs`.
func SetOp(op BinaryOp, lhs, rhs Expr) *CompoundAssign {
	return &CompoundAssign{Op: op, LHS: lhs, RHS: rhs}
}

// CallTo returns `name(args...)`.
func CallTo(name string, args ...Expr) *Call {
	return &Call{Callee: Name(name), Args: args}
}

// Eval wraps x as an expression statement.
func Eval(x Expr) *ExprStmt { return &ExprStmt{X: x} }

// Ret returns `return x;` (x may be nil).
func Ret(x Expr) *ReturnStmt { return &ReturnStmt{X: x} }

// Block returns `{ stmts... }`.
func Block(stmts ...Stmt) *BlockStmt { return &BlockStmt{Stmts: stmts} }

// Vars returns a declaration of several variables sharing a type.
func Vars(static bool, t TypeRef, vars ...*VarInit) *VarDecl {
	return &VarDecl{Static: static, Type: t, Vars: vars}
}

// V returns one declared name with an optional initializer.
func V(name string, init Expr) *VarInit { return &VarInit{Name: name, Init: init} }

// Local returns a local declaration statement of a single variable.
func Local(t TypeRef, name string, init Expr) *DeclStmt {
	return &DeclStmt{Decl: Vars(false, t, V(name, init))}
}

// Func returns a function definition. Pass a nil body for a prototype.
func Func(ret TypeRef, name string, params []Param, body ...Stmt) *FuncDecl {
	if body == nil {
		body = []Stmt{}
	}
	return &FuncDecl{Return: ret, Name: name, Params: Params{Fixed: params}, Body: body}
}

// Prototype returns a function declaration without a body.
func Prototype(ret TypeRef, name string, params ...Param) *FuncDecl {
	return &FuncDecl{Return: ret, Name: name, Params: Params{Fixed: params}}
}

// Prog returns a program of decls.
func Prog(decls ...Decl) *Program { return &Program{Decls: decls} }
