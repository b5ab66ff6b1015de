// Package testutil provides fixtures shared by package tests: the small
// programs the semantic passes are specified against, IR inspection helpers,
// and deterministic stand-ins for the build cache's clock and ID source.
package testutil

import (
	"github.com/roach88/cbc/internal/ast"
)

var (
	intT  = ast.TypeOf(ast.Int)
	voidT = ast.TypeOf(ast.Void)
)

// GlobalsAndMain is
//
//	int a = 1;
//	int b = 2, c = 3;
//	void main(void) { int d = 10; a = d + b + c; }
func GlobalsAndMain() *ast.Program {
	return ast.Prog(
		ast.Vars(false, intT, ast.V("a", ast.Num(1))),
		ast.Vars(false, intT, ast.V("b", ast.Num(2)), ast.V("c", ast.Num(3))),
		ast.Func(voidT, "main", nil,
			ast.Local(intT, "d", ast.Num(10)),
			ast.Eval(ast.Set(ast.Name("a"),
				ast.Bin(ast.Add, ast.Bin(ast.Add, ast.Name("d"), ast.Name("b")), ast.Name("c")))),
		),
	)
}

// Shadowing is
//
//	int a = 1;
//	void main(void) { int a = 2; a = 3; }
func Shadowing() *ast.Program {
	return ast.Prog(
		ast.Vars(false, intT, ast.V("a", ast.Num(1))),
		ast.Func(voidT, "main", nil,
			ast.Local(intT, "a", ast.Num(2)),
			ast.Eval(ast.Set(ast.Name("a"), ast.Num(3))),
		),
	)
}

// ShortCircuit is
//
//	int x;
//	int f(void) { x = 5; return 1; }
//	void main(void) { int r; r = x && f(); }
func ShortCircuit() *ast.Program {
	return ast.Prog(
		ast.Vars(false, intT, ast.V("x", nil)),
		ast.Func(intT, "f", nil,
			ast.Eval(ast.Set(ast.Name("x"), ast.Num(5))),
			ast.Ret(ast.Num(1)),
		),
		ast.Func(voidT, "main", nil,
			ast.Local(intT, "r", nil),
			ast.Eval(ast.Set(ast.Name("r"), ast.Bin(ast.LogAnd, ast.Name("x"), ast.CallTo("f")))),
		),
	)
}

// MutualStructs is
//
//	struct A { struct B b; };
//	struct B { struct A a; };
//
// With pointer set, B's member becomes `struct A *a` and the cycle is
// broken.
func MutualStructs(pointer bool) *ast.Program {
	aType := ast.StructRef("A")
	if pointer {
		aType = aType.Pointer()
	}
	return ast.Prog(
		&ast.StructDecl{Name: "A", Members: []ast.Member{{Name: "b", Type: ast.StructRef("B")}}},
		&ast.StructDecl{Name: "B", Members: []ast.Member{{Name: "a", Type: aType}}},
	)
}

// TypedefChain is
//
//	union B { int n; };
//	typedef union B unionC;
//	typedef unionC unionD;
func TypedefChain() *ast.Program {
	return ast.Prog(
		&ast.UnionDecl{Name: "B", Members: []ast.Member{{Name: "n", Type: intT}}},
		&ast.TypedefDecl{Name: "unionC", Type: ast.UnionRef("B")},
		&ast.TypedefDecl{Name: "unionD", Type: ast.NamedRef("unionC")},
	)
}

// Loops is a function exercising every loop form, break, continue, goto and
// switch:
//
//	int loops(int n) {
//	  int s = 0;
//	  while (n > 0) { if (n == 3) { n = n - 1; continue; } s += n; n--; }
//	  do { s = s - 1; } while (s > 100);
//	  for (n = 0; n < 4; n++) { if (n == 2) break; }
//	  switch (n) { case 1: case 2: s = 1; break; case 3: s = 2; default: s = 3; }
//	  if (s) goto done;
//	  s = 0;
//	done:
//	  return s;
//	}
func Loops() *ast.Program {
	return ast.Prog(
		ast.Func(intT, "loops", []ast.Param{{Type: intT, Name: "n"}},
			ast.Local(intT, "s", ast.Num(0)),
			&ast.WhileStmt{
				Cond: ast.Bin(ast.Gt, ast.Name("n"), ast.Num(0)),
				Body: ast.Block(
					&ast.IfStmt{
						Cond: ast.Bin(ast.Eq, ast.Name("n"), ast.Num(3)),
						Then: ast.Block(ast.Eval(ast.Set(ast.Name("n"), ast.Bin(ast.Sub, ast.Name("n"), ast.Num(1)))), &ast.ContinueStmt{}),
					},
					ast.Eval(ast.SetOp(ast.Add, ast.Name("s"), ast.Name("n"))),
					ast.Eval(ast.Un(ast.PostDec, ast.Name("n"))),
				),
			},
			&ast.DoWhileStmt{
				Body: ast.Block(ast.Eval(ast.Set(ast.Name("s"), ast.Bin(ast.Sub, ast.Name("s"), ast.Num(1))))),
				Cond: ast.Bin(ast.Gt, ast.Name("s"), ast.Num(100)),
			},
			&ast.ForStmt{
				Init: ast.Set(ast.Name("n"), ast.Num(0)),
				Cond: ast.Bin(ast.Lt, ast.Name("n"), ast.Num(4)),
				Post: ast.Un(ast.PostInc, ast.Name("n")),
				Body: ast.Block(&ast.IfStmt{Cond: ast.Bin(ast.Eq, ast.Name("n"), ast.Num(2)), Then: &ast.BreakStmt{}}),
			},
			&ast.SwitchStmt{
				Tag: ast.Name("n"),
				Cases: []*ast.CaseClause{
					{Values: []ast.Expr{ast.Num(1), ast.Num(2)}, Body: []ast.Stmt{ast.Eval(ast.Set(ast.Name("s"), ast.Num(1))), &ast.BreakStmt{}}},
					{Values: []ast.Expr{ast.Num(3)}, Body: []ast.Stmt{ast.Eval(ast.Set(ast.Name("s"), ast.Num(2)))}},
				},
				Default: &ast.CaseClause{Body: []ast.Stmt{ast.Eval(ast.Set(ast.Name("s"), ast.Num(3)))}},
			},
			&ast.IfStmt{Cond: ast.Name("s"), Then: &ast.GotoStmt{Label: "done"}},
			ast.Eval(ast.Set(ast.Name("s"), ast.Num(0))),
			&ast.LabeledStmt{Label: "done", Stmt: ast.Ret(ast.Name("s"))},
		),
	)
}
