package lower

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/check"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/ir"
	"github.com/roach88/cbc/internal/resolve"
	"github.com/roach88/cbc/internal/testutil"
)

var (
	intT  = ast.TypeOf(ast.Int)
	uintT = ast.TypeOf(ast.UnsignedInt)
	voidT = ast.TypeOf(ast.Void)
)

// lowerProgram resolves, checks and lowers prog.
func lowerProgram(prog *ast.Program) (*ir.Program, error) {
	tree, err := resolve.Program(prog)
	if err != nil {
		return nil, err
	}
	if err := check.Program(prog); err != nil {
		return nil, err
	}
	return Program(prog, tree)
}

// lowered lowers prog, requiring success and a consistent label set.
func lowered(t *testing.T, prog *ast.Program) *ir.Program {
	t.Helper()
	p, err := lowerProgram(prog)
	require.NoError(t, err)
	testutil.RequireLabels(t, p)
	return p
}

// mainWith returns a program with globals x, y (int), u (unsigned), p (int*)
// and functions f, g, followed by main containing stmts.
func mainWith(stmts ...ast.Stmt) *ast.Program {
	return ast.Prog(
		ast.Vars(false, intT, ast.V("x", nil), ast.V("y", nil)),
		ast.Vars(false, uintT, ast.V("u", nil)),
		ast.Vars(false, intT.Pointer(), ast.V("p", nil)),
		ast.Func(intT, "f", nil, ast.Ret(ast.Num(1))),
		ast.Func(intT, "g", []ast.Param{{Type: intT, Name: "a"}, {Type: intT, Name: "b"}}, ast.Ret(ast.Name("a"))),
		ast.Func(voidT, "main", nil, stmts...),
	)
}

func assignTarget(s ir.Stmt) string {
	a, ok := s.(*ir.Assign)
	if !ok {
		return ""
	}
	addr, ok := a.Addr.(*ir.Addr)
	if !ok {
		return ""
	}
	return addr.Name
}

func isCall(s ir.Stmt) bool {
	found := false
	var walk func(ir.Expr)
	walk = func(e ir.Expr) {
		switch e := e.(type) {
		case *ir.Call:
			found = true
		case *ir.Binary:
			walk(e.X)
			walk(e.Y)
		case *ir.Unary:
			walk(e.X)
		case *ir.Mem:
			walk(e.X)
		}
	}
	switch s := s.(type) {
	case *ir.Assign:
		walk(s.Addr)
		walk(s.Value)
	case *ir.ExprStmt:
		walk(s.X)
	case *ir.Return:
		walk(s.X)
	case *ir.CJump:
		walk(s.Cond)
	}
	return found
}

// TestProgram_GlobalInitializers tests that literal initializers and the
// static qualifier carry over to the IR.
func TestProgram_GlobalInitializers(t *testing.T) {
	prog := ast.Prog(
		ast.Vars(false, intT, ast.V("a", ast.Num(1)), ast.V("b", nil)),
		ast.Vars(true, ast.TypeOf(ast.Char), ast.V("c", &ast.CharLit{Value: 'A'})),
		ast.Vars(true, ast.TypeOf(ast.Char).Pointer(), ast.V("s", ast.Str("hi"))),
	)

	p := lowered(t, prog)

	require.Len(t, p.Vars, 4)
	assert.Equal(t, ir.DefinedVar{Name: "a", Type: intT, Init: ir.Int(1)}, p.Vars[0])
	assert.Nil(t, p.Vars[1].Init)
	assert.False(t, p.Vars[1].Private)
	assert.Equal(t, ir.Int(65), p.Vars[2].Init)
	assert.True(t, p.Vars[2].Private)
	assert.Equal(t, ir.Str("hi"), p.Vars[3].Init)
	assert.True(t, p.Vars[3].Private)
}

// TestProgram_GlobalNotConstant tests that only literals initialise globals.
func TestProgram_GlobalNotConstant(t *testing.T) {
	prog := ast.Prog(
		ast.Vars(false, intT, ast.V("a", ast.Num(1))),
		ast.Vars(false, intT, ast.V("b", ast.Bin(ast.Add, ast.Name("a"), ast.Num(1)))),
	)

	_, err := lowerProgram(prog)
	require.Error(t, err)
	assert.Equal(t, diag.ErrCodeNotAConstant, diag.CodeOf(err))
	assert.Contains(t, err.Error(), "not a constant value")
}

// TestProgram_LocalInitializerNotRestricted tests that locals may use any
// expression.
func TestProgram_LocalInitializerNotRestricted(t *testing.T) {
	p := lowered(t, mainWith(ast.Local(intT, "d", ast.Bin(ast.Add, ast.Name("x"), ast.CallTo("f")))))

	body := testutil.Func(t, p, "main").Body
	require.Len(t, body, 1)
	assert.Equal(t, "d", assignTarget(body[0]))
}

// TestProgram_PrototypesEmitNothing tests that declarations without bodies
// produce no function.
func TestProgram_PrototypesEmitNothing(t *testing.T) {
	prog := ast.Prog(
		ast.Prototype(intT, "puts", ast.Param{Type: ast.TypeOf(ast.Char).Pointer(), Name: "s"}),
		ast.Func(voidT, "main", nil, ast.Eval(ast.CallTo("puts", ast.Str("hi")))),
	)

	p := lowered(t, prog)

	require.Len(t, p.Funcs, 1)
	assert.Equal(t, "main", p.Funcs[0].Name)
	require.Len(t, p.Funcs[0].Body, 1)
	assert.IsType(t, &ir.ExprStmt{}, p.Funcs[0].Body[0])
}

// TestProgram_EndToEnd tests the assignment to a global after a local
// initializer.
func TestProgram_EndToEnd(t *testing.T) {
	p := lowered(t, testutil.GlobalsAndMain())

	body := testutil.Func(t, p, "main").Body
	assigns := testutil.StmtsOf[*ir.Assign](body)

	var toA []*ir.Assign
	for _, a := range assigns {
		if assignTarget(a) == "a" {
			toA = append(toA, a)
		}
	}
	require.Len(t, toA, 1, "exactly one assignment targets a")
	assert.Equal(t, "add(add(d, b), c)", ir.ExprString(toA[0].Value))
}

// TestProgram_Shadowing tests that the local a is assigned, not the global.
func TestProgram_Shadowing(t *testing.T) {
	p := lowered(t, testutil.Shadowing())

	body := testutil.Func(t, p, "main").Body
	require.Len(t, body, 2)

	last := body[1].(*ir.Assign)
	addr := last.Addr.(*ir.Addr)
	assert.Equal(t, "a", addr.Name)
	v := addr.Entity.(ast.Variable)
	assert.Equal(t, int64(2), v.Init.(*ast.IntLit).Value, "address refers to the local")
	assert.Equal(t, ir.Int(1), p.Vars[0].Init)
}

// TestProgram_ShortCircuitAnd tests that the right operand of && is only
// evaluated inside the then branch.
func TestProgram_ShortCircuitAnd(t *testing.T) {
	p := lowered(t, testutil.ShortCircuit())

	body := testutil.Func(t, p, "main").Body
	cj := testutil.IndexOf(body, func(s ir.Stmt) bool { _, ok := s.(*ir.CJump); return ok })
	require.NotEqual(t, -1, cj)
	jump := body[cj].(*ir.CJump)

	then := testutil.IndexOf(body, func(s ir.Stmt) bool {
		l, ok := s.(*ir.LabelStmt)
		return ok && l.Label == jump.Then
	})
	end := testutil.IndexOf(body, func(s ir.Stmt) bool {
		l, ok := s.(*ir.LabelStmt)
		return ok && l.Label == jump.Else
	})
	require.Less(t, cj, then)
	require.Less(t, then, end)

	for i, s := range body {
		if isCall(s) {
			assert.True(t, i > then && i < end, "call at %d outside then branch (%d, %d)", i, then, end)
		}
	}

	temps := testutil.Func(t, p, "main").Temps
	require.Len(t, temps, 1)
	assert.Equal(t, "__tmp0", temps[0].Name)
	assert.Equal(t, "assign &__tmp0, 0", ir.StmtString(body[0]))
}

// TestProgram_ShortCircuitNested tests that effects of a nested call
// argument stay inside the branch too.
func TestProgram_ShortCircuitNested(t *testing.T) {
	// x && g(y++, f())
	rhs := &ast.Call{Callee: ast.Name("g"), Args: []ast.Expr{ast.Un(ast.PostInc, ast.Name("y")), ast.CallTo("f")}}
	p := lowered(t, mainWith(ast.Eval(ast.Set(ast.Name("x"), ast.Bin(ast.LogAnd, ast.Name("x"), rhs)))))

	body := testutil.Func(t, p, "main").Body
	cj := testutil.IndexOf(body, func(s ir.Stmt) bool { _, ok := s.(*ir.CJump); return ok })
	incr := testutil.IndexOf(body, func(s ir.Stmt) bool { return assignTarget(s) == "y" })
	require.NotEqual(t, -1, incr)
	assert.Greater(t, incr, cj, "y++ is evaluated after the test")
}

// TestProgram_ShortCircuitOr tests that || evaluates its right operand only
// when the left one is false.
func TestProgram_ShortCircuitOr(t *testing.T) {
	p := lowered(t, mainWith(ast.Eval(ast.Set(ast.Name("x"), ast.Bin(ast.LogOr, ast.Name("y"), ast.CallTo("f"))))))

	got := ir.Format(&ir.Program{Funcs: []ir.DefinedFunc{testutil.Func(t, p, "main")}})
	assert.Equal(t, `func main() void {
  temp __tmp0 int
  assign &__tmp0, 1
  cjump y, .L1, .L0
.L0:
  assign &__tmp0, call f()
.L1:
  assign &x, __tmp0
}
`, got)
}

// TestProgram_RightOperandFirst tests that side effects of the right operand
// of a binary operator come before those of the left.
func TestProgram_RightOperandFirst(t *testing.T) {
	// (x = 1) + (y = 2)
	p := lowered(t, mainWith(ast.Eval(ast.Bin(ast.Add,
		ast.Set(ast.Name("x"), ast.Num(1)),
		ast.Set(ast.Name("y"), ast.Num(2)),
	))))

	body := testutil.Func(t, p, "main").Body
	require.Len(t, body, 2)
	assert.Equal(t, "y", assignTarget(body[0]))
	assert.Equal(t, "x", assignTarget(body[1]))
}

// TestProgram_AssignmentOrder tests destination before value.
func TestProgram_AssignmentOrder(t *testing.T) {
	// *p++ = (y = 3)
	lhs := ast.Un(ast.Deref, ast.Un(ast.PostInc, ast.Name("p")))
	p := lowered(t, mainWith(ast.Eval(ast.Set(lhs, ast.Set(ast.Name("y"), ast.Num(3))))))

	var lines []string
	for _, s := range testutil.Func(t, p, "main").Body {
		lines = append(lines, ir.StmtString(s))
	}
	assert.Equal(t, []string{
		"assign &__tmp0, p",
		"assign &p, add(p, 1)",
		"assign &y, 3",
		"assign __tmp0, y",
	}, lines)
}

// TestProgram_PostfixResultNotAssignable tests that the old value produced
// by a postfix increment cannot be written or addressed, while a
// dereference of it still can.
func TestProgram_PostfixResultNotAssignable(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
	}{
		{"assign", ast.Set(ast.Un(ast.PostInc, ast.Name("x")), ast.Num(3))},
		{"compound", ast.SetOp(ast.Add, ast.Un(ast.PostDec, ast.Name("x")), ast.Num(1))},
		{"increment", ast.Un(ast.PreInc, ast.Un(ast.PostInc, ast.Name("x")))},
		{"address", ast.Un(ast.AddrOf, ast.Un(ast.PostInc, ast.Name("x")))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lowerProgram(mainWith(ast.Eval(tt.expr)))
			require.Error(t, err)
			assert.Equal(t, diag.ErrCodeInvalidAssignmentTarget, diag.CodeOf(err))
		})
	}

	lowered(t, mainWith(ast.Eval(ast.Set(ast.Un(ast.Deref, ast.Un(ast.PostInc, ast.Name("p"))), ast.Num(3)))))
}

// TestProgram_AssignThroughPointer tests that *p = v stores through p.
func TestProgram_AssignThroughPointer(t *testing.T) {
	p := lowered(t, mainWith(ast.Eval(ast.Set(ast.Un(ast.Deref, ast.Name("p")), ast.Num(7)))))

	body := testutil.Func(t, p, "main").Body
	require.Len(t, body, 1)
	a := body[0].(*ir.Assign)
	assert.Equal(t, &ir.Var{Name: "p", Entity: a.Addr.(*ir.Var).Entity}, a.Addr)
	assert.Equal(t, ir.Int(7), a.Value)
}

// TestProgram_CompoundAssignment tests read-modify-write for each operator.
func TestProgram_CompoundAssignment(t *testing.T) {
	tests := []struct {
		op   ast.BinaryOp
		want string
	}{
		{ast.Add, "assign &x, add(x, y)"},
		{ast.Sub, "assign &x, sub(x, y)"},
		{ast.Mul, "assign &x, mul(x, y)"},
		{ast.Div, "assign &x, sdiv(x, y)"},
		{ast.Mod, "assign &x, smod(x, y)"},
		{ast.BitAnd, "assign &x, and(x, y)"},
		{ast.BitOr, "assign &x, or(x, y)"},
		{ast.BitXor, "assign &x, xor(x, y)"},
		{ast.Shl, "assign &x, shl(x, y)"},
		{ast.Shr, "assign &x, sar(x, y)"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			p := lowered(t, mainWith(ast.Eval(ast.SetOp(tt.op, ast.Name("x"), ast.Name("y")))))
			body := testutil.Func(t, p, "main").Body
			require.Len(t, body, 1)
			assert.Equal(t, tt.want, ir.StmtString(body[0]))
		})
	}
}

// TestProgram_CompoundAssignmentThroughPointer tests that the address is
// the pointer itself and the old value is read through it.
func TestProgram_CompoundAssignmentThroughPointer(t *testing.T) {
	p := lowered(t, mainWith(ast.Eval(ast.SetOp(ast.Add, ast.Un(ast.Deref, ast.Name("p")), ast.Num(1)))))

	body := testutil.Func(t, p, "main").Body
	require.Len(t, body, 1)
	assert.Equal(t, "assign p, add(*(p), 1)", ir.StmtString(body[0]))
}

// TestProgram_SignedUnsigned tests operator selection from operand types.
func TestProgram_SignedUnsigned(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"signed div", ast.Bin(ast.Div, ast.Name("x"), ast.Name("y")), "sdiv(x, y)"},
		{"unsigned div", ast.Bin(ast.Div, ast.Name("x"), ast.Name("u")), "udiv(x, u)"},
		{"unsigned mod", ast.Bin(ast.Mod, ast.Name("u"), ast.Num(2)), "umod(u, 2)"},
		{"signed less", ast.Bin(ast.Lt, ast.Name("x"), ast.Num(0)), "slt(x, 0)"},
		{"unsigned greater equal", ast.Bin(ast.Ge, ast.Name("u"), ast.Num(0)), "uge(u, 0)"},
		{"pointer compare", ast.Bin(ast.Gt, ast.Name("p"), ast.Num(0)), "ugt(p, 0)"},
		{"signed shift", ast.Bin(ast.Shr, ast.Name("x"), ast.Name("u")), "sar(x, u)"},
		{"unsigned shift", ast.Bin(ast.Shr, ast.Name("u"), ast.Name("x")), "shr(u, x)"},
		{"equality", ast.Bin(ast.Eq, ast.Name("u"), ast.Name("x")), "eq(u, x)"},
		{"unsigned cast", &ast.Cast{Type: uintT, X: ast.Name("x")}, "ucast(x)"},
		{"signed cast", &ast.Cast{Type: ast.TypeOf(ast.Char), X: ast.Name("u")}, "scast(u)"},
		{"negate", ast.Un(ast.UMinus, ast.Name("x")), "neg(x)"},
		{"not", ast.Un(ast.LogNot, ast.Name("x")), "not(x)"},
		{"complement", ast.Un(ast.BitNot, ast.Name("x")), "bitnot(x)"},
		{"plus", ast.Un(ast.UPlus, ast.Name("x")), "x"},
		{"deref", ast.Un(ast.Deref, ast.Name("p")), "*(p)"},
		{"address", ast.Un(ast.AddrOf, ast.Name("x")), "&x"},
		{"address of deref", ast.Un(ast.AddrOf, ast.Un(ast.Deref, ast.Name("p"))), "p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := lowered(t, mainWith(ast.Eval(ast.Set(ast.Name("x"), tt.expr))))
			body := testutil.Func(t, p, "main").Body
			require.Len(t, body, 1)
			assert.Equal(t, tt.want, ir.ExprString(body[0].(*ir.Assign).Value))
		})
	}
}

// TestProgram_Increments tests prefix and postfix forms.
func TestProgram_Increments(t *testing.T) {
	p := lowered(t, mainWith(
		ast.Eval(ast.Set(ast.Name("y"), ast.Un(ast.PreInc, ast.Name("x")))),
		ast.Eval(ast.Set(ast.Name("y"), ast.Un(ast.PostDec, ast.Name("x")))),
	))

	f := testutil.Func(t, p, "main")
	var lines []string
	for _, s := range f.Body {
		lines = append(lines, ir.StmtString(s))
	}
	assert.Equal(t, []string{
		"assign &x, add(x, 1)",
		"assign &y, x",
		"assign &__tmp0, x",
		"assign &x, sub(x, 1)",
		"assign &y, __tmp0",
	}, lines)
}

// TestProgram_CallArguments tests left-to-right argument effects and the
// attached callee.
func TestProgram_CallArguments(t *testing.T) {
	call := &ast.Call{Callee: ast.Name("g"), Args: []ast.Expr{
		ast.Set(ast.Name("x"), ast.Num(1)),
		ast.Set(ast.Name("y"), ast.Num(2)),
	}}
	p := lowered(t, mainWith(ast.Eval(call)))

	body := testutil.Func(t, p, "main").Body
	require.Len(t, body, 3)
	assert.Equal(t, "x", assignTarget(body[0]))
	assert.Equal(t, "y", assignTarget(body[1]))

	es := body[2].(*ir.ExprStmt)
	c := es.X.(*ir.Call)
	assert.Equal(t, "call g(x, y)", ir.ExprString(c))
	fn, ok := c.Entity.(ast.Function)
	require.True(t, ok)
	assert.Len(t, fn.Params.Fixed, 2)
}

// TestProgram_MissingCallEntity tests that an unannotated call is reported
// as a compiler defect.
func TestProgram_MissingCallEntity(t *testing.T) {
	prog := mainWith()
	tree, err := resolve.Program(prog)
	require.NoError(t, err)

	main := prog.Decls[len(prog.Decls)-1].(*ast.FuncDecl)
	main.Body = []ast.Stmt{ast.Eval(ast.CallTo("f"))}

	_, err = Program(prog, tree)
	require.Error(t, err)
	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, diag.ErrCodeUnresolvedEntity, de.Code)
	assert.True(t, de.Internal())
}

// TestProgram_IfElse tests label layout with and without an else branch.
func TestProgram_IfElse(t *testing.T) {
	p := lowered(t, mainWith(
		&ast.IfStmt{Cond: ast.Name("x"), Then: ast.Eval(ast.Set(ast.Name("y"), ast.Num(1)))},
		&ast.IfStmt{
			Cond: ast.Name("x"),
			Then: ast.Eval(ast.Set(ast.Name("y"), ast.Num(1))),
			Else: ast.Eval(ast.Set(ast.Name("y"), ast.Num(2))),
		},
	))

	got := ir.Format(&ir.Program{Funcs: []ir.DefinedFunc{testutil.Func(t, p, "main")}})
	assert.Equal(t, `func main() void {
  cjump x, .L0, .L1
.L0:
  assign &y, 1
.L1:
  cjump x, .L2, .L3
.L2:
  assign &y, 1
  jump .L4
.L3:
  assign &y, 2
.L4:
}
`, got)
}

// TestProgram_WhileConditionEffects tests that the loop condition's effects
// rerun on every iteration.
func TestProgram_WhileConditionEffects(t *testing.T) {
	p := lowered(t, mainWith(&ast.WhileStmt{
		Cond: ast.Un(ast.PostDec, ast.Name("x")),
		Body: ast.Block(),
	}))

	body := testutil.Func(t, p, "main").Body
	begin := body[0].(*ir.LabelStmt)
	assert.Equal(t, "x", assignTarget(body[2]), "decrement follows the begin label")
	last := body[len(body)-2].(*ir.Jump)
	assert.Equal(t, begin.Label, last.Target)
}

// TestProgram_BreakOutsideLoop tests the internal failure for a stray break.
func TestProgram_BreakOutsideLoop(t *testing.T) {
	_, err := lowerProgram(mainWith(&ast.BreakStmt{}))
	assert.Equal(t, diag.ErrCodeUnresolvedEntity, diag.CodeOf(err))

	_, err = lowerProgram(mainWith(&ast.ContinueStmt{}))
	assert.Equal(t, diag.ErrCodeUnresolvedEntity, diag.CodeOf(err))
}

// TestProgram_ContinueInSwitch tests that continue inside a switch targets
// the enclosing loop.
func TestProgram_ContinueInSwitch(t *testing.T) {
	p := lowered(t, mainWith(&ast.WhileStmt{
		Cond: ast.Name("x"),
		Body: &ast.SwitchStmt{
			Tag:     ast.Name("y"),
			Default: &ast.CaseClause{Body: []ast.Stmt{&ast.ContinueStmt{}}},
		},
	}))

	body := testutil.Func(t, p, "main").Body
	begin := body[0].(*ir.LabelStmt).Label
	jumps := testutil.StmtsOf[*ir.Jump](body)
	targets := make([]ir.Label, len(jumps))
	for i, j := range jumps {
		targets[i] = j.Target
	}
	assert.Contains(t, targets, begin)
}

// TestProgram_Goto tests forward and backward jumps to source labels.
func TestProgram_Goto(t *testing.T) {
	p := lowered(t, mainWith(
		&ast.LabeledStmt{Label: "top", Stmt: ast.Eval(ast.Set(ast.Name("x"), ast.Num(1)))},
		&ast.GotoStmt{Label: "bottom"},
		&ast.GotoStmt{Label: "top"},
		&ast.LabeledStmt{Label: "bottom", Stmt: ast.Ret(nil)},
	))

	assert.Len(t, testutil.StmtsOf[*ir.LabelStmt](testutil.Func(t, p, "main").Body), 2)
}

// TestProgram_GotoErrors tests missing and duplicate source labels.
func TestProgram_GotoErrors(t *testing.T) {
	_, err := lowerProgram(mainWith(&ast.GotoStmt{Label: "nowhere"}))
	assert.True(t, diag.IsUndefinedName(err))

	_, err = lowerProgram(mainWith(
		&ast.LabeledStmt{Label: "l", Stmt: ast.Ret(nil)},
		&ast.LabeledStmt{Label: "l", Stmt: ast.Ret(nil)},
	))
	assert.True(t, diag.IsDuplicateDefinition(err))
}

// TestProgram_Conditional tests the ternary operator.
func TestProgram_Conditional(t *testing.T) {
	p := lowered(t, mainWith(ast.Eval(ast.Set(ast.Name("x"),
		&ast.Cond{Cond: ast.Name("y"), Then: ast.CallTo("f"), Else: ast.Num(0)}))))

	got := ir.Format(&ir.Program{Funcs: []ir.DefinedFunc{testutil.Func(t, p, "main")}})
	assert.Equal(t, `func main() void {
  temp __tmp0 int
  cjump y, .L0, .L1
.L0:
  assign &__tmp0, call f()
  jump .L2
.L1:
  assign &__tmp0, 0
.L2:
  assign &x, __tmp0
}
`, got)
}

// TestProgram_TempNamesSkipVisible tests that a temporary never reuses a
// name the program declares.
func TestProgram_TempNamesSkipVisible(t *testing.T) {
	prog := ast.Prog(
		ast.Vars(false, intT, ast.V("__tmp0", nil)),
		ast.Func(voidT, "main", nil,
			ast.Local(intT, "__tmp1", ast.Num(0)),
			ast.Local(intT, "x", ast.Num(0)),
			ast.Eval(ast.Un(ast.PostInc, ast.Name("x"))),
			ast.Block(ast.Local(intT, "__tmp3", nil)),
			ast.Eval(ast.Un(ast.PostInc, ast.Name("x"))),
		),
	)

	p := lowered(t, prog)

	temps := testutil.Func(t, p, "main").Temps
	require.Len(t, temps, 2)
	assert.Equal(t, "__tmp2", temps[0].Name)
	assert.Equal(t, "__tmp4", temps[1].Name)
}

// TestProgram_Unsupported tests constructs lowering does not implement.
func TestProgram_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
	}{
		{"member", &ast.FieldAccess{X: ast.Name("p"), Name: "f", Arrow: true}},
		{"index", &ast.Index{X: ast.Name("p"), Index: ast.Num(0)}},
		{"sizeof", &ast.SizeofType{Type: intT}},
		{"sizeof expr", &ast.SizeofExpr{X: ast.Name("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lowerProgram(mainWith(ast.Eval(ast.Set(ast.Name("x"), tt.expr))))
			assert.Equal(t, diag.ErrCodeUnsupported, diag.CodeOf(err))
		})
	}
}

// TestProgram_InvalidAddress tests taking the address of a non-lvalue.
func TestProgram_InvalidAddress(t *testing.T) {
	_, err := lowerProgram(mainWith(ast.Eval(ast.Set(ast.Name("p"), ast.Un(ast.AddrOf, ast.Num(1))))))
	assert.Equal(t, diag.ErrCodeInvalidAssignmentTarget, diag.CodeOf(err))
}

// TestProgram_Golden tests the text form of lowered fixtures.
func TestProgram_Golden(t *testing.T) {
	fixtures := map[string]*ast.Program{
		"globals_and_main": testutil.GlobalsAndMain(),
		"short_circuit":    testutil.ShortCircuit(),
		"loops":            testutil.Loops(),
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for name, prog := range fixtures {
		t.Run(name, func(t *testing.T) {
			p := lowered(t, prog)
			g.Assert(t, name, []byte(ir.Format(p)))
		})
	}
}

// TestProgram_Deterministic tests that lowering the same source twice yields
// the same hash.
func TestProgram_Deterministic(t *testing.T) {
	a := lowered(t, testutil.Loops())
	b := lowered(t, testutil.Loops())
	assert.Equal(t, ir.MustHash(a), ir.MustHash(b))
}
