package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/diag"
)

var (
	intT  = ast.TypeOf(ast.Int)
	voidT = ast.TypeOf(ast.Void)
)

func initValue(t *testing.T, e ast.Entity) int64 {
	t.Helper()
	v, ok := e.(ast.Variable)
	require.True(t, ok, "expected variable, got %T", e)
	lit, ok := v.Init.(*ast.IntLit)
	require.True(t, ok, "expected int initializer, got %T", v.Init)
	return lit.Value
}

// TestProgram_UndefinedName tests that a use of an undeclared name fails.
func TestProgram_UndefinedName(t *testing.T) {
	prog := ast.Prog(
		ast.Func(voidT, "main", nil, ast.Eval(ast.Set(ast.Name("missing"), ast.Num(1)))),
	)

	tree, err := Program(prog)
	require.Error(t, err)
	assert.Nil(t, tree)
	assert.True(t, diag.IsUndefinedName(err))

	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "missing", de.Name)
}

// TestDeclareTopLevel_Duplicate tests `int a; int a;`.
func TestDeclareTopLevel_Duplicate(t *testing.T) {
	prog := ast.Prog(
		ast.Vars(false, intT, ast.V("a", nil)),
		ast.Vars(false, intT, ast.V("a", nil)),
	)

	r := New()
	err := r.DeclareTopLevel(prog)
	require.Error(t, err)
	assert.True(t, diag.IsDuplicateDefinition(err))
}

// TestDeclareTopLevel_DuplicateBeforeBodies tests that a duplicate is found
// before a body containing an undefined name is looked at.
func TestDeclareTopLevel_DuplicateBeforeBodies(t *testing.T) {
	prog := ast.Prog(
		ast.Func(voidT, "f", nil, ast.Eval(ast.Name("nope"))),
		ast.Vars(false, intT, ast.V("a", nil)),
		ast.Vars(false, intT, ast.V("a", nil)),
	)

	_, err := Program(prog)
	assert.True(t, diag.IsDuplicateDefinition(err))
}

// TestDeclareTopLevel_SameDeclaration tests `int b, b;`.
func TestDeclareTopLevel_SameDeclaration(t *testing.T) {
	prog := ast.Prog(ast.Vars(false, intT, ast.V("b", nil), ast.V("b", nil)))

	_, err := Program(prog)
	assert.True(t, diag.IsDuplicateDefinition(err))
}

// TestDeclareTopLevel_Prototype tests that prototypes may precede or follow a
// definition but two definitions collide.
func TestDeclareTopLevel_Prototype(t *testing.T) {
	param := []ast.Param{{Type: intT, Name: "x"}}

	prog := ast.Prog(
		ast.Prototype(intT, "f", param...),
		ast.Func(intT, "f", param, ast.Ret(ast.Name("x"))),
		ast.Prototype(intT, "f", param...),
	)
	_, err := Program(prog)
	assert.NoError(t, err)

	prog = ast.Prog(
		ast.Func(intT, "f", param, ast.Ret(ast.Name("x"))),
		ast.Func(intT, "f", param, ast.Ret(ast.Name("x"))),
	)
	_, err = Program(prog)
	assert.True(t, diag.IsDuplicateDefinition(err))

	prog = ast.Prog(
		ast.Vars(false, intT, ast.V("f", nil)),
		ast.Prototype(intT, "f"),
	)
	_, err = Program(prog)
	assert.True(t, diag.IsDuplicateDefinition(err))
}

// TestDeclareTopLevel_PrototypeAfterDefinition tests that a prototype
// repeating an already defined function keeps the definition.
func TestDeclareTopLevel_PrototypeAfterDefinition(t *testing.T) {
	prog := ast.Prog(
		ast.Func(intT, "f", nil, ast.Ret(ast.Num(1))),
		ast.Prototype(intT, "f"),
		ast.Prototype(intT, "f"),
	)
	r := New()
	require.NoError(t, r.DeclareTopLevel(prog))

	ent, ok := r.Tree().Root().LookupLocal("f")
	require.True(t, ok)
	assert.IsType(t, ast.Function{}, ent)

	prog.Decls = append(prog.Decls, ast.Func(intT, "f", nil, ast.Ret(ast.Num(2))))
	assert.True(t, diag.IsDuplicateDefinition(New().DeclareTopLevel(prog)),
		"a second definition still collides")
}

// TestProgram_Shadowing tests that a local shadows a global without changing
// the global's entity.
func TestProgram_Shadowing(t *testing.T) {
	main := ast.Func(voidT, "main", nil,
		ast.Local(intT, "a", ast.Num(2)),
		ast.Eval(ast.Set(ast.Name("a"), ast.Num(3))),
	)
	prog := ast.Prog(ast.Vars(false, intT, ast.V("a", ast.Num(1))), main)

	tree, err := Program(prog)
	require.NoError(t, err)

	assign := main.Body[1].(*ast.ExprStmt).X.(*ast.Assign)
	lhs := assign.LHS.(*ast.Ident)
	assert.Equal(t, int64(2), initValue(t, lhs.Entity), "assignment binds the local")

	global, ok := tree.Root().LookupLocal("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), initValue(t, global))
}

// TestProgram_EndToEnd tests scope contents after resolving a small program.
func TestProgram_EndToEnd(t *testing.T) {
	main := ast.Func(voidT, "main", nil,
		ast.Local(intT, "d", ast.Num(10)),
		ast.Eval(ast.Set(ast.Name("a"),
			ast.Bin(ast.Add, ast.Bin(ast.Add, ast.Name("d"), ast.Name("b")), ast.Name("c")))),
	)
	prog := ast.Prog(
		ast.Vars(false, intT, ast.V("a", ast.Num(1))),
		ast.Vars(false, intT, ast.V("b", ast.Num(2)), ast.V("c", ast.Num(3))),
		main,
	)

	tree, err := Program(prog)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "main"}, tree.Root().Names())

	body, ok := tree.Get(main.Scope)
	require.True(t, ok)
	_, ok = body.LookupLocal("d")
	assert.True(t, ok, "main's scope declares d")
	assert.Same(t, tree.Root(), body.Parent())
}

// TestProgram_SelfInitializer tests that `int a = a;` does not see itself.
func TestProgram_SelfInitializer(t *testing.T) {
	prog := ast.Prog(ast.Func(voidT, "main", nil, ast.Local(intT, "a", ast.Name("a"))))

	_, err := Program(prog)
	assert.True(t, diag.IsUndefinedName(err))

	// With an outer a, the initializer binds it.
	inner := ast.Local(intT, "a", ast.Name("a"))
	prog = ast.Prog(
		ast.Vars(false, intT, ast.V("a", ast.Num(7))),
		ast.Func(voidT, "main", nil, inner),
	)
	_, err = Program(prog)
	require.NoError(t, err)
	ref := inner.Decl.Vars[0].Init.(*ast.Ident)
	assert.Equal(t, int64(7), initValue(t, ref.Entity))
}

// TestProgram_Parameters tests that parameters are visible in the body and
// collide with same-scope locals.
func TestProgram_Parameters(t *testing.T) {
	params := []ast.Param{{Type: intT, Name: "x"}, {Type: intT.Pointer(), Name: "p"}}
	f := ast.Func(intT, "f", params, ast.Ret(ast.Bin(ast.Add, ast.Name("x"), ast.Un(ast.Deref, ast.Name("p")))))

	tree, err := Program(ast.Prog(f))
	require.NoError(t, err)

	body, _ := tree.Get(f.Scope)
	assert.Equal(t, []string{"x", "p"}, body.Names())

	_, err = Program(ast.Prog(ast.Func(intT, "g", params, ast.Local(intT, "x", nil))))
	assert.True(t, diag.IsDuplicateDefinition(err))
}

// TestProgram_BlockScopes tests nested blocks shadow and then restore.
func TestProgram_BlockScopes(t *testing.T) {
	block := ast.Block(
		ast.Local(intT, "x", ast.Num(2)),
		ast.Eval(ast.Set(ast.Name("x"), ast.Num(3))),
	)
	after := ast.Eval(ast.Set(ast.Name("x"), ast.Num(4)))
	f := ast.Func(voidT, "f", nil, ast.Local(intT, "x", ast.Num(1)), block, after)

	tree, err := Program(ast.Prog(f))
	require.NoError(t, err)

	inner := block.Stmts[1].(*ast.ExprStmt).X.(*ast.Assign).LHS.(*ast.Ident)
	outer := after.X.(*ast.Assign).LHS.(*ast.Ident)
	assert.Equal(t, int64(2), initValue(t, inner.Entity))
	assert.Equal(t, int64(1), initValue(t, outer.Entity))

	blockScope, ok := tree.Get(block.Scope)
	require.True(t, ok)
	assert.Equal(t, f.Scope, blockScope.Parent().ID())
}

// TestProgram_ForwardCall tests that a function may call one declared later.
func TestProgram_ForwardCall(t *testing.T) {
	call := ast.CallTo("g", ast.Num(1))
	prog := ast.Prog(
		ast.Func(voidT, "f", nil, ast.Eval(call)),
		ast.Func(voidT, "g", []ast.Param{{Type: intT, Name: "n"}}),
	)

	_, err := Program(prog)
	require.NoError(t, err)

	fn, ok := call.Entity.(ast.Function)
	require.True(t, ok)
	assert.Len(t, fn.Params.Fixed, 1)
}

// TestProgram_MutualStructs tests cyclic and pointer-broken struct pairs.
func TestProgram_MutualStructs(t *testing.T) {
	prog := ast.Prog(
		&ast.StructDecl{Name: "A", Members: []ast.Member{{Name: "b", Type: ast.StructRef("B")}}},
		&ast.StructDecl{Name: "B", Members: []ast.Member{{Name: "a", Type: ast.StructRef("A")}}},
	)
	_, err := Program(prog)
	assert.True(t, diag.IsCyclicTypeDefinition(err))

	prog = ast.Prog(
		&ast.StructDecl{Name: "A", Members: []ast.Member{{Name: "b", Type: ast.StructRef("B")}}},
		&ast.StructDecl{Name: "B", Members: []ast.Member{{Name: "a", Type: ast.StructRef("A").Pointer()}}},
	)
	_, err = Program(prog)
	assert.NoError(t, err)
}

// TestProgram_TypedefChain tests aliases of a union and of another alias.
func TestProgram_TypedefChain(t *testing.T) {
	prog := ast.Prog(
		&ast.UnionDecl{Name: "B", Members: []ast.Member{{Name: "n", Type: intT}}},
		&ast.TypedefDecl{Name: "unionC", Type: ast.UnionRef("B")},
		&ast.TypedefDecl{Name: "unionD", Type: ast.NamedRef("unionC")},
	)

	tree, err := Program(prog)
	require.NoError(t, err)

	for _, name := range []string{"unionC", "unionD"} {
		e, ok := tree.Root().LookupLocal(name)
		require.True(t, ok, name)
		assert.IsType(t, ast.TypeDef{}, e, name)
	}

	d, _ := tree.Root().LookupLocal("unionD")
	aliased := d.(ast.TypeDef).Aliased
	assert.IsType(t, ast.TypeDef{}, aliased.Entity)
}

// TestProgram_UndefinedType tests member and local types that name nothing,
// or name the wrong kind of declaration.
func TestProgram_UndefinedType(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
	}{
		{
			name: "member",
			prog: ast.Prog(&ast.StructDecl{Name: "A", Members: []ast.Member{{Name: "m", Type: ast.StructRef("Nope")}}}),
		},
		{
			name: "union named as struct",
			prog: ast.Prog(
				&ast.UnionDecl{Name: "U", Members: []ast.Member{{Name: "n", Type: intT}}},
				ast.Vars(false, ast.StructRef("U"), ast.V("u", nil)),
			),
		},
		{
			name: "variable used as type",
			prog: ast.Prog(
				ast.Vars(false, intT, ast.V("v", nil)),
				ast.Func(voidT, "f", nil, ast.Local(ast.NamedRef("v"), "x", nil)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Program(tt.prog)
			require.Error(t, err)
			assert.True(t, diag.IsUndefinedName(err))
			assert.Contains(t, err.Error(), "type")
		})
	}
}

// TestProgram_TypedefSignedness tests that an alias declared after its use in
// another alias still carries its base type.
func TestProgram_TypedefSignedness(t *testing.T) {
	prog := ast.Prog(
		&ast.TypedefDecl{Name: "outer", Type: ast.NamedRef("inner")},
		&ast.TypedefDecl{Name: "inner", Type: ast.TypeOf(ast.UnsignedInt)},
		ast.Vars(false, ast.NamedRef("outer"), ast.V("x", nil)),
	)

	tree, err := Program(prog)
	require.NoError(t, err)

	x, _ := tree.Root().LookupLocal("x")
	assert.True(t, x.(ast.Variable).Type.IsUnsigned())
}

// TestProgram_Switch tests that a switch body has its own scope.
func TestProgram_Switch(t *testing.T) {
	sw := &ast.SwitchStmt{
		Tag: ast.Name("n"),
		Cases: []*ast.CaseClause{
			{Values: []ast.Expr{ast.Num(1)}, Body: []ast.Stmt{ast.Local(intT, "y", ast.Num(1))}},
		},
		Default: &ast.CaseClause{Body: []ast.Stmt{ast.Eval(ast.Set(ast.Name("y"), ast.Num(2)))}},
	}
	f := ast.Func(voidT, "f", []ast.Param{{Type: intT, Name: "n"}}, sw)

	tree, err := Program(ast.Prog(f))
	require.NoError(t, err)

	s, ok := tree.Get(sw.Scope)
	require.True(t, ok)
	assert.Equal(t, []string{"y"}, s.Names())
}

// TestProgram_ImportIgnored tests that import directives have no effect.
func TestProgram_ImportIgnored(t *testing.T) {
	tree, err := Program(ast.Prog(&ast.ImportDecl{Path: []string{"stdio"}}))
	require.NoError(t, err)
	assert.Zero(t, tree.Root().Len())
}
