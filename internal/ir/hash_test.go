package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cbc/internal/ast"
)

func sampleProgram() *Program {
	return &Program{
		Vars: []DefinedVar{
			{Name: "a", Type: ast.TypeOf(ast.Int), Init: Int(1)},
			{Name: "msg", Type: ast.TypeOf(ast.Char).Pointer(), Private: true, Init: Str("hi")},
		},
		Funcs: []DefinedFunc{{
			Name:   "main",
			Return: ast.TypeOf(ast.Void),
			Temps:  []Temp{{Name: "__tmp0", Type: ast.TypeOf(ast.Int)}},
			Body: []Stmt{
				&CJump{Cond: &Var{Name: "a"}, Then: 0, Else: 1},
				&LabelStmt{Label: 0},
				&Assign{Addr: &Addr{Name: "a"}, Value: &Binary{Op: Add, X: &Var{Name: "a"}, Y: Int(1)}},
				&LabelStmt{Label: 1},
				&Return{},
			},
		}},
	}
}

func TestHashDeterminism(t *testing.T) {
	h1, err := Hash(sampleProgram())
	require.NoError(t, err)
	h2, err := Hash(sampleProgram())
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "Hash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestHashChangesWithProgram(t *testing.T) {
	base := MustHash(sampleProgram())

	p := sampleProgram()
	p.Vars[0].Init = Int(2)
	assert.NotEqual(t, base, MustHash(p), "different initializer")

	p = sampleProgram()
	p.Funcs[0].Body[2].(*Assign).Value.(*Binary).Op = Sub
	assert.NotEqual(t, base, MustHash(p), "different operator")

	p = sampleProgram()
	p.Vars[1].Private = false
	assert.NotEqual(t, base, MustHash(p), "different visibility")
}

func TestHashIgnoresEntities(t *testing.T) {
	p := sampleProgram()
	p.Funcs[0].Body[0].(*CJump).Cond.(*Var).Entity = ast.Variable{Type: ast.TypeOf(ast.Int)}

	assert.Equal(t, MustHash(sampleProgram()), MustHash(p))
}

func TestDigestDomainSeparation(t *testing.T) {
	data := []byte(`{"vars":[]}`)
	assert.NotEqual(t, Digest(DomainProgram, data), Digest(DomainTree, data))
}

func TestProgramMarshalJSON(t *testing.T) {
	p := &Program{Vars: []DefinedVar{{Name: "x", Type: ast.TypeOf(ast.UnsignedLong)}}}

	data, err := p.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"funcs":[],"vars":[{"name":"x","private":false,"type":"unsigned long"}]}`, string(data))
}
