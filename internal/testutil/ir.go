package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/cbc/internal/ir"
)

// StmtsOf returns the statements of type T in body, in order.
func StmtsOf[T ir.Stmt](body []ir.Stmt) []T {
	var out []T
	for _, s := range body {
		if v, ok := s.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Func returns the function named name, failing the test if p has none.
func Func(t *testing.T, p *ir.Program, name string) ir.DefinedFunc {
	t.Helper()
	for _, f := range p.Funcs {
		if f.Name == name {
			return f
		}
	}
	require.Failf(t, "function not found", "no function %q in program", name)
	return ir.DefinedFunc{}
}

// RequireLabels fails the test unless every function in p defines each
// label it jumps to exactly once.
func RequireLabels(t *testing.T, p *ir.Program) {
	t.Helper()
	require.NoError(t, ir.Verify(p))
}

// IndexOf returns the position of the first statement in body for which
// match is true, or -1.
func IndexOf(body []ir.Stmt, match func(ir.Stmt) bool) int {
	for i, s := range body {
		if match(s) {
			return i
		}
	}
	return -1
}
