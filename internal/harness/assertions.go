package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/cbc/internal/ir"
)

// EvaluateAssertions checks every assertion against the compiled program
// and returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d] (%s): %v", i, a.Type, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	if a.Type == AssertRootNames {
		got := result.Tree.Root().Names()
		if !slices.Equal(got, a.Names) {
			return fmt.Errorf("root names are %v, want %v", got, a.Names)
		}
		return nil
	}

	f, ok := findFunc(result.Program, a.Func)
	if !ok {
		return fmt.Errorf("function %q not found", a.Func)
	}

	switch a.Type {
	case AssertIRContains:
		if !slices.Contains(bodyLines(f), a.Line) {
			return fmt.Errorf("%q not found in %s", a.Line, a.Func)
		}

	case AssertIROrder:
		lines := bodyLines(f)
		at := 0
		for _, want := range a.Lines {
			i := slices.Index(lines[at:], want)
			if i < 0 {
				return fmt.Errorf("%q not found in %s after line %d", want, a.Func, at)
			}
			at += i + 1
		}

	case AssertAssignCount:
		n := 0
		for _, s := range f.Body {
			if as, ok := s.(*ir.Assign); ok && assignsTo(as, a.Target) {
				n++
			}
		}
		if n != a.Count {
			return fmt.Errorf("%d assignments to %s in %s, want %d", n, a.Target, a.Func, a.Count)
		}

	case AssertTempCount:
		if len(f.Temps) != a.Count {
			return fmt.Errorf("%s has %d temporaries, want %d", a.Func, len(f.Temps), a.Count)
		}
	}
	return nil
}

func findFunc(p *ir.Program, name string) (ir.DefinedFunc, bool) {
	for _, f := range p.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return ir.DefinedFunc{}, false
}

// bodyLines renders f's body the way ir.Format does, without indentation.
func bodyLines(f ir.DefinedFunc) []string {
	lines := make([]string, len(f.Body))
	for i, s := range f.Body {
		if l, ok := s.(*ir.LabelStmt); ok {
			lines[i] = l.Label.String() + ":"
			continue
		}
		lines[i] = ir.StmtString(s)
	}
	return lines
}

// assignsTo reports whether a stores directly to the variable name. Stores
// through a pointer do not count.
func assignsTo(a *ir.Assign, name string) bool {
	addr, ok := a.Addr.(*ir.Addr)
	return ok && addr.Name == name
}
