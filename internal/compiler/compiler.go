package compiler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/cbc/internal/ast"
	"github.com/roach88/cbc/internal/check"
	"github.com/roach88/cbc/internal/ir"
	"github.com/roach88/cbc/internal/lower"
	"github.com/roach88/cbc/internal/resolve"
	"github.com/roach88/cbc/internal/scope"
	"github.com/roach88/cbc/internal/typedep"
)

// Pass names a stage of the pipeline.
type Pass string

const (
	PassDeclare Pass = "declare"
	PassTypes   Pass = "types"
	PassResolve Pass = "resolve"
	PassCheck   Pass = "check"
	PassLower   Pass = "lower"
	PassVerify  Pass = "verify"
)

// PassError reports the pass that rejected the program.
type PassError struct {
	Pass Pass
	Err  error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pass, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// PassOf returns the pass that produced err, or "" if err did not come from
// this package.
func PassOf(err error) Pass {
	var pe *PassError
	if errors.As(err, &pe) {
		return pe.Pass
	}
	return ""
}

// Result is the output of a successful Compile.
type Result struct {
	Program *ir.Program
	Tree    *scope.Tree
}

// Option configures a Compile or Check run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for pass progress. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Compile runs every pass and returns the lowered program.
func Compile(prog *ast.Program, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	tree, err := o.check(prog)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("pass starting", "pass", PassLower)
	p, err := lower.Program(prog, tree)
	if err != nil {
		return nil, o.fail(PassLower, err)
	}

	if err := ir.Verify(p); err != nil {
		return nil, o.fail(PassVerify, err)
	}

	o.logger.Info("program compiled",
		"vars", len(p.Vars),
		"funcs", len(p.Funcs),
		"labels", countLabels(p),
		"scopes", tree.Len(),
	)
	return &Result{Program: p, Tree: tree}, nil
}

// Check runs every pass up to and including the validity checks, without
// lowering. It returns the resolved scope tree.
func Check(prog *ast.Program, opts ...Option) (*scope.Tree, error) {
	return newOptions(opts).check(prog)
}

func (o *options) check(prog *ast.Program) (*scope.Tree, error) {
	if prog == nil {
		return nil, o.fail(PassDeclare, errors.New("nil program"))
	}

	r := resolve.New()

	o.logger.Debug("pass starting", "pass", PassDeclare, "decls", len(prog.Decls))
	if err := r.DeclareTopLevel(prog); err != nil {
		return nil, o.fail(PassDeclare, err)
	}

	o.logger.Debug("pass starting", "pass", PassTypes)
	if err := typedep.Check(r.Tree().Root()); err != nil {
		return nil, o.fail(PassTypes, err)
	}

	o.logger.Debug("pass starting", "pass", PassResolve)
	if err := r.ResolveBodies(prog); err != nil {
		return nil, o.fail(PassResolve, err)
	}

	o.logger.Debug("pass starting", "pass", PassCheck)
	if err := check.Program(prog); err != nil {
		return nil, o.fail(PassCheck, err)
	}

	return r.Tree(), nil
}

func (o *options) fail(p Pass, err error) error {
	o.logger.Debug("pass failed", "pass", p, "error", err)
	return &PassError{Pass: p, Err: err}
}

func countLabels(p *ir.Program) int {
	n := 0
	for _, f := range p.Funcs {
		for _, s := range f.Body {
			if _, ok := s.(*ir.LabelStmt); ok {
				n++
			}
		}
	}
	return n
}
