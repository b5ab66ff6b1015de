package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cbc/internal/compiler"
	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/ir"
	"github.com/roach88/cbc/internal/scope"
	"github.com/roach88/cbc/internal/store"
	"github.com/roach88/cbc/internal/syntax"
	"github.com/roach88/cbc/internal/testutil"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when the outcome and every assertion matched.
	Pass bool `json:"pass"`

	// Errors lists every mismatch. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Build is the cache record of the compilation.
	Build store.Build `json:"build"`

	// Program and Tree are set when compilation succeeded.
	Program *ir.Program `json:"-"`
	Tree    *scope.Tree `json:"-"`

	// CompileErr is the compiler's error, if any.
	CompileErr error `json:"-"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// harness holds the per-scenario cache and logger.
type harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run compiles the scenario's tree and checks the outcome. The returned
// error is reserved for infrastructure failures such as an unreadable tree;
// a wrong outcome is reported through Result.
func Run(scenario *Scenario) (*Result, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(":memory:",
		store.WithClock(testutil.NewDeterministicClock()),
		store.WithIDGenerator(testutil.NewSequentialIDGenerator(scenario.Name)),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &harness{store: st, logger: logger}
	return h.run(context.Background(), scenario)
}

func (h *harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	doc, err := syntax.LoadFile(scenario.Tree)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	res, cerr := compiler.Compile(doc.Program, compiler.WithLogger(h.logger))

	b, err := compiler.NewBuild(doc.Filename, doc.Hash, res, cerr)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	b, err = h.store.Record(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Build = b
	result.CompileErr = cerr
	if res != nil {
		result.Program = res.Program
		result.Tree = res.Tree
	}

	checkOutcome(scenario.Expect, cerr, result)
	if result.Program != nil {
		for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
			result.AddError("%s", msg)
		}
	}

	h.logger.Info("scenario finished",
		"name", scenario.Name,
		"pass", result.Pass,
		"status", b.Status,
		"code", b.ErrorCode,
	)
	return result, nil
}

func checkOutcome(want Expect, cerr error, result *Result) {
	if want.OK {
		if cerr != nil {
			result.AddError("expected success, got %v", cerr)
		}
		return
	}

	if cerr == nil {
		result.AddError("expected %s, but the program compiled", want.Error)
		return
	}

	if got := diag.CodeOf(cerr); string(got) != want.Error {
		result.AddError("expected %s, got %v", want.Error, cerr)
		return
	}

	if want.Name != "" {
		var de *diag.Error
		if !errors.As(cerr, &de) || de.Name != want.Name {
			result.AddError("expected %s about %q, got %v", want.Error, want.Name, cerr)
		}
	}

	if want.Pass != "" {
		if got := compiler.PassOf(cerr); string(got) != want.Pass {
			result.AddError("expected %s from pass %q, got pass %q", want.Error, want.Pass, got)
		}
	}
}
