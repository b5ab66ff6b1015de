package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/cbc/internal/diag"
	"github.com/roach88/cbc/internal/ir"
	"github.com/roach88/cbc/internal/store"
)

// NewBuild summarises the outcome of Compile as a build record for the
// cache. Exactly one of res and compileErr must be non-nil.
func NewBuild(source, treeHash string, res *Result, compileErr error) (store.Build, error) {
	b := store.Build{Source: source, TreeHash: treeHash}

	if compileErr != nil {
		b.Status = store.StatusError
		b.ErrorPass = string(PassOf(compileErr))
		b.ErrorCode = string(diag.CodeOf(compileErr))
		b.ErrorMessage = compileErr.Error()

		var (
			de *diag.Error
			pe *PassError
		)
		switch {
		case errors.As(compileErr, &de):
			b.ErrorMessage = de.Message
		case errors.As(compileErr, &pe):
			b.ErrorMessage = pe.Err.Error()
		}
		return b, nil
	}
	if res == nil || res.Program == nil {
		return store.Build{}, fmt.Errorf("new build: no result and no error")
	}

	hash, err := ir.Hash(res.Program)
	if err != nil {
		return store.Build{}, fmt.Errorf("new build: %w", err)
	}
	data, err := res.Program.MarshalJSON()
	if err != nil {
		return store.Build{}, fmt.Errorf("new build: %w", err)
	}

	b.Status = store.StatusOK
	b.ProgramHash = hash
	b.IRText = ir.Format(res.Program)
	b.IRJSON = string(data)
	return b, nil
}
