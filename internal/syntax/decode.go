package syntax

import (
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/cbc/internal/ast"
)

// Document is a decoded syntax-tree document.
type Document struct {
	Filename string
	Program  *ast.Program

	// Hash identifies the program field's content. Formatting, comments and
	// field order do not change it.
	Hash string
}

// DecodeError reports a malformed document with its source position.
type DecodeError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *DecodeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode compiles data as CUE and decodes its program field. filename is
// used in error positions only.
func Decode(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pv := v.LookupPath(cue.MakePath(cue.Str("program")))
	if !pv.Exists() {
		return nil, &DecodeError{Field: "program", Message: "program is required", Pos: v.Pos()}
	}
	if err := pv.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	prog, err := decodeProgram(pv)
	if err != nil {
		return nil, err
	}
	hash, err := treeHash(pv)
	if err != nil {
		return nil, err
	}

	slog.Debug("tree decoded", "file", filename, "decls", len(prog.Decls), "hash", hash)
	return &Document{Filename: filename, Program: prog, Hash: hash}, nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &DecodeError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}

func errorAt(v cue.Value, format string, args ...any) *DecodeError {
	return &DecodeError{
		Field:   v.Path().String(),
		Message: fmt.Sprintf(format, args...),
		Pos:     v.Pos(),
	}
}

// tagged splits a single-field object into its label and value.
func tagged(v cue.Value) (string, cue.Value, error) {
	if v.Kind() != cue.StructKind {
		return "", cue.Value{}, errorAt(v, "expected an object with one field, got %v", v.Kind())
	}
	iter, err := v.Fields()
	if err != nil {
		return "", cue.Value{}, formatCUEError(err)
	}

	var (
		label string
		val   cue.Value
		n     int
	)
	for iter.Next() {
		label, val = iter.Label(), iter.Value()
		n++
	}
	if n != 1 {
		return "", cue.Value{}, errorAt(v, "expected exactly one field, got %d", n)
	}
	return label, val, nil
}

func lookup(v cue.Value, name string) (cue.Value, bool) {
	f := v.LookupPath(cue.MakePath(cue.Str(name)))
	return f, f.Exists()
}

func required(v cue.Value, name string) (cue.Value, error) {
	f, ok := lookup(v, name)
	if !ok {
		return cue.Value{}, errorAt(v, "%s is required", name)
	}
	return f, nil
}

func stringOf(v cue.Value) (string, error) {
	s, err := v.String()
	if err != nil {
		return "", errorAt(v, "expected string, got %v", v.Kind())
	}
	return s, nil
}

func requiredString(v cue.Value, name string) (string, error) {
	f, err := required(v, name)
	if err != nil {
		return "", err
	}
	return stringOf(f)
}

func optionalBool(v cue.Value, name string) (bool, error) {
	f, ok := lookup(v, name)
	if !ok {
		return false, nil
	}
	b, err := f.Bool()
	if err != nil {
		return false, errorAt(f, "expected bool, got %v", f.Kind())
	}
	return b, nil
}

func requiredType(v cue.Value, name string) (ast.TypeRef, error) {
	f, err := required(v, name)
	if err != nil {
		return ast.TypeRef{}, err
	}
	s, err := stringOf(f)
	if err != nil {
		return ast.TypeRef{}, err
	}
	t, err := ParseType(s)
	if err != nil {
		return ast.TypeRef{}, errorAt(f, "%v", err)
	}
	return t, nil
}

// each calls fn for every element of the list v.
func each(v cue.Value, fn func(cue.Value) error) error {
	if v.Kind() != cue.ListKind {
		return errorAt(v, "expected list, got %v", v.Kind())
	}
	iter, err := v.List()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		if err := fn(iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

// absent reports whether v stands for an omitted optional node: null or {}.
func absent(v cue.Value) bool {
	switch v.Kind() {
	case cue.NullKind:
		return true
	case cue.StructKind:
		iter, err := v.Fields()
		return err == nil && !iter.Next()
	}
	return false
}
