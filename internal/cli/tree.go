package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/roach88/cbc/internal/store"
	"github.com/roach88/cbc/internal/syntax"
)

// loadTree reads a syntax-tree document, reporting failures through the
// formatter as command errors.
func loadTree(formatter *OutputFormatter, path string) (*syntax.Document, error) {
	formatter.VerboseLog("Loading %s", path)

	doc, err := syntax.LoadFile(path)
	if err == nil {
		formatter.VerboseLog("Tree hash %s", doc.Hash)
		return doc, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil, formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("tree not found: %s", path), nil)
	}

	var de *syntax.DecodeError
	if errors.As(err, &de) {
		details := map[string]any{"field": de.Field}
		if de.Pos.IsValid() {
			details["file"] = de.Pos.Filename()
			details["line"] = de.Pos.Line()
			details["column"] = de.Pos.Column()
		}
		return nil, formatter.Fail(ExitCommandError, ErrCodeDecode, de.Error(), details)
	}
	return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}

// openCache opens the build cache named by --db. It returns nil when no
// database was given.
func openCache(formatter *OutputFormatter, path string) (*store.Store, error) {
	if path == "" {
		return nil, nil
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeCache,
			fmt.Sprintf("failed to open build cache: %v", err), map[string]string{"path": path})
	}
	return st, nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
