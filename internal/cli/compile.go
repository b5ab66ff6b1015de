package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/cbc/internal/compiler"
	"github.com/roach88/cbc/internal/store"
	"github.com/roach88/cbc/internal/syntax"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output  string // output file path
	NoCache bool   // skip the build cache even when --db is set
}

// CompileResult is the payload of a successful compile.
type CompileResult struct {
	Tree        string          `json:"tree"`
	TreeHash    string          `json:"tree_hash"`
	ProgramHash string          `json:"program_hash"`
	BuildID     string          `json:"build_id,omitempty"`
	Cached      bool            `json:"cached"`
	Output      string          `json:"output,omitempty"`
	IR          json.RawMessage `json:"ir"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <tree>",
		Short: "Compile a syntax tree to IR",
		Long: `Resolve, check and lower a CUE or JSON syntax tree.

In text format the IR dump is printed. With --output the IR is written to
a file instead: canonical JSON if the file name ends in .json, text
otherwise.

With --db, builds are cached by the tree's content hash and a tree seen
before is not compiled again.

Exit codes:
  0 - Compiled
  1 - The program has a semantic error
  2 - Command error (missing file, malformed tree, cache failure)

Examples:
  cbc compile main.cue
  cbc compile main.cue -o main.ir
  cbc compile main.json --db ./cbc.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "do not read or write the build cache")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	doc, err := loadTree(formatter, path)
	if err != nil {
		return err
	}

	var st *store.Store
	if !opts.NoCache {
		st, err = openCache(formatter, opts.Database)
		if err != nil {
			return err
		}
	}
	if st != nil {
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing build cache", "error", closeErr)
			}
		}()
	}

	b, cached, err := build(ctx, st, doc)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCache, err.Error(), nil)
	}
	if cached {
		formatter.VerboseLog("Cache hit: build %s", b.ID)
	}

	if b.Status == store.StatusError {
		return failBuild(formatter, b)
	}

	if opts.Output != "" {
		if err := writeIR(b, opts.Output); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed,
				fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(CompileResult{
			Tree:        doc.Filename,
			TreeHash:    b.TreeHash,
			ProgramHash: b.ProgramHash,
			BuildID:     b.ID,
			Cached:      cached,
			Output:      opts.Output,
			IR:          json.RawMessage(b.IRJSON),
		})
	}

	w := formatter.Writer
	if opts.Output == "" {
		fmt.Fprint(w, b.IRText)
		return nil
	}
	fmt.Fprintf(w, "✓ Compiled %s (program %s)\n", doc.Filename, shortHash(b.ProgramHash))
	fmt.Fprintf(w, "Wrote IR to %s\n", opts.Output)
	return nil
}

// build returns the cached build for doc if st has one, and otherwise
// compiles doc and records the outcome. st may be nil.
func build(ctx context.Context, st *store.Store, doc *syntax.Document) (store.Build, bool, error) {
	if st != nil {
		b, ok, err := st.Lookup(ctx, doc.Hash)
		if err != nil {
			return store.Build{}, false, err
		}
		if ok {
			return b, true, nil
		}
	}

	res, cerr := compiler.Compile(doc.Program)
	b, err := compiler.NewBuild(doc.Filename, doc.Hash, res, cerr)
	if err != nil {
		return store.Build{}, false, err
	}
	if st == nil {
		return b, false, nil
	}
	b, err = st.Record(ctx, b)
	return b, false, err
}

// failBuild reports a semantic error. The diagnostic code is the CLI error
// code.
func failBuild(formatter *OutputFormatter, b store.Build) error {
	code := b.ErrorCode
	if code == "" {
		code = ErrCodeGeneric
	}
	details := map[string]string{
		"pass":      b.ErrorPass,
		"tree":      b.Source,
		"tree_hash": b.TreeHash,
	}
	if b.ID != "" {
		details["build_id"] = b.ID
	}
	return formatter.Fail(ExitFailure, code, b.ErrorMessage, details)
}

// writeIR writes the IR as canonical JSON for a .json path and as text
// otherwise.
func writeIR(b store.Build, path string) error {
	data := b.IRText
	if filepath.Ext(path) == ".json" {
		data = b.IRJSON
	}
	return os.WriteFile(path, []byte(data), 0644)
}
