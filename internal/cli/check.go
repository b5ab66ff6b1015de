package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cbc/internal/compiler"
)

// CheckResult is the payload of a successful check.
type CheckResult struct {
	Tree     string   `json:"tree"`
	TreeHash string   `json:"tree_hash"`
	Names    []string `json:"names"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <tree>",
		Short: "Check a syntax tree without lowering it",
		Long: `Run name resolution, the type cycle check and the expression checks
on a CUE or JSON syntax tree. Nothing is lowered and the build cache is
not used.

Exit codes:
  0 - No errors
  1 - The program has a semantic error
  2 - Command error (missing file, malformed tree)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, err := loadTree(formatter, path)
	if err != nil {
		return err
	}

	tree, cerr := compiler.Check(doc.Program)
	if cerr != nil {
		// A check failure is reported the same way as a failed compile.
		b, err := compiler.NewBuild(doc.Filename, doc.Hash, nil, cerr)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		return failBuild(formatter, b)
	}

	result := CheckResult{
		Tree:     doc.Filename,
		TreeHash: doc.Hash,
		Names:    tree.Root().Names(),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ %s: %d top-level declaration(s)", result.Tree, len(result.Names)))
}

