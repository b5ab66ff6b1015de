package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/cbc/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// HistoryResult is the payload of the history command.
type HistoryResult struct {
	Builds []store.Build `json:"builds"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds",
		Long: `List the builds recorded in the build cache, newest first.

Examples:
  cbc history --db ./cbc.db
  cbc history --db ./cbc.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of builds (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Database == "" {
		return formatter.Fail(ExitCommandError, ErrCodeCache, "history needs a build cache (--db)", nil)
	}
	st, err := openCache(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing build cache", "error", closeErr)
		}
	}()

	builds, err := st.List(ctx, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCache, fmt.Sprintf("failed to list builds: %v", err), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Builds: builds})
	}

	w := formatter.Writer
	if len(builds) == 0 {
		fmt.Fprintln(w, "No builds recorded.")
		return nil
	}
	for _, b := range builds {
		outcome := "program " + shortHash(b.ProgramHash)
		if b.Status == store.StatusError {
			outcome = fmt.Sprintf("%s: %s", b.ErrorCode, b.ErrorMessage)
		}
		fmt.Fprintf(w, "%4d  %s  %-5s  %s  %s\n", b.Seq, b.ID, b.Status, b.Source, outcome)
	}
	return nil
}
