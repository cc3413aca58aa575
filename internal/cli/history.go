package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/deploykit/internal/store"
	"github.com/roach88/deploykit/internal/validate"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Run      string
}

// RunDetail is the JSON payload of history --run.
type RunDetail struct {
	Run      store.Run            `json:"run"`
	Warnings validate.WarningList `json:"warnings"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List validation runs recorded in a ledger",
		Long: `List validation runs recorded with "validate --record", newest first.
With --run, print the warnings of a single run.

Example:
  deploykit history --db ./ledger.db
  deploykit history --db ./ledger.db --run 0190f7a8-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show the warnings of this run")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	// Opening would create an empty ledger.
	if _, err := os.Stat(opts.Database); err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("ledger not found: %s", opts.Database)})
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeGeneric, Message: err.Error()})
	}
	defer st.Close()

	if opts.Run != "" {
		run, err := st.GetRun(ctx, opts.Run)
		if errors.Is(err, store.ErrRunNotFound) {
			return commandError(formatter, &LoadError{Code: ErrCodeNotFound, Message: err.Error()})
		}
		if err != nil {
			return commandError(formatter, err)
		}
		warnings, err := st.RunWarnings(ctx, run.ID)
		if err != nil {
			return commandError(formatter, err)
		}
		if formatter.Format == "json" {
			return formatter.Success(RunDetail{Run: run, Warnings: warnings})
		}
		fmt.Fprintf(formatter.Writer, "Run %s at %s: %d file(s), %d warning(s)\n",
			run.ID, run.StartedAt.Format(time.RFC3339), run.Files, run.Warnings)
		for _, w := range warnings {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", w.File, w)
		}
		return nil
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return commandError(formatter, err)
	}
	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tDIR\tFILES\tWARNINGS\tHIGH\tMEDIUM\tLOW")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Dir, r.Files, r.Warnings, r.High, r.Medium, r.Low)
	}
	return tw.Flush()
}
