package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cinder/internal/render"
	"github.com/roach88/cinder/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	List     string // optional - specific list only
}

// ReplayListResult holds the replay result for a single list.
type ReplayListResult struct {
	List          string               `json:"list"`
	Passes        []store.ReplayResult `json:"passes"`
	Deterministic bool                 `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Lists            []ReplayListResult `json:"lists"`
	TotalLists       int                `json:"total_lists"`
	TotalPasses      int                `json:"total_passes"`
	AllDeterministic bool               `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the pass log and verify determinism",
		Long: `Re-run every recorded pass from its stored inputs and compare the
resulting trace hash with the recorded one.

Component IDs and pass tokens are regenerated, so only the observable
trace has to match.

Exit codes:
  0 - All passes are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  cinder replay --db ./cinder.db
  cinder replay --db ./cinder.db --list todo
  cinder replay --db ./cinder.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.List, "list", "", "replay specific list only")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var lists []string
	if opts.List != "" {
		lists = []string{opts.List}
	} else {
		lists, err = st.ListNames(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list recorded lists", err)
		}
	}

	result := ReplayResult{
		Lists:            make([]ReplayListResult, 0, len(lists)),
		TotalLists:       len(lists),
		AllDeterministic: true,
	}

	logger := formatter.Logger()
	for _, name := range lists {
		formatter.VerboseLog("Replaying %s", name)
		passes, err := st.ReplayList(ctx, name, render.WithLogger(logger))
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay list %s", name), err)
		}

		lr := ReplayListResult{List: name, Passes: passes, Deterministic: true}
		for _, p := range passes {
			if !p.Match {
				lr.Deterministic = false
			}
		}
		if !lr.Deterministic {
			result.AllDeterministic = false
		}
		result.TotalPasses += len(passes)
		result.Lists = append(result.Lists, lr)
	}

	if formatter.IsJSON() {
		return outputReplayJSON(formatter, result)
	}
	return outputReplayText(formatter.Writer, result, opts.Verbose)
}

// openExisting opens a store that must already exist. store.Open would
// silently create an empty database at a mistyped path.
func openExisting(path string) (*store.Store, error) {
	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func outputReplayJSON(formatter *OutputFormatter, result ReplayResult) error {
	var failure *CLIError
	if !result.AllDeterministic {
		failure = &CLIError{
			Code:    ErrCodeDeterminism,
			Message: "determinism verification failed",
		}
	}
	if err := formatter.Report(result, failure); err != nil {
		return err
	}
	if failure != nil {
		return NewExitError(ExitFailure, failure.Message)
	}
	return nil
}

func outputReplayText(w io.Writer, result ReplayResult, verbose bool) error {
	if result.TotalLists == 0 {
		fmt.Fprintln(w, "No passes found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d list(s), %d pass(es)\n", result.TotalLists, result.TotalPasses)
	fmt.Fprintln(w)

	for _, lr := range result.Lists {
		status := "✓"
		if !lr.Deterministic {
			status = "✗"
		}
		fmt.Fprintf(w, "%s List: %s (%d passes)\n", status, lr.List, len(lr.Passes))

		for _, p := range lr.Passes {
			switch {
			case !p.Match:
				fmt.Fprintf(w, "  seq %d: recorded %s, replayed %s\n", p.Seq, short(p.Expected), short(p.Actual))
			case verbose:
				fmt.Fprintf(w, "  seq %d: %s\n", p.Seq, short(p.Actual))
			}
		}
		if !lr.Deterministic {
			fmt.Fprintln(w, "  Warning: Non-deterministic replay detected!")
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All passes verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}

// short abbreviates a hash for display.
func short(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
