package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/reconcile"
	"github.com/roach88/cinder/internal/render"
	"github.com/roach88/cinder/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	List     string
	Seq      int64 // optional - 0 shows every pass
}

// TracePass is one recorded pass in the trace output.
type TracePass struct {
	ID           string           `json:"id"`
	Seq          int64            `json:"seq"`
	Token        string           `json:"token"`
	Old          []string         `json:"old"`
	New          []string         `json:"new"`
	Instructions []string         `json:"instructions"`
	Ops          []render.Op      `json:"ops"`
	Final        string           `json:"final"`
	Counts       reconcile.Counts `json:"counts"`
	TraceHash    string           `json:"trace_hash"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	List   string      `json:"list"`
	Passes []TracePass `json:"passes"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the recorded ops of a list",
		Long: `Print the recorded passes of one list, oldest first, with the
instructions and ops each pass applied.

Exit codes:
  0 - Trace printed
  2 - Command error (database not found, unknown pass, etc.)

Examples:
  cinder trace --db ./cinder.db --list todo
  cinder trace --db ./cinder.db --list todo --seq 2
  cinder trace --db ./cinder.db --list todo --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.List, "list", "", "list to trace (required)")
	cmd.Flags().Int64Var(&opts.Seq, "seq", 0, "show a single pass by sequence number")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("list")

	return cmd
}

func runTrace(ctx context.Context, opts *TraceOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := loadRecords(ctx, st, opts.List, opts.Seq)
	if err != nil {
		return err
	}

	result := TraceResult{List: opts.List, Passes: make([]TracePass, 0, len(records))}
	for _, rec := range records {
		result.Passes = append(result.Passes, tracePass(rec))
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	writeTraceText(formatter.Writer, result, formatter.Color)
	return nil
}

func loadRecords(ctx context.Context, st *store.Store, list string, seq int64) ([]store.Record, error) {
	if seq == 0 {
		records, err := st.ReadPasses(ctx, list)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read passes", err)
		}
		return records, nil
	}

	rec, err := st.ReadPassBySeq(ctx, list, seq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("no pass %d recorded for list %s", seq, list))
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read pass", err)
	}
	return []store.Record{rec}, nil
}

func tracePass(rec store.Record) TracePass {
	p := rec.Pass
	return TracePass{
		ID:           rec.ID,
		Seq:          p.Seq,
		Token:        p.Token,
		Old:          item.KeysOf(p.Old),
		New:          item.KeysOf(p.New),
		Instructions: p.Instructions(),
		Ops:          p.Ops,
		Final:        p.Final,
		Counts:       p.Counts,
		TraceHash:    rec.TraceHash,
	}
}

func writeTraceText(w io.Writer, result TraceResult, color bool) {
	if len(result.Passes) == 0 {
		fmt.Fprintf(w, "No passes recorded for list %s.\n", result.List)
		return
	}

	fmt.Fprintf(w, "Trace: %s (%d passes)\n", result.List, len(result.Passes))
	for _, p := range result.Passes {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Pass %d  %s\n", p.Seq, p.Token)
		fmt.Fprintf(w, "  old: [%s]\n", strings.Join(p.Old, ", "))
		fmt.Fprintf(w, "  new: [%s]\n", strings.Join(p.New, ", "))
		fmt.Fprintf(w, "  instructions: %s\n", strings.Join(p.Instructions, ", "))
		writeOpsText(w, p.Ops, color)
		fmt.Fprintf(w, "  final: %s (%d recycled, %d removed, %d added)\n",
			p.Final, p.Counts.Recycled, p.Counts.Removed, p.Counts.Added)
	}
}
