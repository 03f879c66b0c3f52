package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/roach88/cinder/internal/harness"
	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/metrics"
	"github.com/roach88/cinder/internal/reconcile"
	"github.com/roach88/cinder/internal/render"
	"github.com/roach88/cinder/internal/store"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	Old      string // comma-separated keys
	New      string // comma-separated keys
	Scenario string // scenario file, overrides Old/New
	List     string
	Database string // optional pass log
	Metrics  bool   // print Prometheus metrics after the pass
}

// DiffResult is the output of one diff.
type DiffResult struct {
	List         string           `json:"list"`
	Seq          int64            `json:"seq"`
	Instructions []string         `json:"instructions"`
	Ops          []render.Op      `json:"ops"`
	Kept         []string         `json:"kept"`
	Inserted     []string         `json:"inserted"`
	Removed      []string         `json:"removed"`
	Final        string           `json:"final"`
	Counts       reconcile.Counts `json:"counts"`
	TraceHash    string           `json:"trace_hash"`
	Recorded     []string         `json:"recorded,omitempty"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Reconcile an old key list against a new one",
		Long: `Render the old list, then the new list, and print the instructions
and ops of the second pass.

With --db both passes are appended to the pass log, continuing the
list's sequence numbers.

Exit codes:
  0 - Diff computed
  2 - Command error (bad items, unreadable scenario, database error)

Examples:
  cinder diff --old a,b,c,d --new a,c,b,e,d
  cinder diff --scenario ./scenarios/swap-ends.yaml
  cinder diff --old a,b --new b,a --db ./cinder.db --list todo
  cinder diff --old a,b --new b --metrics`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Old, "old", "", "old keys, comma-separated")
	cmd.Flags().StringVar(&opts.New, "new", "", "new keys, comma-separated")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "read old and new items from a scenario file")
	cmd.Flags().StringVar(&opts.List, "list", "", `list name (default "default", or the scenario's list)`)
	cmd.Flags().StringVar(&opts.Database, "db", "", "record both passes in this SQLite database")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics for the passes")

	return cmd
}

func runDiff(ctx context.Context, opts *DiffOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	listName, oldItems, newItems, err := diffInputs(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read inputs", err)
	}

	renderOpts := []render.Option{render.WithLogger(formatter.Logger())}

	var registry *prometheus.Registry
	if opts.Metrics {
		registry = prometheus.NewRegistry()
		renderOpts = append(renderOpts, render.WithMetrics(metrics.NewPrometheus(registry, "")))
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		last, err := st.LastSeq(ctx, listName)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read sequence", err)
		}
		formatter.VerboseLog("Resuming %s after seq %d", listName, last)
		renderOpts = append(renderOpts, render.WithClock(render.NewClockAt(last)))
	}

	list := render.NewList(listName, renderOpts...)
	prime, err := list.Render(oldItems)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid old items", err)
	}
	pass, err := list.Render(newItems)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid new items", err)
	}

	result, err := newDiffResult(pass)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash trace", err)
	}

	if st != nil {
		for _, p := range []*render.Pass{prime, pass} {
			id, err := st.WritePass(ctx, p)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to record pass", err)
			}
			result.Recorded = append(result.Recorded, id)
		}
	}

	if formatter.IsJSON() {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeDiffText(formatter.Writer, result, formatter.Color)
	}

	if registry != nil {
		return writeMetrics(formatter.GetErrWriter(), registry)
	}
	return nil
}

// diffInputs resolves the list name and both item lists from flags or a
// scenario file.
func diffInputs(opts *DiffOptions) (string, []item.Item, []item.Item, error) {
	if opts.Scenario != "" {
		s, err := harness.LoadScenario(opts.Scenario)
		if err != nil {
			return "", nil, nil, err
		}
		name := s.ListName()
		if opts.List != "" {
			name = opts.List
		}
		return name, s.Old, s.New, nil
	}

	name := opts.List
	if name == "" {
		name = "default"
	}
	return name, parseKeys(opts.Old), parseKeys(opts.New), nil
}

// parseKeys splits a comma-separated key list. Blank entries are skipped,
// so "" is the empty list.
func parseKeys(s string) []item.Item {
	items := []item.Item{}
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		items = append(items, item.New(k, nil))
	}
	return items
}

func newDiffResult(p *render.Pass) (DiffResult, error) {
	hash, err := p.TraceHash()
	if err != nil {
		return DiffResult{}, err
	}
	return DiffResult{
		List:         p.List,
		Seq:          p.Seq,
		Instructions: p.Instructions(),
		Ops:          p.Ops,
		Kept:         p.Kept(),
		Inserted:     p.Inserted(),
		Removed:      p.Removed(),
		Final:        p.Final,
		Counts:       p.Counts,
		TraceHash:    hash,
	}, nil
}

func writeDiffText(w io.Writer, r DiffResult, color bool) {
	fmt.Fprintf(w, "List: %s (seq %d)\n", r.List, r.Seq)
	fmt.Fprintln(w)
	writeOpsText(w, r.Ops, color)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Final: %s\n", r.Final)
	fmt.Fprintf(w, "Counts: %d recycled, %d removed, %d added\n",
		r.Counts.Recycled, r.Counts.Removed, r.Counts.Added)
	for _, id := range r.Recorded {
		fmt.Fprintf(w, "Recorded: %s\n", id)
	}
}

// writeOpsText prints one line per op, grouped by instruction step.
func writeOpsText(w io.Writer, ops []render.Op, color bool) {
	if len(ops) == 0 {
		fmt.Fprintln(w, "  (no ops)")
		return
	}
	for _, op := range ops {
		kind := fmt.Sprintf("%-12s", op.Kind)
		if color {
			kind = paint(op.Kind, kind)
		}
		fmt.Fprintf(w, "  [%d] %s %-10s %s\n", op.Step, kind, op.Key, positions(op))
	}
}

var opColors = map[render.OpKind]string{
	render.OpRecycle:    "\x1b[32m",
	render.OpInsert:     "\x1b[36m",
	render.OpRemove:     "\x1b[31m",
	render.OpRemoveRest: "\x1b[31m",
}

func paint(kind render.OpKind, s string) string {
	code, ok := opColors[kind]
	if !ok {
		return s
	}
	return code + s + "\x1b[0m"
}

func positions(op render.Op) string {
	var b strings.Builder
	switch {
	case op.From < 0:
		fmt.Fprintf(&b, "-> %d", op.To)
	case op.To < 0:
		fmt.Fprintf(&b, "%d ->", op.From)
	default:
		fmt.Fprintf(&b, "%d -> %d", op.From, op.To)
	}
	if op.OldEnd != "" {
		b.WriteString(" (" + op.OldEnd)
		if op.NewEnd != "" {
			b.WriteString("/" + op.NewEnd)
		}
		b.WriteString(")")
	}
	if op.Changed {
		b.WriteString(" patched")
	}
	return b.String()
}

// writeMetrics dumps the registry in the Prometheus text format.
func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to gather metrics", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return WrapExitError(ExitCommandError, "failed to write metrics", err)
		}
	}
	return nil
}
