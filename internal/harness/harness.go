package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cinder/internal/render"
	"github.com/roach88/cinder/internal/store"
	"github.com/roach88/cinder/internal/testutil"
)

// Harness runs scenarios with deterministic IDs, tokens and clock.
type Harness struct {
	store  *store.Store
	ids    *testutil.SequenceIDs
	clock  *testutil.DeterministicClock
	token  testutil.FixedToken
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Render Old onto an empty list (priming pass)
// 2. Render New (the pass under test)
// 3. Record both passes and replay them from the store
// 4. Check totality and the scenario's expectations
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		ids:    testutil.NewSequenceIDs("c"),
		clock:  testutil.NewDeterministicClock(),
		token:  testutil.FixedToken(scenario.Token),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) options() []render.Option {
	return []render.Option{
		render.WithIDs(h.ids),
		render.WithTokens(h.token),
		render.WithClock(h.clock),
		render.WithLogger(h.logger),
	}
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	list := render.NewList(scenario.ListName(), h.options()...)

	prime, err := list.Render(scenario.Old)
	if err != nil {
		return nil, fmt.Errorf("render old: %w", err)
	}
	pass, err := list.Render(scenario.New)
	if err != nil {
		return nil, fmt.Errorf("render new: %w", err)
	}

	for _, p := range []*render.Pass{prime, pass} {
		if _, err := h.store.WritePass(ctx, p); err != nil {
			return nil, fmt.Errorf("record pass %d: %w", p.Seq, err)
		}
	}

	result := NewResult()
	result.Trace = pass.Ops
	result.Instructions = pass.Instructions()
	result.Counts = pass.Counts
	for _, c := range list.Components() {
		result.Keys = append(result.Keys, c.Key)
		result.Components = append(result.Components, c.ID)
	}
	if result.TraceHash, err = pass.TraceHash(); err != nil {
		return nil, err
	}

	if err := h.checkReplay(ctx, scenario.ListName(), result); err != nil {
		return nil, err
	}
	checkTotality(pass, result)
	if scenario.Expect != nil {
		checkExpect(scenario.Expect, pass, result)
	}

	h.logger.Debug("scenario complete",
		"name", scenario.Name,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)
	return result, nil
}

// checkReplay replays the recorded passes with fresh generators and records
// a failure for every trace hash that differs.
func (h *Harness) checkReplay(ctx context.Context, list string, result *Result) error {
	replays, err := h.store.ReplayList(ctx, list,
		render.WithIDs(testutil.NewSequenceIDs("replay")),
		render.WithTokens(h.token),
		render.WithLogger(h.logger),
	)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	for _, r := range replays {
		if !r.Match {
			result.AddError((&AssertionError{
				Type:     AssertReplay,
				Expected: r.Expected,
				Actual:   r.Actual,
				Trace:    result.Instructions,
			}).Error())
		}
	}
	return nil
}
