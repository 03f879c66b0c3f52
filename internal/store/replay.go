package store

import (
	"context"
	"fmt"

	"github.com/roach88/cinder/internal/render"
)

// ReplayResult compares one recorded pass with a fresh re-run.
type ReplayResult struct {
	PassID   string `json:"pass_id"`
	Seq      int64  `json:"seq"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Match    bool   `json:"match"`
}

// ReplayList re-runs every recorded pass of list and compares trace hashes.
//
// Each pass is replayed in isolation: a fresh render.List (configured by
// opts) is primed with the pass's old items, then rendered with its new
// items. The priming pass is not compared.
func (s *Store) ReplayList(ctx context.Context, list string, opts ...render.Option) ([]ReplayResult, error) {
	records, err := s.ReadPasses(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", list, err)
	}

	results := make([]ReplayResult, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		actual, err := ReplayPass(rec.Pass, opts...)
		if err != nil {
			return nil, fmt.Errorf("replay %s#%d: %w", list, rec.Pass.Seq, err)
		}
		results = append(results, ReplayResult{
			PassID:   rec.ID,
			Seq:      rec.Pass.Seq,
			Expected: rec.TraceHash,
			Actual:   actual,
			Match:    actual == rec.TraceHash,
		})
	}
	return results, nil
}

// ReplayPass re-renders p from its inputs and returns the new trace hash.
func ReplayPass(p *render.Pass, opts ...render.Option) (string, error) {
	l := render.NewList(p.List, opts...)
	if _, err := l.Render(p.Old); err != nil {
		return "", fmt.Errorf("prime: %w", err)
	}
	again, err := l.Render(p.New)
	if err != nil {
		return "", err
	}
	return again.TraceHash()
}
