package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/cinder/internal/render"
)

// WritePass records a pass and its ops and returns the pass ID.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same pass
// twice stores it once.
func (s *Store) WritePass(ctx context.Context, p *render.Pass) (string, error) {
	id, err := p.ID()
	if err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}
	traceHash, err := p.TraceHash()
	if err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}
	oldJSON, err := marshalItems(p.Old)
	if err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}
	newJSON, err := marshalItems(p.New)
	if err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}
	countsJSON, err := marshalCounts(p.Counts)
	if err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("write pass: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO passes
		(id, list, seq, token, old_items, new_items, final, counts, trace_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		p.List,
		p.Seq,
		p.Token,
		oldJSON,
		newJSON,
		p.Final,
		countsJSON,
		traceHash,
	)
	if err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}
	if n == 0 {
		return id, nil
	}

	if err := writeOps(ctx, tx, id, p.Ops); err != nil {
		return "", fmt.Errorf("write pass: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("write pass: commit: %w", err)
	}
	return id, nil
}

func writeOps(ctx context.Context, tx *sql.Tx, passID string, ops []render.Op) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ops
		(pass_id, idx, step, kind, key, component_id, from_pos, to_pos, old_end, new_end, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare ops: %w", err)
	}
	defer stmt.Close()

	for i, op := range ops {
		changed := 0
		if op.Changed {
			changed = 1
		}
		if _, err := stmt.ExecContext(ctx,
			passID, i, op.Step, string(op.Kind), op.Key, op.ComponentID,
			op.From, op.To, op.OldEnd, op.NewEnd, changed,
		); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}
