package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/cinder/internal/render"
)

// Record is a stored pass. Pass.Ops is populated by the Read methods.
type Record struct {
	ID        string       `json:"id"`
	TraceHash string       `json:"trace_hash"`
	Pass      *render.Pass `json:"pass"`
}

const passColumns = `id, list, seq, token, old_items, new_items, final, counts, trace_hash`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPass(row rowScanner) (Record, error) {
	var (
		rec        Record
		p          render.Pass
		oldJSON    string
		newJSON    string
		countsJSON string
	)
	if err := row.Scan(&rec.ID, &p.List, &p.Seq, &p.Token, &oldJSON, &newJSON, &p.Final, &countsJSON, &rec.TraceHash); err != nil {
		return Record{}, err
	}

	var err error
	if p.Old, err = unmarshalItems(oldJSON); err != nil {
		return Record{}, err
	}
	if p.New, err = unmarshalItems(newJSON); err != nil {
		return Record{}, err
	}
	if p.Counts, err = unmarshalCounts(countsJSON, p.Final); err != nil {
		return Record{}, err
	}
	rec.Pass = &p
	return rec, nil
}

// ReadPass retrieves a single pass by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadPass(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+passColumns+` FROM passes WHERE id = ?`, id)
	rec, err := scanPass(row)
	if err != nil {
		return Record{}, fmt.Errorf("read pass %s: %w", id, err)
	}
	return s.withOps(ctx, rec)
}

// ReadPassBySeq retrieves the pass of list with the given seq.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadPassBySeq(ctx context.Context, list string, seq int64) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+passColumns+`
		FROM passes
		WHERE list = ? AND seq = ?
		ORDER BY id COLLATE BINARY ASC
		LIMIT 1
	`, list, seq)
	rec, err := scanPass(row)
	if err != nil {
		return Record{}, fmt.Errorf("read pass %s#%d: %w", list, seq, err)
	}
	return s.withOps(ctx, rec)
}

// ReadPasses returns every pass of list, ordered by seq ASC, id ASC.
//
// Returns an empty slice (not nil) if the list has no passes.
func (s *Store) ReadPasses(ctx context.Context, list string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+passColumns+`
		FROM passes
		WHERE list = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, list)
	if err != nil {
		return nil, fmt.Errorf("query passes: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passes: %w", err)
	}

	for i := range records {
		if records[i], err = s.withOps(ctx, records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// ReadOps returns the ops of a pass in the order they were applied.
//
// Returns an empty slice (not nil) if the pass has no ops.
func (s *Store) ReadOps(ctx context.Context, passID string) ([]render.Op, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT step, kind, key, component_id, from_pos, to_pos, old_end, new_end, changed
		FROM ops
		WHERE pass_id = ?
		ORDER BY idx ASC
	`, passID)
	if err != nil {
		return nil, fmt.Errorf("query ops: %w", err)
	}
	defer rows.Close()

	ops := []render.Op{}
	for rows.Next() {
		var (
			op      render.Op
			kind    string
			changed int
		)
		if err := rows.Scan(&op.Step, &kind, &op.Key, &op.ComponentID, &op.From, &op.To, &op.OldEnd, &op.NewEnd, &changed); err != nil {
			return nil, fmt.Errorf("scan op: %w", err)
		}
		op.Kind = render.OpKind(kind)
		op.Changed = changed != 0
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ops: %w", err)
	}
	return ops, nil
}

// ListNames returns the names of all lists with recorded passes, sorted.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT list FROM passes ORDER BY list COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}
	return names, nil
}

// LastSeq returns the highest recorded seq of list, or 0.
func (s *Store) LastSeq(ctx context.Context, list string) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM passes WHERE list = ?`, list).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}

func (s *Store) withOps(ctx context.Context, rec Record) (Record, error) {
	ops, err := s.ReadOps(ctx, rec.ID)
	if err != nil {
		return Record{}, fmt.Errorf("read pass %s: %w", rec.ID, err)
	}
	rec.Pass.Ops = ops
	return rec, nil
}
