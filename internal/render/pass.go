package render

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/reconcile"
)

// OpKind names one effect of a render pass.
type OpKind string

const (
	OpRecycle    OpKind = "recycle"
	OpRemove     OpKind = "remove"
	OpInsert     OpKind = "insert"
	OpRemoveRest OpKind = "remove_rest"
)

// DomainPass prefixes pass IDs.
const DomainPass = "cinder/pass/v1"

// Op is one applied effect. From is the position in the old list and To the
// position in the new list; -1 means the side does not exist. Step is the
// index of the instruction that produced the op, so several ops can share a
// step (an insert run or a trailing removal).
type Op struct {
	Step        int    `json:"step"`
	Kind        OpKind `json:"kind"`
	Key         string `json:"key"`
	ComponentID string `json:"component_id"`
	From        int    `json:"from"`
	To          int    `json:"to"`
	OldEnd      string `json:"old_end,omitempty"`
	NewEnd      string `json:"new_end,omitempty"`
	Changed     bool   `json:"changed,omitempty"`
}

// Pass is the record of one List.Render call.
type Pass struct {
	Token  string           `json:"token"`
	Seq    int64            `json:"seq"`
	List   string           `json:"list"`
	Old    []item.Item      `json:"old"`
	New    []item.Item      `json:"new"`
	Ops    []Op             `json:"ops"`
	Final  string           `json:"final"`
	Counts reconcile.Counts `json:"counts"`
}

// Kept returns the keys of recycled components in new-list order.
func (p *Pass) Kept() []string {
	return p.keysTo(OpRecycle)
}

// Inserted returns the keys of mounted components in new-list order.
func (p *Pass) Inserted() []string {
	return p.keysTo(OpInsert)
}

// Removed returns the keys of unmounted components in removal order.
func (p *Pass) Removed() []string {
	keys := []string{}
	for _, op := range p.Ops {
		if op.Kind == OpRemove || op.Kind == OpRemoveRest {
			keys = append(keys, op.Key)
		}
	}
	return keys
}

// Instructions returns the instruction names of the pass, one per step.
func (p *Pass) Instructions() []string {
	names := []string{}
	last := -1
	for _, op := range p.Ops {
		if op.Step == last {
			continue
		}
		last = op.Step
		names = append(names, opInstruction(op))
	}
	if p.Final == reconcile.KindDone.String() {
		names = append(names, p.Final)
	}
	return names
}

func opInstruction(op Op) string {
	switch op.Kind {
	case OpRecycle:
		return fmt.Sprintf("recycle_%s_%s", op.OldEnd, op.NewEnd)
	case OpRemove:
		return "remove_" + op.OldEnd
	case OpInsert:
		return reconcile.KindAddRemaining.String()
	default:
		return reconcile.KindRemoveRemaining.String()
	}
}

func (p *Pass) keysTo(kind OpKind) []string {
	var ops []Op
	for _, op := range p.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	slices.SortFunc(ops, func(a, b Op) int { return cmp.Compare(a.To, b.To) })

	keys := make([]string, len(ops))
	for i, op := range ops {
		keys[i] = op.Key
	}
	return keys
}

// TraceHash identifies the observable behavior of the pass: the ops without
// component IDs, plus the final instruction. Two runs over the same inputs
// must produce the same hash.
func (p *Pass) TraceHash() (string, error) {
	ops := make([]any, len(p.Ops))
	for i, op := range p.Ops {
		ops[i] = map[string]any{
			"step":    op.Step,
			"kind":    string(op.Kind),
			"key":     op.Key,
			"from":    op.From,
			"to":      op.To,
			"old_end": op.OldEnd,
			"new_end": op.NewEnd,
			"changed": op.Changed,
		}
	}
	data, err := item.Canonical(map[string]any{
		"ops":   ops,
		"final": p.Final,
	})
	if err != nil {
		return "", fmt.Errorf("trace hash: %w", err)
	}
	return item.HashWithDomain(item.DomainTrace, data), nil
}

// ID is the content-addressed identity of the pass.
func (p *Pass) ID() (string, error) {
	trace, err := p.TraceHash()
	if err != nil {
		return "", err
	}
	data, err := item.Canonical(map[string]any{
		"list":  p.List,
		"seq":   p.Seq,
		"token": p.Token,
		"trace": trace,
	})
	if err != nil {
		return "", fmt.Errorf("pass id: %w", err)
	}
	return item.HashWithDomain(DomainPass, data), nil
}
