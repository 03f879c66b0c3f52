package render

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/metrics"
	"github.com/roach88/cinder/internal/reconcile"
)

// List owns the mounted components of one keyed list.
//
// Thread-safety: a List is not safe for concurrent use. Render must be
// called from a single goroutine.
type List struct {
	name       string
	components []*Component

	logger  *slog.Logger
	metrics metrics.Collector
	ids     IDGenerator
	tokens  IDGenerator
	clock   SeqSource
}

// NewList creates an empty list.
func NewList(name string, opts ...Option) *List {
	l := &List{
		name:    name,
		logger:  discardLogger(),
		metrics: metrics.NewNop(),
		ids:     UUIDv7Generator{},
		tokens:  UUIDv7Generator{},
		clock:   NewClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the list name.
func (l *List) Name() string {
	return l.name
}

// Components returns the mounted components in order. The slice is a copy;
// the components are shared.
func (l *List) Components() []*Component {
	return slices.Clone(l.components)
}

// Items returns the items currently rendered, in order.
func (l *List) Items() []item.Item {
	items := make([]item.Item, len(l.components))
	for i, c := range l.components {
		items[i] = c.Item()
	}
	return items
}

// Render reconciles the mounted components against next and returns the
// pass that was applied. On error the list is left unchanged.
func (l *List) Render(next []item.Item) (*Pass, error) {
	start := time.Now()

	if err := item.Validate(next); err != nil {
		return nil, fmt.Errorf("render %s: %w", l.name, err)
	}
	values := make([]prepared, len(next))
	newItems := make([]item.Item, len(next))
	for i, it := range next {
		it.Key = item.NormalizeKey(it.Key)
		fp, err := item.Fingerprint(it)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", l.name, err)
		}
		values[i] = prepared{item: it, fp: fp}
		newItems[i] = it
	}

	old := make([]mounted, len(l.components))
	for i, c := range l.components {
		old[i] = mounted{comp: c, pos: i}
	}

	pass := &Pass{
		Token: l.tokens.Generate(),
		Seq:   l.clock.Next(),
		List:  l.name,
		Old:   l.Items(),
		New:   newItems,
		Ops:   []Op{},
	}

	// Props are patched in place while the stream runs, so the old items
	// must be captured above before any recycling happens.
	out := make([]*Component, len(values))
	place := reconcile.NewPlacement(len(values))
	stream := reconcile.NewStream[mounted, prepared, Patched](reconcile.FromSlice(old), reconcile.FromSlice(values), patcher{})

	step := 0
	for in := range stream.All() {
		l.logger.Debug("instruction",
			"list", l.name,
			"seq", pass.Seq,
			"step", step,
			"instruction", in.Name(),
		)
		l.metrics.IncInstruction(in.Kind.String())
		pass.Counts.Add(in.Kind, len(in.Values)+len(in.Components))

		switch in.Kind {
		case reconcile.KindRecycle:
			to := place.Next(in.NewEnd)
			out[to] = in.Result.Component
			pass.Ops = append(pass.Ops, Op{
				Step:        step,
				Kind:        OpRecycle,
				Key:         in.Result.Component.Key,
				ComponentID: in.Result.Component.ID,
				From:        in.Result.From,
				To:          to,
				OldEnd:      in.OldEnd.String(),
				NewEnd:      in.NewEnd.String(),
				Changed:     in.Result.Changed,
			})
		case reconcile.KindRemove:
			pass.Ops = append(pass.Ops, removeOp(step, OpRemove, in.Component, in.OldEnd.String()))
		case reconcile.KindAddRemaining:
			for _, v := range in.Values {
				to := place.Next(reconcile.Head)
				c := l.mount(v)
				out[to] = c
				pass.Ops = append(pass.Ops, Op{
					Step:        step,
					Kind:        OpInsert,
					Key:         c.Key,
					ComponentID: c.ID,
					From:        -1,
					To:          to,
				})
			}
		case reconcile.KindRemoveRemaining:
			for _, m := range in.Components {
				pass.Ops = append(pass.Ops, removeOp(step, OpRemoveRest, m, ""))
			}
		}
		if in.Kind.Final() {
			pass.Final = in.Kind.String()
		}
		step++
	}

	l.components = out
	l.metrics.AddMounted(pass.Counts.Added)
	l.metrics.AddUnmounted(pass.Counts.Removed)
	l.metrics.ObservePass(l.name, time.Since(start).Seconds())

	l.logger.Info("render pass",
		"list", l.name,
		"token", pass.Token,
		"seq", pass.Seq,
		"recycled", pass.Counts.Recycled,
		"added", pass.Counts.Added,
		"removed", pass.Counts.Removed,
		"final", pass.Final,
	)
	return pass, nil
}

func (l *List) mount(p prepared) *Component {
	return &Component{
		ID:          l.ids.Generate(),
		Key:         p.item.Key,
		Props:       maps.Clone(p.item.Props),
		Fingerprint: p.fp,
		Generation:  1,
	}
}

func removeOp(step int, kind OpKind, m mounted, end string) Op {
	return Op{
		Step:        step,
		Kind:        kind,
		Key:         m.comp.Key,
		ComponentID: m.comp.ID,
		From:        m.pos,
		To:          -1,
		OldEnd:      end,
	}
}
