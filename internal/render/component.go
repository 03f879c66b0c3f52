package render

import (
	"maps"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/reconcile"
)

// Component is a mounted list entry. Its ID is stable for as long as it is
// recycled; Generation counts how many times its props were patched.
type Component struct {
	ID          string         `json:"id"`
	Key         string         `json:"key"`
	Props       map[string]any `json:"props,omitempty"`
	Fingerprint string         `json:"fingerprint"`
	Generation  int            `json:"generation"`
}

// Item returns the item the component currently renders.
func (c *Component) Item() item.Item {
	return item.Item{Key: c.Key, Props: maps.Clone(c.Props)}
}

// Patched is the result of recycling a component into a new item.
type Patched struct {
	Component *Component
	Changed   bool
	From      int
}

// mounted is a component together with its position in the old list.
type mounted struct {
	comp *Component
	pos  int
}

// prepared is an item with its fingerprint computed up front.
type prepared struct {
	item item.Item
	fp   string
}

// patcher is the recycle predicate. A component only accepts an item with
// the same key; a rejected pair is handed back untouched.
type patcher struct{}

func (patcher) Recycle(m mounted, p prepared) reconcile.Outcome[mounted, prepared, Patched] {
	if m.comp.Key != p.item.Key {
		return reconcile.Rejected[mounted, prepared, Patched](m, p)
	}

	changed := m.comp.Fingerprint != p.fp
	if changed {
		m.comp.Props = maps.Clone(p.item.Props)
		m.comp.Fingerprint = p.fp
		m.comp.Generation++
	}
	return reconcile.Recycled[mounted, prepared](Patched{Component: m.comp, Changed: changed, From: m.pos})
}
