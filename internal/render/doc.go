// Package render keeps a keyed list of components in step with a list of
// items.
//
// Each call to List.Render reconciles the current components against the next
// items with the four-corner scan from package reconcile. Components whose
// key matches an item are recycled in place (their props are patched when the
// item's fingerprint changed), unmatched items get freshly mounted
// components, and leftover components are unmounted.
//
// Every render produces a Pass: the ordered operations applied, the inputs,
// and the counts. A pass is self-contained, so it can be stored and replayed
// later to check that reconciliation is deterministic.
package render
