// Package reconcile implements the four-corner array reconciliation used to
// turn an old sequence of rendered components into a new sequence of values.
//
// The algorithm scans both sequences from both ends at once. At each step it
// tries to recycle the old head into the new head; failing that it tries the
// remaining corners in a fixed order:
//
//  1. old tail  x new tail
//  2. old head  x new tail
//  3. old tail  x new head
//
// and removes the old head when nothing matches. When one sequence runs out,
// the rest of the other is emitted in a single terminal instruction.
//
// EXECUTION MODEL:
//
// A Stream is pulled by exactly one caller. Each call to Next performs one
// corner-comparison step and emits one Instruction. Nothing blocks and nothing
// is shared, so the package has no locks. A caller that stops early still owns
// every component and value the stream has not emitted.
//
// Mismatch is not an error: Recycler implementations reject a pairing by
// returning both inputs untouched. Broken internal invariants (a held-back
// slot filled twice, an exhausted end pulled again) panic with *InvariantError.
package reconcile
