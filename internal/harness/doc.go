// Package harness runs list reconciliation scenarios.
//
// A scenario is a YAML file naming an old and a new item list plus optional
// expectations about how one should become the other:
//
//	name: swap-ends
//	description: first and last rows trade places
//	old: [a, b, c]
//	new: [c, b, a]
//	expect:
//	  final: done
//	  kept: [c, b, a]
//	  instructions: [recycle_head_tail, recycle_head_tail, recycle_head_head, done]
//
// Run renders the old list, then the new one, on a fresh render.List with
// deterministic IDs, tokens and clock. Both passes are written to an
// in-memory store and replayed, so every scenario also checks that the
// recorded trace is reproducible. Regardless of expectations, every run
// checks totality: each old component is recycled or removed exactly once
// and the rendered keys equal the new keys.
//
// Golden traces live under testdata/golden and are compared with goldie.
package harness
