// Package item defines the values a keyed list is rendered from.
//
// An Item is a key plus a small property bag. Keys decide compatibility
// during reconciliation: a component can only be recycled into an item with
// the same (NFC-normalized) key. Properties only decide whether a recycled
// component changed, which is detected by comparing fingerprints.
//
// Property values are restricted to strings, integers, booleans, arrays and
// objects so that fingerprints are stable across runs and platforms. Floats
// and nulls are rejected by Validate.
package item
