// Package store provides SQLite-backed storage for render pass logs.
//
// Every render pass can be recorded with its inputs (the old and new item
// lists), its ordered operations and its trace hash. Because a pass carries
// its own inputs, any recorded pass can be re-run later and its trace hash
// compared, which is how replay checks determinism.
//
// # Ordering
//
//   - Passes are ordered by seq (logical clock), never by wall time.
//   - All multi-row queries use ORDER BY seq ASC, id COLLATE BINARY ASC,
//     and ops are ordered by idx.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
