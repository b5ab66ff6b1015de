// Package store provides a SQLite-backed cache of compiled programs.
//
// Each compilation is recorded as a build keyed by the content hash of its
// syntax tree. A successful build keeps the IR text dump and its canonical
// JSON; a failed build keeps the error code and message. Looking up a tree
// hash returns its most recent build, so an unchanged tree is not compiled
// twice.
//
// # Ordering
//
// Builds are numbered by a logical clock (created_seq), never by wall time.
// Listings are ORDER BY created_seq DESC, id ASC COLLATE BINARY, so two runs
// over the same inputs list builds identically. Build IDs are UUIDv7 by
// default; tests substitute a sequential generator.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection: SQLite has a single writer
package store
