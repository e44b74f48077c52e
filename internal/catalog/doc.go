// Package catalog provides SQLite-backed durable storage for layouts and
// resolution provenance.
//
// The catalog holds two kinds of records:
//   - Layouts: compiled layout definitions, keyed by name
//   - Resolutions: provenance records of performed resolutions, stamped
//     with a logical seq clock and grouped by a session token
//
// All ordering uses seq INTEGER (logical clock), never timestamps, and
// every query orders by seq ASC, id ASC COLLATE BINARY so results are
// identical across runs. Resolution IDs are content-addressed via RFC 8785
// canonical JSON and SHA-256 with domain separation.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package catalog
