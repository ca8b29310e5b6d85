// Package sqlite provides a local SQLite-backed implementation of the
// store ports, used by the local backend for offline and single-user
// setups.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It implements
// multiple store interfaces through a single database connection:
//
//   - DocumentStore: document rows and substring search
//   - TelemetryStore: search-history and document-view events
//   - StatsStore: the aggregate queries behind the analytics panel
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.kbs/data/kb.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
