// Package sqlite provides the SQLite-backed implementation of driven.DocumentStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// A single documents table holds every career artifact. The schema is not
// versioned: on construction the store creates the canonical table, drops
// columns left behind by older releases, adds columns introduced since, and
// enables WAL journaling. Every step is idempotent and a failing step is
// logged and skipped, so an old database always opens.
//
// # Data Location
//
// By default, the database is stored at ~/.vitae/data/vitae.db
//
// # Connections
//
// Each operation opens its own connection and closes it before returning.
// Concurrent use from several goroutines or processes relies on SQLite's
// WAL mode and a busy timeout.
package sqlite
