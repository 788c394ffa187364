// Package sqlite provides SQLite-backed implementations of the session-scoped
// driven ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single database connection serves every session; each port wrapper
// is bound to one session id:
//
//   - HistoryStore: the session's search history, most recent first
//   - ExclusionStore: the session's excluded frames, in insertion order
//
// Sharing a session id lets separate CLI invocations see the same history,
// which is what `history replay` relies on.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.framescope/data/session.db
package sqlite
