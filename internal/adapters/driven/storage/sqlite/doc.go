// Package sqlite provides a SQLite-backed local snapshot of registry records.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Imported raw records are stored as JSON alongside the
// upper-cased party names used for owner search.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.titlescan/data/records.db
package sqlite
