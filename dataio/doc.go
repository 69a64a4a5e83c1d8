// Package dataio implements the InputLoader/Sink contracts plus two
// concrete pairs of implementations: CSVLoader/CSVSink, backed by stdlib
// encoding/csv, and SQLiteSink/SQLiteLoader, a structured store for
// choicesets, trips, and estimated parameters.
//
// SQLiteSink applies one schema constant with CREATE TABLE IF NOT EXISTS,
// opens against the "sqlite" driver name modernc.org/sqlite registers, and
// shares one *sql.DB behind a single struct. CSVLoader/CSVSink exist so the
// core can run end-to-end without a database: no CSV/columnar library
// appears anywhere in scope, so the plain format stays on the standard
// library's encoding/csv.
package dataio
