// Package ingest loads the ransomware overview dataset, a large top-level JSON
// array, into the ransomware_overview table.
//
// Elements are decoded one at a time (ArrayReader), mapped to the fixed Row
// shape (MapRecord), collected into batches and flushed by a Store with a
// conditional insert that skips rows whose canonical name already exists.
// Every element ends up as exactly one of inserted, duplicate or failed, so
// Counters.Invariant holds for each run.
//
// The insert/duplicate split assumes exclusive write access to the table for
// the duration of a run. PostgresStore takes a table lock per batch and
// reports the per-row outcome; the before/after row count is kept only as a
// cross-check and a mismatch is logged.
package ingest
