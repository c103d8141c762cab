// Package state provides a concurrency-safe key/value store for
// process-lifetime shared state.
//
// It provides a Store interface with an in-memory implementation guarded
// by a reader/writer lock, key validation, and detached point-in-time
// snapshots for diagnostics and export paths.
package state
