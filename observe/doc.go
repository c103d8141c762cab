// Package observe provides observability primitives for probe execution
// and shared-state access.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Consumers wrap probe check functions with the
// Middleware before registering them, and record batch results or state
// operations through the Metrics interface.
package observe
