// Package modelctx implements ModelContext: the explicit,
// per-run configuration and worker-pool object that replaces global
// mutable state. cmd/scaper constructs exactly one ModelContext per
// invocation and passes it by reference into every worker.
//
// ParameterSet's permissive missing-name lookup (log once, default to
// zero, never panic) and RunAgents' chan-plus-sync.WaitGroup worker pool
// are both standard-library-only by deliberate choice: no example repo in
// the corpus imports a config-file library beyond tabular parsing, and
// none imports a worker-pool or errgroup library (see DESIGN.md).
package modelctx
