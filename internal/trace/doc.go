// Package trace provides the tracing subsystem used by spanlight.
//
// It records where time goes while a bundle is loaded, built and rendered, and
// helps to tell a slow run from a stuck one.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	spanlight render --trace=- --trace-level=detail report.toml
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a command fails
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps on failure
//   - LevelPhase: command and phase boundaries
//   - LevelDetail: per-diagnostic events
//   - LevelDebug: everything including per-label events
//
// # Scopes
//
//   - ScopeCommand: a whole CLI command
//   - ScopePhase: load, build, render, write
//   - ScopeDiagnostic: one diagnostic
//   - ScopeLabel: one label
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "render", parentID)
//	defer span.End("")
package trace
