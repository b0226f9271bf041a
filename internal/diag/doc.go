// Package diag defines the diagnostic model consumed by the renderer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – closed enum ordered Help < Note < Warning < Error < Bug.
//   - Code – optional short identifier such as "E0308".
//   - Message – the headline; keep it short and actionable.
//   - Labels – spans to highlight. Primary labels mark what the diagnostic is
//     about, secondary labels add related context. Label order is kept and
//     breaks ties when rendering.
//   - Notes – free text printed after the snippet.
//
// A diagnostic is a plain value; the With* builders return modified copies and
// never share slices with the original.
//
// # Emitting diagnostics
//
// Producers use a diag.Reporter to decouple emission from storage. A
// ReportBuilder (NewReportBuilder, ReportError, ReportWarning, ReportNote)
// collects labels and notes before Emit. BagReporter aggregates into a Bag,
// which supports sorting, deduplication and filtering; DedupReporter drops
// repeats before they reach the next reporter.
//
// Package diag does no formatting and no IO. Rendering lives in internal/diagfmt.
package diag
