// Package diagfmt turns diagnostics into annotated source snippets.
//
// The core entry point is RenderDiagnostic, which produces an Output of styled
// lines: text plus abstract style tags. WritePlain and WriteANSI print an Output;
// RenderShort, JSON and FormatGoldenDiagnostics are alternative formats.
package diagfmt
