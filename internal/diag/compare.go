package diag

import (
	"cmp"
	"strings"
)

// Compare orders diagnostics for display: most severe first, then by the start
// of the first primary label, then by headline. Diagnostics without a primary
// label go after the located ones of the same severity.
func Compare(a, b Diagnostic) int {
	if a.Severity != b.Severity {
		return cmp.Compare(b.Severity, a.Severity)
	}
	pa, okA := a.FirstPrimary()
	pb, okB := b.FirstPrimary()
	switch {
	case okA && okB:
		if c := cmp.Compare(pa.Span.File, pb.Span.File); c != 0 {
			return c
		}
		if c := cmp.Compare(pa.Span.Start, pb.Span.Start); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(a.Message, b.Message)
}
